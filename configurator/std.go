// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package configurator

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mia-platform/logician/format"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
	"github.com/mia-platform/logician/stdlog"
)

var (
	_ LevelConfigurator[string] = &Std{}
	_ RegistryProvider          = &Std{}
)

// Std configures loggers writing through log/slog with the line formats of the format
// package. By default loggers write to stderr at WARNING with the Shorter format.
type Std struct {
	lock     sync.RWMutex
	settings *settings
}

// NewStd returns a Std configurator. It fails when stream formats are combined with
// streams or per level formats.
func NewStd(opts ...Option) (*Std, error) {
	s := newSettings()
	if err := s.apply(opts); err != nil {
		return nil, err
	}
	return &Std{settings: s}, nil
}

// With returns a copy of the configurator with opts applied on top of its options.
func (c *Std) With(opts ...Option) (*Std, error) {
	c.lock.RLock()
	s := c.settings.clone()
	c.lock.RUnlock()

	if err := s.apply(opts); err != nil {
		return nil, err
	}
	return &Std{settings: s}, nil
}

func (c *Std) Level() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.settings.level
}

func (c *Std) SetLevel(level string) string {
	c.lock.Lock()
	defer c.lock.Unlock()
	previous := c.settings.level
	c.settings.level = level
	return previous
}

func (c *Std) Registry() *levels.Registry {
	return c.settings.registry
}

// StreamFormats returns the streams and formats loggers will write with.
func (c *Std) StreamFormats() []format.StreamFormat {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.settings.resolvedStreamFormats()
}

// Configure builds the logger called name. The format of every stream is chosen by the
// resolved level: the more verbose the logger, the more detailed its lines.
func (c *Std) Configure(name string) (logger.Logger, error) {
	c.lock.RLock()
	s := c.settings.clone()
	c.lock.RUnlock()

	s.registry.Register(s.levelNames)
	threshold := resolveLevel(name, s.level, s.registry, s.warnerOrDiscard())

	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.Level(threshold))

	streamFormats := s.resolvedStreamFormats()
	streams := make([]stdlog.Stream, 0, len(streamFormats))
	for _, streamFormat := range streamFormats {
		template, err := format.Compile(streamFormat.Format.Format(threshold))
		if err != nil {
			return nil, fmt.Errorf("configuring logger %q: %w", name, err)
		}
		streams = append(streams, stdlog.Stream{Writer: streamFormat.Writer, Template: template})
	}

	handler := stdlog.NewHandler(levelVar, s.registry, streams...)
	return logger.NewDirect(stdlog.New(name, handler, levelVar), s.loggerOptions()...), nil
}
