// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package configurator

import (
	"errors"
	"sync"

	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
)

var (
	_ LevelConfigurator[string] = &Backend{}
	_ RegistryProvider          = &Backend{}

	// ErrStreamsNotSupported is returned when stream options are given to a Backend.
	ErrStreamsNotSupported = errors.New("stream options are not supported by backend configurators")
)

// Factory builds the underlying logger called name.
type Factory func(name string) logger.Underlying

// Backend configures loggers writing through a third party logging library. Stream
// and format options are owned by the library and are rejected.
type Backend struct {
	lock     sync.RWMutex
	factory  Factory
	settings *settings
}

// NewBackend returns a Backend building its loggers with factory.
func NewBackend(factory Factory, opts ...Option) (*Backend, error) {
	s := newSettings()
	if err := s.apply(opts); err != nil {
		return nil, err
	}
	if s.streamsSet || s.streamFormatsSet || s.perLevel {
		return nil, ErrStreamsNotSupported
	}
	return &Backend{factory: factory, settings: s}, nil
}

func (c *Backend) Level() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.settings.level
}

func (c *Backend) SetLevel(level string) string {
	c.lock.Lock()
	defer c.lock.Unlock()
	previous := c.settings.level
	c.settings.level = level
	return previous
}

func (c *Backend) Registry() *levels.Registry {
	return c.settings.registry
}

func (c *Backend) Configure(name string) (logger.Logger, error) {
	c.lock.RLock()
	s := c.settings.clone()
	c.lock.RUnlock()

	s.registry.Register(s.levelNames)
	threshold := resolveLevel(name, s.level, s.registry, s.warnerOrDiscard())

	underlying := c.factory(name)
	underlying.SetLevel(threshold)
	return logger.NewDirect(underlying, s.loggerOptions()...), nil
}
