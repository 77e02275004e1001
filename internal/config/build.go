// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mia-platform/logician/backend/hclogbackend"
	"github.com/mia-platform/logician/backend/logrusbackend"
	"github.com/mia-platform/logician/backend/zerologbackend"
	"github.com/mia-platform/logician/configurator"
	"github.com/mia-platform/logician/format"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
	"github.com/mia-platform/logician/warn"
)

// Outputs resolves stream targets to writers and owns the files it opens.
type Outputs struct {
	Stdout io.Writer
	Stderr io.Writer

	lock  sync.Mutex
	files map[string]*os.File
}

// NewOutputs returns Outputs bound to the process standard streams.
func NewOutputs() *Outputs {
	return &Outputs{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Writer returns the writer of target: stdout, stderr, null or a file path opened for
// appending. The same path always yields the same file.
func (o *Outputs) Writer(target string) (io.Writer, error) {
	switch target {
	case TargetStdout:
		return orDefault(o.Stdout, os.Stdout), nil
	case TargetStderr:
		return orDefault(o.Stderr, os.Stderr), nil
	case TargetNull:
		return io.Discard, nil
	}

	path, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}

	o.lock.Lock()
	defer o.lock.Unlock()
	if file, found := o.files[path]; found {
		return file, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening stream %q: %w", target, err)
	}
	if o.files == nil {
		o.files = make(map[string]*os.File)
	}
	o.files[path] = file
	return file, nil
}

// Close closes every file opened by Writer.
func (o *Outputs) Close() error {
	o.lock.Lock()
	defer o.lock.Unlock()

	var errs error
	for path, file := range o.files {
		errs = errors.Join(errs, file.Close())
		delete(o.files, path)
	}
	return errs
}

func orDefault(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// levelConfigurator is what EnvList decorates: a configurator with a named level.
type levelConfigurator interface {
	configurator.LevelConfigurator[string]
	Registry() *levels.Registry
}

// Configurator builds the configurator chain described by c: the base configurator of
// its backend, then the environment lookup, then the verbosity flags.
func (c *LoggerConfig) Configurator(outputs *Outputs, warner warn.Warner, envOpts ...configurator.EnvOption) (configurator.Configurator, error) {
	base, err := c.baseConfigurator(outputs, warner)
	if err != nil {
		return nil, err
	}

	var result configurator.Configurator = base
	if len(c.Envs) > 0 || c.AllLogEnv {
		if c.AllLogEnv {
			result = configurator.NewAllEnvList(c.Envs, base, envOpts...)
		} else {
			result = configurator.NewEnvList(c.Envs, base, envOpts...)
		}
	}

	if c.Verbosity != "" || c.Quietness != "" {
		result, err = configurator.NewVQSep(result, c.Verbosity, c.Quietness, configurator.WithVQWarner(warner))
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Configure builds the configurator of c and returns the logger it configures.
func (c *LoggerConfig) Configure(outputs *Outputs, warner warn.Warner, envOpts ...configurator.EnvOption) (logger.Logger, error) {
	conf, err := c.Configurator(outputs, warner, envOpts...)
	if err != nil {
		return nil, err
	}
	return conf.Configure(c.Name)
}

func (c *LoggerConfig) commonOptions(warner warn.Warner) []configurator.Option {
	opts := []configurator.Option{
		configurator.WithLevel(c.Level),
		configurator.WithCmdName(c.CmdName),
		configurator.WithWarner(warner),
	}
	if len(c.LevelNames) > 0 {
		opts = append(opts, configurator.WithLevelNames(c.LevelNames))
	}
	if c.NoWarn {
		opts = append(opts, configurator.WithNoWarn())
	}
	return opts
}

func (c *LoggerConfig) baseConfigurator(outputs *Outputs, warner warn.Warner) (levelConfigurator, error) {
	opts := c.commonOptions(warner)

	switch c.Backend {
	case "", BackendStd:
		if !c.StreamsSet() {
			return configurator.NewStd(append(opts, configurator.WithPerLevelFormats(c.PerLevel))...)
		}
		streamFormats, err := c.streamFormats(outputs)
		if err != nil {
			return nil, err
		}
		return configurator.NewStd(append(opts, configurator.WithStreamFormats(streamFormats...))...)
	case BackendHclog:
		w := orDefault(outputs.Stderr, os.Stderr)
		return configurator.NewBackend(func(name string) logger.Underlying {
			return hclogbackend.New(name, w, false)
		}, opts...)
	case BackendLogrus:
		w := orDefault(outputs.Stderr, os.Stderr)
		return configurator.NewBackend(func(name string) logger.Underlying {
			return logrusbackend.New(name, w)
		}, opts...)
	case BackendZerolog:
		w := orDefault(outputs.Stderr, os.Stderr)
		return configurator.NewBackend(func(name string) logger.Underlying {
			return zerologbackend.New(name, w)
		}, opts...)
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

func (c *LoggerConfig) streamFormats(outputs *Outputs) ([]format.StreamFormat, error) {
	registry := levels.NewRegistry()
	registry.Register(c.LevelNames)

	streamFormats := make([]format.StreamFormat, 0, len(c.Streams))
	for i, stream := range c.Streams {
		w, err := outputs.Writer(stream.Target)
		if err != nil {
			return nil, err
		}

		var levelFormat format.LevelFormat
		switch {
		case len(stream.Formats) > 0:
			formats := make(map[levels.Level]string, len(stream.Formats))
			for key, f := range stream.Formats {
				level, err := registry.Parse(key)
				if err != nil {
					return nil, fmt.Errorf("%s.%d.%s: %w", StreamsField, i, FormatsField, err)
				}
				formats[level] = f
			}
			levelFormat = format.PerLevel(formats)
		case c.PerLevel:
			levelFormat = format.PerLevel(nil)
		default:
			levelFormat = format.Same(stream.Format)
		}

		streamFormats = append(streamFormats, format.StreamFormat{Writer: w, Format: levelFormat})
	}
	return streamFormats, nil
}
