// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mia-platform/logician/internal/config"
	ilogger "github.com/mia-platform/logician/internal/logger"
	"github.com/mia-platform/logician/internal/server"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
	"github.com/mia-platform/logician/warn"
)

var (
	// serverGetter builds the admin server, it can be overridden for testing purposes.
	serverGetter = func(ctx context.Context, store server.Store) (server.Server, error) {
		return server.NewServer(ctx, nil, store)
	}
)

// emitOptions holds the options of a single emit run.
type emitOptions struct {
	loggersPaths []string
	loggerName   string
	level        string
	message      string
	attrs        []any
	defaultLevel string
	cmdName      string
}

// execute configures the requested logger and emits one record through it.
func (o *emitOptions) execute(ctx context.Context, stdout, stderr io.Writer) error {
	configs, err := loadLoggerConfigs(o.loggersPaths)
	if err != nil {
		return err
	}

	loggerConfig, err := findLoggerConfig(configs, o.loggerName, o.defaultLevel)
	if err != nil {
		return err
	}

	outputs := &config.Outputs{Stdout: stdout, Stderr: stderr}
	defer outputs.Close()

	diagnostics := ilogger.Named(ctx, "emit")
	log, err := loggerConfig.Configure(outputs, warn.NewLoggerWarner(diagnostics))
	if err != nil {
		return err
	}

	level, err := registryOf(log).Parse(o.level)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidArgument, err)
	}

	diagnostics.Debug("emitting record", "logger", log.Name(), "level", int(level))
	switch {
	case level == levels.Cmd && o.cmdName != "":
		log.CmdAs(o.cmdName, o.message, o.attrs...)
	case level == levels.Cmd:
		log.Cmd(o.message, o.attrs...)
	default:
		log.Log(level, o.message, o.attrs...)
	}
	return nil
}

// levelsOptions holds the options of the levels command.
type levelsOptions struct {
	loggersPaths []string
	loggerName   string
}

// execute writes the level table, marking the threshold of the logger when one is named.
func (o *levelsOptions) execute(ctx context.Context, w io.Writer) error {
	registry := levels.Default
	threshold := levels.NotSet

	if o.loggerName != "" {
		configs, err := loadLoggerConfigs(o.loggersPaths)
		if err != nil {
			return err
		}

		loggerConfig, err := findLoggerConfig(configs, o.loggerName, "")
		if err != nil {
			return err
		}

		outputs := &config.Outputs{Stdout: io.Discard, Stderr: io.Discard}
		defer outputs.Close()

		diagnostics := ilogger.Named(ctx, "levels")
		log, err := loggerConfig.Configure(outputs, warn.NewLoggerWarner(diagnostics))
		if err != nil {
			return err
		}
		registry = registryOf(log)
		threshold = log.Level()
	}

	for _, level := range registry.Levels() {
		marker := "  "
		if level == threshold {
			marker = "* "
		}
		if _, err := fmt.Fprintf(w, "%s%3d %s\n", marker, int(level), registry.Name(level)); err != nil {
			return err
		}
	}
	return nil
}

// serveOptions holds the options of the serve command.
type serveOptions struct {
	loggersPaths []string
	watch        bool
	serverGetter func(context.Context, server.Store) (server.Server, error)
}

func (o *serveOptions) validate() error {
	if len(o.loggersPaths) == 0 {
		return errNoLoggersFiles
	}
	return nil
}

// execute loads every loggers file and serves them until ctx is done or the process
// receives an interrupt.
func (o *serveOptions) execute(ctx context.Context, stdout, stderr io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := ilogger.Named(ctx, "serve")
	outputs := &config.Outputs{Stdout: stdout, Stderr: stderr}
	defer outputs.Close()

	store := make(holderStore, 0, len(o.loggersPaths))
	defer func() { store.stop() }()
	for _, path := range o.loggersPaths {
		holder, err := config.NewHolder(ctx, path, outputs, warn.NewLoggerWarner(log))
		if err != nil {
			return err
		}
		store = append(store, holder)

		if o.watch {
			if err := holder.StartWatcher(ctx); err != nil {
				return err
			}
		}
	}

	srv, err := o.serverGetter(ctx, store)
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
	}

	if err := srv.Stop(); err != nil {
		return err
	}
	return <-errChan
}

// holderStore exposes the loggers of many files. The first file defining a name wins.
type holderStore []*config.Holder

func (s holderStore) Get(name string) (logger.Logger, bool) {
	for _, holder := range s {
		if log, found := holder.Get(name); found {
			return log, true
		}
	}
	return nil, false
}

func (s holderStore) Loggers() config.Loggers {
	loggers := make(config.Loggers)
	for i := len(s) - 1; i >= 0; i-- {
		for name, log := range s[i].Loggers() {
			loggers[name] = log
		}
	}
	return loggers
}

func (s holderStore) stop() {
	for _, holder := range s {
		holder.Stop()
	}
}
