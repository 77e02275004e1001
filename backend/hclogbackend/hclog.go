// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package hclogbackend adapts a hashicorp go-hclog logger as a logger.Underlying.
package hclogbackend

import (
	"context"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/mia-platform/logician/backend"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
)

var _ logger.Underlying = &Logger{}

type Logger struct {
	hclog     hclog.Logger
	threshold *backend.Threshold
}

// New returns a Logger named name writing hclog text lines to w, starting at
// levels.Warning. When json is true lines are written as JSON objects.
func New(name string, w io.Writer, json bool) *Logger {
	return Wrap(hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Output:     w,
		Level:      hclog.Trace,
		JSONFormat: json,
	}), levels.Warning)
}

// Wrap adapts log. The native level of log keeps filtering records, records must pass
// both level.
func Wrap(log hclog.Logger, level levels.Level) *Logger {
	return &Logger{
		hclog:     log,
		threshold: backend.NewThreshold(level),
	}
}

func (l *Logger) Name() string {
	return l.hclog.Name()
}

func (l *Logger) Level() levels.Level {
	return l.threshold.Get()
}

func (l *Logger) SetLevel(level levels.Level) {
	l.threshold.Set(level)
}

func (l *Logger) Enabled(level levels.Level) bool {
	if !l.threshold.Enabled(level) {
		return false
	}
	return l.hclog.GetLevel() <= NativeLevel(level)
}

func (l *Logger) Handle(_ context.Context, record logger.Record) error {
	native := NativeLevel(record.Level)

	args := make([]any, 0, len(record.Args)+4)
	args = append(args, record.Args...)
	if backend.NeedsLevelName(native.String(), record.LevelName) {
		args = append(args, backend.LevelNameKey, record.LevelName)
	}
	if record.Err != nil {
		args = append(args, "error", record.Err)
	}

	l.hclog.Log(native, record.Message, args...)
	return nil
}

func (l *Logger) WithName(name string) logger.Underlying {
	return &Logger{
		hclog:     l.hclog.Named(name),
		threshold: l.threshold,
	}
}

// Hclog returns the wrapped logger.
func (l *Logger) Hclog() hclog.Logger {
	return l.hclog
}

// NativeLevel maps a logician level on the nearest hclog level not above it.
func NativeLevel(level levels.Level) hclog.Level {
	switch {
	case level < levels.Debug:
		return hclog.Trace
	case level < levels.Info:
		return hclog.Debug
	case level < levels.Warning:
		return hclog.Info
	case level < levels.Error:
		return hclog.Warn
	default:
		return hclog.Error
	}
}
