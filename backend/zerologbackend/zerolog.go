// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package zerologbackend adapts a rs/zerolog logger as a logger.Underlying.
package zerologbackend

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/mia-platform/logician/backend"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
)

// LoggerNameKey is the field carrying the logger name.
const LoggerNameKey = "logger"

var _ logger.Underlying = &Logger{}

type Logger struct {
	name      string
	zerolog   zerolog.Logger
	threshold *backend.Threshold
}

// New returns a Logger named name writing zerolog JSON lines to w, starting at
// levels.Warning.
func New(name string, w io.Writer) *Logger {
	return Wrap(name, zerolog.New(w).Level(zerolog.TraceLevel).With().Timestamp().Logger(), levels.Warning)
}

// NewConsole is like New but writes human readable lines through zerolog.ConsoleWriter.
func NewConsole(name string, w io.Writer) *Logger {
	console := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	return Wrap(name, zerolog.New(console).Level(zerolog.TraceLevel).With().Timestamp().Logger(), levels.Warning)
}

// Wrap adapts log. The level of log, and the zerolog global level, keep filtering
// records.
func Wrap(name string, log zerolog.Logger, level levels.Level) *Logger {
	return &Logger{
		name:      name,
		zerolog:   log,
		threshold: backend.NewThreshold(level),
	}
}

func (l *Logger) Name() string {
	return l.name
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
	native := NativeLevel(level)
	return native >= l.zerolog.GetLevel() && native >= zerolog.GlobalLevel()
}

func (l *Logger) Handle(_ context.Context, record logger.Record) error {
	native := NativeLevel(record.Level)

	event := l.zerolog.WithLevel(native)
	if event == nil {
		return nil
	}

	if l.name != "" {
		event = event.Str(LoggerNameKey, l.name)
	}
	if backend.NeedsLevelName(native.String(), record.LevelName) {
		event = event.Str(backend.LevelNameKey, record.LevelName)
	}
	if len(record.Args) > 0 {
		event = event.Fields(record.Args)
	}
	if record.Err != nil {
		event = event.Err(record.Err)
	}

	event.Msg(record.Message)
	return nil
}

func (l *Logger) WithName(name string) logger.Underlying {
	return &Logger{
		name:      logger.ChildName(l.name, name),
		zerolog:   l.zerolog,
		threshold: l.threshold,
	}
}

// Zerolog returns the wrapped logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zerolog
}

// NativeLevel maps a logician level on the nearest zerolog level not above it.
// Records at levels.Fatal use zerolog.FatalLevel through WithLevel, which never exits.
func NativeLevel(level levels.Level) zerolog.Level {
	switch {
	case level < levels.Debug:
		return zerolog.TraceLevel
	case level < levels.Info:
		return zerolog.DebugLevel
	case level < levels.Warning:
		return zerolog.InfoLevel
	case level < levels.Error:
		return zerolog.WarnLevel
	case level < levels.Fatal:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}
