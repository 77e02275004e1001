// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mia-platform/logician/levels"
)

const (
	// Name is the root name of every diagnostics logger.
	Name = "logician"
)

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger = &instance{log: hclog.NewNullLogger()}
)

// Level is a logician level. The diagnostics logger maps it onto the closest hclog level.
type Level = levels.Level

const (
	TRACE = levels.Trace
	DEBUG = levels.Debug
	INFO  = levels.Info
	WARN  = levels.Warning
	ERROR = levels.Error
)

// LevelFromString parses a level name or number from the default registry, falling back
// to INFO.
func LevelFromString(level string) Level {
	parsed, err := levels.Default.Parse(level)
	if err != nil {
		return INFO
	}
	return parsed
}

// hclogLevel maps level onto the hclog level covering it: SUCCESS and NOTICE are shown
// as INFO, CRITICAL and FATAL as ERROR.
func hclogLevel(level Level) hclog.Level {
	switch {
	case level == levels.NotSet:
		return hclog.Info
	case level <= levels.Trace:
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

// Logger is the diagnostics logger used by the library itself and by the CLI.
type Logger interface {
	// WithName returns a new Logger instance with the specified name appended.
	WithName(name string) Logger

	// SetLevel updates the logger level.
	SetLevel(level Level)

	// Trace emit a message and key/value pairs at the TRACE level.
	Trace(msg string, args ...any)

	// Debug emit a message and key/value pairs at the DEBUG level.
	Debug(msg string, args ...any)

	// Info emit a message and key/value pairs at the INFO level.
	Info(msg string, args ...any)

	// Warn emit a message and key/value pairs at the WARN level.
	Warn(msg string, args ...any)

	// Error emit a message and key/value pairs at the ERROR level.
	Error(msg string, args ...any)
}

// Make sure that instance is a Logger.
var _ Logger = &instance{}

// instance is a Logger implementation.
type instance struct {
	log hclog.Logger
}

// NewLogger creates a new JSON logger instance writing to writer.
func NewLogger(writer io.Writer) Logger {
	return newLogger(writer, true, INFO)
}

// NewTextLogger creates a new human readable logger instance writing to writer at level.
func NewTextLogger(writer io.Writer, level Level) Logger {
	return newLogger(writer, false, level)
}

func newLogger(writer io.Writer, json bool, level Level) Logger {
	return &instance{
		log: hclog.New(&hclog.LoggerOptions{
			Name:       Name,
			JSONFormat: json,
			Output:     writer,
			TimeFn:     time.Now,
			Level:      hclogLevel(level),
		}),
	}
}

func (i instance) WithName(name string) Logger {
	return &instance{
		log: i.log.Named(name),
	}
}

func (i instance) SetLevel(level Level) {
	i.log.SetLevel(hclogLevel(level))
}

func (i instance) Trace(msg string, args ...any) {
	i.log.Trace(msg, args...)
}

func (i instance) Debug(msg string, args ...any) {
	i.log.Debug(msg, args...)
}

func (i instance) Info(msg string, args ...any) {
	i.log.Info(msg, args...)
}

func (i instance) Warn(msg string, args ...any) {
	i.log.Warn(msg, args...)
}

func (i instance) Error(msg string, args ...any) {
	i.log.Error(msg, args...)
}
