// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logrusbackend adapts a sirupsen/logrus logger as a logger.Underlying.
package logrusbackend

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mia-platform/logician/backend"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
)

const (
	// LoggerNameKey is the field carrying the logger name.
	LoggerNameKey = "logger"
	// MissingValueKey holds a trailing argument without its pair.
	MissingValueKey = "EXTRA_VALUE_AT_END"
)

var _ logger.Underlying = &Logger{}

type Logger struct {
	name      string
	logrus    *logrus.Logger
	threshold *backend.Threshold
}

// New returns a Logger named name writing logrus text lines to w, starting at
// levels.Warning.
func New(name string, w io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.TraceLevel)
	return Wrap(name, log, levels.Warning)
}

// Wrap adapts log. The native level of log keeps filtering records.
func Wrap(name string, log *logrus.Logger, level levels.Level) *Logger {
	return &Logger{
		name:      name,
		logrus:    log,
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
	return l.logrus.IsLevelEnabled(NativeLevel(level))
}

func (l *Logger) Handle(_ context.Context, record logger.Record) error {
	native := NativeLevel(record.Level)

	fields := Fields(record.Args)
	if l.name != "" {
		fields[LoggerNameKey] = l.name
	}
	if backend.NeedsLevelName(native.String(), record.LevelName) {
		fields[backend.LevelNameKey] = record.LevelName
	}

	entry := l.logrus.WithFields(fields).WithTime(record.Time)
	if record.Err != nil {
		entry = entry.WithError(record.Err)
	}
	entry.Log(native, record.Message)
	return nil
}

func (l *Logger) WithName(name string) logger.Underlying {
	return &Logger{
		name:      logger.ChildName(l.name, name),
		logrus:    l.logrus,
		threshold: l.threshold,
	}
}

// Logrus returns the wrapped logger.
func (l *Logger) Logrus() *logrus.Logger {
	return l.logrus
}

// NativeLevel maps a logician level on the nearest logrus level not above it. Levels
// above levels.Error stay on logrus.ErrorLevel: fatal and panic levels of logrus stop
// the program.
func NativeLevel(level levels.Level) logrus.Level {
	switch {
	case level < levels.Debug:
		return logrus.TraceLevel
	case level < levels.Info:
		return logrus.DebugLevel
	case level < levels.Warning:
		return logrus.InfoLevel
	case level < levels.Error:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

// Fields converts key/value pairs in logrus fields.
func Fields(args []any) logrus.Fields {
	fields := make(logrus.Fields, len(args)/2+2)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields[MissingValueKey] = args[i]
			break
		}
		fields[fmt.Sprint(args[i])] = args[i+1]
	}
	return fields
}
