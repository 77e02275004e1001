// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package stdlog

import (
	"context"
	"log/slog"

	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
)

var _ logger.Underlying = &Logger{}

// Logger adapts a *slog.Logger to logger.Underlying. Its threshold lives in a
// slog.LevelVar shared with the handler and with every child logger.
type Logger struct {
	name  string
	slog  *slog.Logger
	level *slog.LevelVar
}

// New returns a Logger named name that writes through handler. A nil level starts at
// levels.Warning.
func New(name string, handler slog.Handler, level *slog.LevelVar) *Logger {
	if level == nil {
		level = new(slog.LevelVar)
		level.Set(slog.Level(levels.Warning))
	}

	return &Logger{
		name:  name,
		slog:  slog.New(handler),
		level: level,
	}
}

// FromSlog wraps an already built *slog.Logger.
func FromSlog(name string, log *slog.Logger, level *slog.LevelVar) *Logger {
	return New(name, log.Handler(), level)
}

func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) Level() levels.Level {
	return levels.Level(l.level.Level())
}

func (l *Logger) SetLevel(level levels.Level) {
	l.level.Set(slog.Level(level))
}

func (l *Logger) Enabled(level levels.Level) bool {
	if level < l.Level() {
		return false
	}
	return l.slog.Handler().Enabled(context.Background(), slog.Level(level))
}

func (l *Logger) Handle(ctx context.Context, record logger.Record) error {
	slogRecord := slog.NewRecord(record.Time, slog.Level(record.Level), record.Message, record.PC)
	slogRecord.AddAttrs(
		slog.String(LoggerNameKey, record.LoggerName),
		slog.String(LevelNameKey, record.LevelName),
	)
	slogRecord.Add(record.Args...)
	if record.Err != nil {
		slogRecord.AddAttrs(slog.Any(ErrorKey, record.Err))
	}

	return l.slog.Handler().Handle(ctx, slogRecord)
}

func (l *Logger) WithName(name string) logger.Underlying {
	return &Logger{
		name:  logger.ChildName(l.name, name),
		slog:  l.slog,
		level: l.level,
	}
}

// Slog returns the wrapped *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// LevelVar returns the threshold shared with the handler.
func (l *Logger) LevelVar() *slog.LevelVar {
	return l.level
}
