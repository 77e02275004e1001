// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
	"time"

	"github.com/mia-platform/logician/levels"
)

// Logger emits records at every level known to logician.
// Every output method accepts a message followed by alternating key/value pairs.
type Logger interface {
	// Name returns the logger name.
	Name() string
	// Level returns the current threshold level.
	Level() levels.Level
	// SetLevel updates the threshold level.
	SetLevel(level levels.Level)
	// Enabled reports whether a record at level would be emitted.
	Enabled(level levels.Level) bool

	// Log emits a record at an arbitrary level.
	Log(level levels.Level, msg string, args ...any)
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Success(msg string, args ...any)
	Notice(msg string, args ...any)
	// Cmd emits the captured output of a command at the command level, labelled with
	// the configured command name.
	Cmd(msg string, args ...any)
	// CmdAs is like Cmd but labels the record with cmdName.
	CmdAs(cmdName string, msg string, args ...any)
	Warning(msg string, args ...any)
	Error(msg string, args ...any)
	// Exception emits err at the error level.
	Exception(err error, msg string, args ...any)
	Critical(msg string, args ...any)
	// Fatal emits a record at the fatal level. It does not stop the program.
	Fatal(msg string, args ...any)

	// WithName returns a child logger named "<name>.<child>".
	WithName(name string) Logger
	// Underlying returns the logger that actually writes the records. Holding on to it
	// ties the caller to a specific backend.
	Underlying() Underlying
}

// Record is a single log event handed to an Underlying logger.
type Record struct {
	Time       time.Time
	LoggerName string
	Level      levels.Level
	// LevelName is the display name of Level, already resolved by the emitting logger.
	LevelName string
	Message   string
	// Args holds alternating key/value pairs.
	Args []any
	// Err is set by Exception.
	Err error
	// PC is the program counter of the logging call site, zero when unknown.
	PC uintptr
}

// Underlying is the contract a logging backend fulfils to receive records.
type Underlying interface {
	Name() string
	Level() levels.Level
	SetLevel(level levels.Level)
	Enabled(level levels.Level) bool
	Handle(ctx context.Context, record Record) error
	WithName(name string) Underlying
}

// ChildName joins a parent and child logger name.
func ChildName(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "." + child
	}
}
