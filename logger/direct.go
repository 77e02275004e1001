// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/warn"
)

const (
	// baseCallerSkip skips runtime.Callers, Direct.log and the exported output method.
	baseCallerSkip = 3

	// EmptyCmdNameWarning is emitted when CmdAs receives a blank command name.
	EmptyCmdNameWarning = "Command level name supplied is empty."
	// HandleFailedWarning is emitted when the underlying logger cannot write a record.
	HandleFailedWarning = "record not written"
)

var _ Logger = &Direct{}

// Direct is a Logger that delegates every record to an Underlying logger.
type Direct struct {
	underlying Underlying
	registry   *levels.Registry
	warner     warn.Warner

	cmdName    string
	callerSkip int
}

// Option customizes a Direct logger.
type Option func(*Direct)

// WithRegistry resolves level names through registry instead of levels.Default.
func WithRegistry(registry *levels.Registry) Option {
	return func(d *Direct) {
		if registry != nil {
			d.registry = registry
		}
	}
}

// WithCmdName sets the name shown on Cmd records. A blank name keeps the registered
// name of levels.Cmd.
func WithCmdName(name string) Option {
	return func(d *Direct) {
		d.cmdName = strings.TrimSpace(name)
	}
}

// WithCallerSkip adds skip frames to the call site lookup, for loggers wrapped by
// helper functions.
func WithCallerSkip(skip int) Option {
	return func(d *Direct) {
		d.callerSkip = skip
	}
}

// WithWarner sends logger warnings to w.
func WithWarner(w warn.Warner) Option {
	return func(d *Direct) {
		d.warner = w
	}
}

// NewDirect returns a Logger writing through underlying.
func NewDirect(underlying Underlying, opts ...Option) *Direct {
	d := &Direct{
		underlying: underlying,
		registry:   levels.Default,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Direct) Name() string {
	return d.underlying.Name()
}

func (d *Direct) Level() levels.Level {
	return d.underlying.Level()
}

func (d *Direct) SetLevel(level levels.Level) {
	d.underlying.SetLevel(level)
}

func (d *Direct) Enabled(level levels.Level) bool {
	return d.underlying.Enabled(level)
}

// CmdName returns the name shown on Cmd records.
func (d *Direct) CmdName() string {
	if d.cmdName != "" {
		return d.cmdName
	}
	return d.registry.Name(levels.Cmd)
}

// Registry returns the registry resolving the level names of this logger.
func (d *Direct) Registry() *levels.Registry {
	return d.registry
}

// CallerSkip returns the extra frames skipped on call site lookup.
func (d *Direct) CallerSkip() int {
	return d.callerSkip
}

func (d *Direct) Underlying() Underlying {
	return d.underlying
}

func (d *Direct) WithName(name string) Logger {
	child := *d
	child.underlying = d.underlying.WithName(name)
	return &child
}

func (d *Direct) Log(level levels.Level, msg string, args ...any) {
	d.log(level, "", nil, msg, args)
}

func (d *Direct) Trace(msg string, args ...any) {
	d.log(levels.Trace, "", nil, msg, args)
}

func (d *Direct) Debug(msg string, args ...any) {
	d.log(levels.Debug, "", nil, msg, args)
}

func (d *Direct) Info(msg string, args ...any) {
	d.log(levels.Info, "", nil, msg, args)
}

func (d *Direct) Success(msg string, args ...any) {
	d.log(levels.Success, "", nil, msg, args)
}

func (d *Direct) Notice(msg string, args ...any) {
	d.log(levels.Notice, "", nil, msg, args)
}

func (d *Direct) Cmd(msg string, args ...any) {
	d.log(levels.Cmd, d.CmdName(), nil, msg, args)
}

func (d *Direct) CmdAs(cmdName string, msg string, args ...any) {
	if !d.Enabled(levels.Cmd) {
		return
	}

	name := strings.TrimSpace(cmdName)
	if name == "" {
		warn.OrDefault(d.warner).Warn(EmptyCmdNameWarning)
		name = d.CmdName()
	}
	d.log(levels.Cmd, name, nil, msg, args)
}

func (d *Direct) Warning(msg string, args ...any) {
	d.log(levels.Warning, "", nil, msg, args)
}

func (d *Direct) Error(msg string, args ...any) {
	d.log(levels.Error, "", nil, msg, args)
}

func (d *Direct) Exception(err error, msg string, args ...any) {
	d.log(levels.Error, "", err, msg, args)
}

func (d *Direct) Critical(msg string, args ...any) {
	d.log(levels.Critical, "", nil, msg, args)
}

func (d *Direct) Fatal(msg string, args ...any) {
	d.log(levels.Fatal, "", nil, msg, args)
}

// log must be called directly by the exported output methods, the call depth is part of
// the caller skip.
func (d *Direct) log(level levels.Level, levelName string, err error, msg string, args []any) {
	if !d.underlying.Enabled(level) {
		return
	}

	if levelName == "" {
		levelName = d.registry.Name(level)
	}

	var pcs [1]uintptr
	runtime.Callers(baseCallerSkip+d.callerSkip, pcs[:])

	handleErr := d.underlying.Handle(context.Background(), Record{
		Time:       time.Now(),
		LoggerName: d.underlying.Name(),
		Level:      level,
		LevelName:  levelName,
		Message:    msg,
		Args:       args,
		Err:        err,
		PC:         pcs[0],
	})
	if handleErr != nil {
		warn.OrDefault(d.warner).Warn(fmt.Sprintf("%s: %s: %v", d.underlying.Name(), HandleFailedWarning, handleErr))
	}
}
