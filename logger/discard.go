// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
	"sync/atomic"

	"github.com/mia-platform/logician/levels"
)

var (
	_ Underlying = &discardUnderlying{}

	discardLogger = NewDirect(NewDiscard(""))
)

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return discardLogger
}

// discardUnderlying keeps its name and level so it can stand in for a real backend, but
// it never reports a level as enabled.
type discardUnderlying struct {
	name  string
	level *atomic.Int64
}

// NewDiscard returns an Underlying logger that drops every record.
func NewDiscard(name string) Underlying {
	level := new(atomic.Int64)
	level.Store(int64(levels.Warning))
	return &discardUnderlying{name: name, level: level}
}

func (u *discardUnderlying) Name() string {
	return u.name
}

func (u *discardUnderlying) Level() levels.Level {
	return levels.Level(u.level.Load())
}

func (u *discardUnderlying) SetLevel(level levels.Level) {
	u.level.Store(int64(level))
}

func (u *discardUnderlying) Enabled(levels.Level) bool {
	return false
}

func (u *discardUnderlying) Handle(context.Context, Record) error {
	return nil
}

func (u *discardUnderlying) WithName(name string) Underlying {
	return &discardUnderlying{name: ChildName(u.name, name), level: u.level}
}
