// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package backend groups the adapters that turn third party loggers into a
// logger.Underlying. Every adapter keeps its own logician threshold, shared with its
// children, and maps logician levels on the nearest native level; the logician level
// name is added as a level_name field when the native level would print differently.
package backend

import (
	"strings"
	"sync/atomic"

	"github.com/mia-platform/logician/levels"
)

// LevelNameKey is the field carrying the logician level name.
const LevelNameKey = "level_name"

// Threshold is a level shared between a backend logger and its children.
type Threshold struct {
	level atomic.Int64
}

// NewThreshold returns a Threshold starting at level.
func NewThreshold(level levels.Level) *Threshold {
	t := new(Threshold)
	t.Set(level)
	return t
}

func (t *Threshold) Get() levels.Level {
	return levels.Level(t.level.Load())
}

func (t *Threshold) Set(level levels.Level) {
	t.level.Store(int64(level))
}

// Enabled reports if level reaches the threshold.
func (t *Threshold) Enabled(level levels.Level) bool {
	return level >= t.Get()
}

// NeedsLevelName reports if levelName must be added to a record printed with the native
// level called nativeName.
func NeedsLevelName(nativeName, levelName string) bool {
	if levelName == "" || strings.EqualFold(nativeName, levelName) {
		return false
	}
	return !(strings.EqualFold(nativeName, "warn") && levelName == levels.WarningName)
}
