// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package vq

import (
	"github.com/mia-platform/logician/warn"
)

// Sep resolves verbosity and quietness given as two separate values.
type Sep[T any] interface {
	Validate(verbosity, quietness Key) error
	EffectiveLevel(verbosity, quietness Key, defaultLevel T) (T, error)
}

// Comm resolves a single key that is either a verbosity or a quietness.
type Comm[T any] interface {
	Validate(key Key) error
	EffectiveLevel(key Key, defaultLevel T) (T, error)
}

var (
	_ Sep[string]  = &SepExclusive[string]{}
	_ Comm[string] = &Common[string]{}
)

// SepExclusive rejects verbosity and quietness given together.
type SepExclusive[T any] struct {
	levelMap Map[T]
	handler  warn.KeyErrorHandler[T]
}

// NewSepExclusive returns a SepExclusive over levelMap. Unknown keys resolve to the
// default level with a warning when warnOnly is set, or fail with a *warn.KeyError.
func NewSepExclusive[T any](levelMap Map[T], warnOnly bool, warner warn.Warner) *SepExclusive[T] {
	return &SepExclusive[T]{
		levelMap: levelMap,
		handler:  warn.WarningWithDefault[T]{WarnOnly: warnOnly, Warner: warner},
	}
}

func (s *SepExclusive[T]) Validate(verbosity, quietness Key) error {
	if verbosity != None && quietness != None {
		return ErrTogether
	}
	return nil
}

func (s *SepExclusive[T]) EffectiveLevel(verbosity, quietness Key, defaultLevel T) (T, error) {
	if err := s.Validate(verbosity, quietness); err != nil {
		var zero T
		return zero, err
	}

	if verbosity != None {
		return LevelOrDefault(s.levelMap, s.handler, verbosity, EmphasisVerbosity, defaultLevel, Choices(s.levelMap, EmphasisVerbosity))
	}
	return LevelOrDefault(s.levelMap, s.handler, quietness, EmphasisQuietness, defaultLevel, Choices(s.levelMap, EmphasisQuietness))
}

// Common accepts verbosity or quietness in one key.
type Common[T any] struct {
	levelMap Map[T]
	handler  warn.KeyErrorHandler[T]
}

// NewCommon returns a Common over levelMap, handling unknown keys like NewSepExclusive.
func NewCommon[T any](levelMap Map[T], warnOnly bool, warner warn.Warner) *Common[T] {
	return &Common[T]{
		levelMap: levelMap,
		handler:  warn.WarningWithDefault[T]{WarnOnly: warnOnly, Warner: warner},
	}
}

// Validate rejects keys mixing 'v' and 'q'.
func (c *Common[T]) Validate(key Key) error {
	if key == None || key.IsVerbosity() || key.IsQuietness() {
		return nil
	}
	if _, ok := c.levelMap[key]; ok {
		return nil
	}

	hasV, hasQ := false, false
	for _, r := range key {
		hasV = hasV || r == 'v'
		hasQ = hasQ || r == 'q'
	}
	if hasV && hasQ {
		return ErrTogether
	}
	return nil
}

func (c *Common[T]) EffectiveLevel(key Key, defaultLevel T) (T, error) {
	if err := c.Validate(key); err != nil {
		var zero T
		return zero, err
	}
	return LevelOrDefault(c.levelMap, c.handler, key, EmphasisCommon, defaultLevel, Choices(c.levelMap, EmphasisCommon))
}
