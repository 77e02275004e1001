// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package vq turns verbosity (v, vv, vvv) and quietness (q, qq, qqq) keys into logging
// levels.
package vq

import (
	"errors"
	"slices"
	"strings"

	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/warn"
)

// Key is a verbosity or quietness key. The empty Key means neither was given.
type Key string

const (
	None Key = ""
	V    Key = "v"
	VV   Key = "vv"
	VVV  Key = "vvv"
	Q    Key = "q"
	QQ   Key = "qq"
	QQQ  Key = "qqq"

	// MaxCount is the number of repetitions covered by the default keys.
	MaxCount = 3
)

const (
	EmphasisVerbosity = "verbosity"
	EmphasisQuietness = "quietness"
	EmphasisCommon    = "verbosity or quietness"
)

var (
	// ErrTogether is returned when verbosity and quietness are both requested.
	ErrTogether = errors.New("verbosity and quietness are not allowed together")
)

// Map binds keys to logging levels.
type Map[T any] map[Key]T

// DefaultMap returns a fresh copy of the default key -> level table.
func DefaultMap() Map[string] {
	return Map[string]{
		V:   levels.InfoName,
		VV:  levels.DebugName,
		VVV: levels.TraceName,
		Q:   levels.ErrorName,
		QQ:  levels.CriticalName,
		QQQ: levels.FatalName,
	}
}

// DefaultLevel is used when no key is given.
const DefaultLevel = levels.WarningName

// IsVerbosity reports if k is made only of 'v'.
func (k Key) IsVerbosity() bool {
	return k != None && strings.Trim(string(k), "v") == ""
}

// IsQuietness reports if k is made only of 'q'.
func (k Key) IsQuietness() bool {
	return k != None && strings.Trim(string(k), "q") == ""
}

// KeyFromCount builds the key of repeated -v or -q flags. Counts above MaxCount are
// clamped.
func KeyFromCount(verbose, quiet int) (Key, error) {
	switch {
	case verbose > 0 && quiet > 0:
		return None, ErrTogether
	case verbose > 0:
		return Key(strings.Repeat("v", min(verbose, MaxCount))), nil
	case quiet > 0:
		return Key(strings.Repeat("q", min(quiet, MaxCount))), nil
	default:
		return None, nil
	}
}

// Choices returns the keys of m accepted for emphasis, shortest first.
func Choices[T any](m Map[T], emphasis string) []string {
	choices := make([]string, 0, len(m))
	for key := range m {
		switch {
		case emphasis == EmphasisVerbosity && !key.IsVerbosity():
		case emphasis == EmphasisQuietness && !key.IsQuietness():
		default:
			choices = append(choices, string(key))
		}
	}

	slices.SortFunc(choices, func(a, b string) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return strings.Compare(a, b)
	})
	return choices
}

// LevelOrDefault returns the level of key in m, defaultLevel when key is None and asks
// handler what to do when key is missing from m.
func LevelOrDefault[T any](m Map[T], handler warn.KeyErrorHandler[T], key Key, emphasis string, defaultLevel T, choices []string) (T, error) {
	if key == None {
		return defaultLevel, nil
	}

	if level, ok := m[key]; ok {
		return level, nil
	}
	return handler.HandleKeyError(string(key), defaultLevel, emphasis, choices)
}
