// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package warn

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is wrapped by every KeyError.
	ErrKeyNotFound = errors.New("key not found")
)

// KeyError reports a key missing from a lookup table together with the accepted keys.
type KeyError struct {
	Key      string
	Emphasis string
	Choices  []string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("unexpected %s: '%s', choose from %v", e.Emphasis, e.Key, e.Choices)
}

func (e *KeyError) Unwrap() error {
	return ErrKeyNotFound
}

// KeyErrorHandler decides what a missing key turns into: a default value or an error.
type KeyErrorHandler[T any] interface {
	HandleKeyError(key string, defaultValue T, emphasis string, choices []string) (T, error)
}

var _ KeyErrorHandler[int] = WarningWithDefault[int]{}

// WarningWithDefault warns and returns the default value when WarnOnly is set, otherwise
// it returns a *KeyError.
type WarningWithDefault[T any] struct {
	WarnOnly bool
	Warner   Warner
}

func (h WarningWithDefault[T]) HandleKeyError(key string, defaultValue T, emphasis string, choices []string) (T, error) {
	keyErr := &KeyError{Key: key, Emphasis: emphasis, Choices: choices}
	if !h.WarnOnly {
		var zero T
		return zero, keyErr
	}

	OrDefault(h.Warner).Warn(fmt.Sprintf("%s; using default '%v'", keyErr.Error(), defaultValue))
	return defaultValue, nil
}
