// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package warn carries the non fatal problems found while configuring loggers: unknown
// levels, unknown verbosity keys, blank command names. A problem can be reported as a
// warning and replaced by a default, or surfaced as an error.
package warn

import (
	"fmt"
	"os"
	"sync"

	"github.com/mia-platform/logician/internal/logger"
)

const (
	// category prefixes every warning emitted by Default.
	category = "UserWarning"
)

// Warner receives warnings.
type Warner interface {
	Warn(msg string)
}

// Func adapts a plain function to a Warner.
type Func func(msg string)

func (f Func) Warn(msg string) {
	f(msg)
}

var (
	_ Warner = Func(nil)
	_ Warner = &Recorder{}

	// Discard drops every warning.
	Discard Warner = Func(func(string) {})

	// Default writes warnings to stderr through the diagnostics logger.
	Default Warner = NewLoggerWarner(logger.NewTextLogger(os.Stderr, logger.WARN).WithName("warnings"))
)

// NewLoggerWarner returns a Warner that logs every warning at WARN level on log.
func NewLoggerWarner(log logger.Logger) Warner {
	return Func(func(msg string) {
		log.Warn(fmt.Sprintf("%s: %s", category, msg))
	})
}

// OrDefault returns w, or Default when w is nil.
func OrDefault(w Warner) Warner {
	if w == nil {
		return Default
	}
	return w
}

// Recorder keeps the warnings it receives. It is safe for concurrent use.
type Recorder struct {
	lock     sync.Mutex
	messages []string
}

func (r *Recorder) Warn(msg string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of the recorded warnings.
func (r *Recorder) Messages() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.messages...)
}

// NotAllowedTogether builds the message for two options that exclude each other.
func NotAllowedTogether(first, second string) string {
	return fmt.Sprintf("cannot provide both '%s' and '%s': choose one", first, second)
}
