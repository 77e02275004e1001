// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
)

type contextKey struct{}

// WithContext returns a copy of ctx carrying log.
func WithContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext returns the logger carried by ctx, or a logger that discards everything.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return nullLogger
	}

	if log, ok := ctx.Value(contextKey{}).(Logger); ok {
		return log
	}
	return nullLogger
}

// Named returns the logger carried by ctx with name appended to its name.
func Named(ctx context.Context, name string) Logger {
	return FromContext(ctx).WithName(name)
}
