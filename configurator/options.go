// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package configurator

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/mia-platform/logician/format"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
	"github.com/mia-platform/logician/warn"
)

// Option customizes Std and Backend configurators.
type Option func(*settings)

type settings struct {
	level      string
	cmdName    string
	levelNames map[levels.Level]string
	noWarn     bool
	warner     warn.Warner
	registry   *levels.Registry
	callerSkip int

	streamFormats    []format.StreamFormat
	streamFormatsSet bool
	perLevel         bool
	streams          []io.Writer
	streamsSet       bool
}

func newSettings() *settings {
	return &settings{
		level:    levels.WarningName,
		registry: levels.NewRegistry(),
	}
}

func (s *settings) apply(opts []Option) error {
	for _, opt := range opts {
		opt(s)
	}

	if s.streamFormatsSet && s.streamsSet {
		return fmt.Errorf("%w: %s", ErrConflictingOptions, warn.NotAllowedTogether("WithStreamFormats", "WithStreams"))
	}
	if s.streamFormatsSet && s.perLevel {
		return fmt.Errorf("%w: %s", ErrConflictingOptions, warn.NotAllowedTogether("WithStreamFormats", "WithPerLevelFormats"))
	}
	return nil
}

func (s *settings) clone() *settings {
	clone := *s
	clone.levelNames = maps.Clone(s.levelNames)
	clone.streamFormats = slices.Clone(s.streamFormats)
	clone.streams = slices.Clone(s.streams)
	return &clone
}

// warnerOrDiscard returns the sink of configuration warnings.
func (s *settings) warnerOrDiscard() warn.Warner {
	if s.noWarn {
		return warn.Discard
	}
	return warn.OrDefault(s.warner)
}

// resolvedStreamFormats returns the stream formats the options describe. An explicit
// empty list means no stream at all.
func (s *settings) resolvedStreamFormats() []format.StreamFormat {
	switch {
	case s.streamFormatsSet:
		return s.streamFormats
	case s.streamsSet:
		return format.ForStreams(s.perLevel, s.streams...)
	case s.perLevel:
		return format.StderrPerLevel()
	default:
		return format.StderrSame()
	}
}

func (s *settings) loggerOptions() []logger.Option {
	return []logger.Option{
		logger.WithRegistry(s.registry),
		logger.WithCmdName(s.cmdName),
		logger.WithCallerSkip(s.callerSkip),
		logger.WithWarner(s.warnerOrDiscard()),
	}
}

// WithLevel sets the level as a name ("INFO"), an alias ("WARN") or a number ("20").
func WithLevel(level string) Option {
	return func(s *settings) {
		s.level = level
	}
}

// WithLevelValue sets the level as a number.
func WithLevelValue(level levels.Level) Option {
	return WithLevel(level.Spec())
}

// WithCmdName sets the level name of Cmd records.
func WithCmdName(name string) Option {
	return func(s *settings) {
		s.cmdName = name
	}
}

// WithStreamFormats sets every output stream with its formats. Calling it without
// arguments configures a logger writing nowhere. It cannot be combined with WithStreams
// or WithPerLevelFormats.
func WithStreamFormats(streamFormats ...format.StreamFormat) Option {
	return func(s *settings) {
		s.streamFormats = streamFormats
		s.streamFormatsSet = true
	}
}

// WithStreams sets the output streams. Calling it without arguments configures a logger
// writing nowhere.
func WithStreams(streams ...io.Writer) Option {
	return func(s *settings) {
		s.streams = streams
		s.streamsSet = true
	}
}

// WithPerLevelFormats selects the default per level formats instead of one format for
// all levels.
func WithPerLevelFormats(perLevel bool) Option {
	return func(s *settings) {
		s.perLevel = perLevel
	}
}

// WithLevelNames registers additional or replacement level names.
func WithLevelNames(names map[levels.Level]string) Option {
	return func(s *settings) {
		s.levelNames = maps.Clone(names)
	}
}

// WithNoWarn suppresses configuration and logger warnings.
func WithNoWarn() Option {
	return func(s *settings) {
		s.noWarn = true
	}
}

// WithWarner sends warnings to w instead of warn.Default.
func WithWarner(w warn.Warner) Option {
	return func(s *settings) {
		s.warner = w
	}
}

// WithRegistry resolves level names through registry. Every configurator owns a fresh
// registry by default.
func WithRegistry(registry *levels.Registry) Option {
	return func(s *settings) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithCallerSkip sets the extra frames skipped when looking up the call site.
func WithCallerSkip(skip int) Option {
	return func(s *settings) {
		s.callerSkip = skip
	}
}
