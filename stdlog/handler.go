// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package stdlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/mia-platform/logician/format"
	"github.com/mia-platform/logician/levels"
)

const (
	// LoggerNameKey carries the logger name from Logger to Handler.
	LoggerNameKey = "logician.logger"
	// LevelNameKey carries the resolved level name from Logger to Handler.
	LevelNameKey = "logician.level_name"
	// ErrorKey holds the error of Exception records.
	ErrorKey = "error"
)

// Stream is a writer and the compiled template of its lines.
type Stream struct {
	Writer   io.Writer
	Template *format.Template
}

type stream struct {
	Stream
	lock *sync.Mutex
}

var _ slog.Handler = &Handler{}

// Handler is a slog.Handler that renders every record with the template of each stream
// and writes it to all of them. Level values are logician levels.
type Handler struct {
	streams  []*stream
	leveler  slog.Leveler
	registry *levels.Registry

	attrs  []slog.Attr
	prefix string
}

// NewHandler returns a Handler writing to streams. A Handler without streams discards
// every record. Level names not carried by the records are resolved through registry,
// levels.Default when nil.
func NewHandler(leveler slog.Leveler, registry *levels.Registry, streams ...Stream) *Handler {
	if registry == nil {
		registry = levels.Default
	}

	handlerStreams := make([]*stream, 0, len(streams))
	for _, s := range streams {
		handlerStreams = append(handlerStreams, &stream{Stream: s, lock: new(sync.Mutex)})
	}

	return &Handler{
		streams:  handlerStreams,
		leveler:  leveler,
		registry: registry,
	}
}

// Discard returns a Handler that drops every record.
func Discard(leveler slog.Leveler) *Handler {
	return NewHandler(leveler, nil)
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if len(h.streams) == 0 {
		return false
	}
	return level >= h.leveler.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	fields := format.Fields{
		Time:    record.Time.Format(format.TimeLayout),
		Level:   int(record.Level),
		Message: record.Message,
	}

	attrs := new(strings.Builder)
	for _, attr := range h.attrs {
		writeAttr(attrs, "", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		switch attr.Key {
		case LoggerNameKey:
			fields.Name = attr.Value.String()
		case LevelNameKey:
			fields.LevelName = attr.Value.String()
		default:
			writeAttr(attrs, h.prefix, attr)
		}
		return true
	})
	fields.Attrs = attrs.String()

	if fields.LevelName == "" {
		fields.LevelName = h.registry.Name(levels.Level(record.Level))
	}

	if record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		fields.File = filepath.Base(frame.File)
		fields.Line = frame.Line
		fields.Func = shortFunction(frame.Function)
	}

	var errs error
	for _, s := range h.streams {
		s.lock.Lock()
		err := s.Template.Render(s.Writer, fields)
		s.lock.Unlock()
		errs = errors.Join(errs, err)
	}
	return errs
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		attr.Key = h.prefix + attr.Key
		clone.attrs = append(clone.attrs, attr)
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func writeAttr(builder *strings.Builder, prefix string, attr slog.Attr) {
	value := attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = prefix + attr.Key + "."
		}
		for _, member := range value.Group() {
			writeAttr(builder, groupPrefix, member)
		}
		return
	}

	builder.WriteByte(' ')
	builder.WriteString(prefix + attr.Key)
	builder.WriteByte('=')
	builder.WriteString(quoteIfNeeded(value.String()))
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}

// shortFunction strips the import path from a fully qualified function name.
func shortFunction(function string) string {
	if idx := strings.LastIndexByte(function, '/'); idx >= 0 {
		return function[idx+1:]
	}
	return function
}
