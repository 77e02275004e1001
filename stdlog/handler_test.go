// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package stdlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logician/format"
	"github.com/mia-platform/logician/levels"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func levelVar(level levels.Level) *slog.LevelVar {
	lv := new(slog.LevelVar)
	lv.Set(slog.Level(level))
	return lv
}

func TestHandlerRendersAllStreams(t *testing.T) {
	t.Parallel()

	short := new(bytes.Buffer)
	shorter := new(bytes.Buffer)
	handler := NewHandler(levelVar(levels.Info), nil,
		Stream{Writer: short, Template: format.MustCompile(format.Short)},
		Stream{Writer: shorter, Template: format.MustCompile(format.Shorter)},
	)

	record := slog.NewRecord(time.Now(), slog.Level(levels.Success), "deployed", 0)
	record.AddAttrs(slog.String(LoggerNameKey, "app"), slog.Int("replicas", 3))
	require.NoError(t, handler.Handle(t.Context(), record))

	assert.Equal(t, "app: SUCCESS: deployed replicas=3\n", short.String())
	assert.Equal(t, "SUCCESS: deployed replicas=3\n", shorter.String())
}

func TestHandlerEnabled(t *testing.T) {
	t.Parallel()

	lv := levelVar(levels.Warning)
	handler := NewHandler(lv, nil, Stream{Writer: new(bytes.Buffer), Template: format.MustCompile(format.Shorter)})

	assert.False(t, handler.Enabled(t.Context(), slog.Level(levels.Cmd)))
	assert.True(t, handler.Enabled(t.Context(), slog.Level(levels.Warning)))

	lv.Set(slog.Level(levels.Cmd))
	assert.True(t, handler.Enabled(t.Context(), slog.Level(levels.Cmd)))

	discard := Discard(lv)
	assert.False(t, discard.Enabled(t.Context(), slog.Level(levels.Fatal)))
	assert.NoError(t, discard.Handle(t.Context(), slog.NewRecord(time.Now(), slog.Level(levels.Fatal), "dropped", 0)))
}

func TestHandlerLevelNames(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		level    levels.Level
		attrs    []slog.Attr
		registry *levels.Registry
		expected string
	}{
		"carried name wins": {
			level:    levels.Cmd,
			attrs:    []slog.Attr{slog.String(LevelNameKey, "BUILD")},
			expected: "BUILD: message\n",
		},
		"default registry": {
			level:    levels.Notice,
			expected: "NOTICE: message\n",
		},
		"unregistered level": {
			level:    33,
			expected: "Level 33: message\n",
		},
		"custom registry": {
			level: 33,
			registry: func() *levels.Registry {
				registry := levels.NewRegistry()
				registry.Register(map[levels.Level]string{33: "ALERT"})
				return registry
			}(),
			expected: "ALERT: message\n",
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			buffer := new(bytes.Buffer)
			handler := NewHandler(levelVar(levels.Trace), test.registry, Stream{Writer: buffer, Template: format.MustCompile(format.Shorter)})
			record := slog.NewRecord(time.Now(), slog.Level(test.level), "message", 0)
			record.AddAttrs(test.attrs...)

			require.NoError(t, handler.Handle(t.Context(), record))
			assert.Equal(t, test.expected, buffer.String())
		})
	}
}

func TestHandlerAttrsAndGroups(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	var handler slog.Handler = NewHandler(levelVar(levels.Trace), nil, Stream{Writer: buffer, Template: format.MustCompile(format.Shorter)})
	handler = handler.WithAttrs([]slog.Attr{slog.String("service", "api")})
	handler = handler.WithGroup("request")
	handler = handler.WithAttrs([]slog.Attr{slog.String("id", "42")})
	handler = handler.WithGroup("")

	record := slog.NewRecord(time.Now(), slog.Level(levels.Info), "served", 0)
	record.AddAttrs(
		slog.String("path", "/a b"),
		slog.Group("timing", slog.Int("ms", 7)),
		slog.String("empty", ""),
	)
	require.NoError(t, handler.Handle(context.Background(), record))

	assert.Equal(t, `INFO: served service=api request.id=42 request.path="/a b" request.timing.ms=7 request.empty=""`+"\n", buffer.String())
}

func TestHandlerCallerFields(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	handler := NewHandler(levelVar(levels.Trace), nil, Stream{
		Writer:   buffer,
		Template: format.MustCompile("{{.File}} {{.Func}}"),
	})
	log := slog.New(handler)
	log.Log(t.Context(), slog.Level(levels.Info), "where")

	assert.Equal(t, "handler_test.go stdlog.TestHandlerCallerFields\n", buffer.String())
}

func TestHandlerJoinsWriteErrors(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	handler := NewHandler(levelVar(levels.Trace), nil,
		Stream{Writer: failingWriter{}, Template: format.MustCompile(format.Shorter)},
		Stream{Writer: buffer, Template: format.MustCompile(format.Shorter)},
	)

	err := handler.Handle(t.Context(), slog.NewRecord(time.Now(), slog.Level(levels.Error), "boom", 0))
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, "ERROR: boom\n", buffer.String())
}

func TestTimeField(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	handler := NewHandler(levelVar(levels.Trace), nil, Stream{Writer: buffer, Template: format.MustCompile("{{.Time}}")})
	when := time.Date(2024, time.March, 5, 14, 7, 9, 123_000_000, time.UTC)
	require.NoError(t, handler.Handle(t.Context(), slog.NewRecord(when, slog.Level(levels.Info), "", 0)))

	assert.Equal(t, "2024-03-05 14:07:09,123", strings.TrimSpace(buffer.String()))
}
