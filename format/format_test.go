// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package format

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logician/levels"
)

func TestSameFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Shorter, Same("").Format(levels.Debug))
	assert.Equal(t, Detail, Same(Detail).Format(levels.Fatal))
}

func TestPerLevelFormat(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		formats  map[levels.Level]string
		level    levels.Level
		expected string
	}{
		"registered level": {
			level:    levels.Debug,
			expected: Detail,
		},
		"below every registered level picks the lowest": {
			level:    1,
			expected: TimedDetail,
		},
		"between levels picks the next upper one": {
			level:    levels.Success,
			expected: Shorter,
		},
		"above every registered level picks the highest": {
			level:    levels.Fatal,
			expected: Shorter,
		},
		"custom table": {
			formats:  map[levels.Level]string{15: "a", 35: "b"},
			level:    levels.Warning,
			expected: "b",
		},
		"empty table uses defaults": {
			formats:  map[levels.Level]string{},
			level:    levels.Info,
			expected: Short,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, PerLevel(test.formats).Format(test.level))
		})
	}
}

func TestNextApproxLevel(t *testing.T) {
	t.Parallel()

	lf := PerLevel(nil)
	assert.Equal(t, levels.Debug, lf.NextApproxLevel(6))
	assert.Equal(t, levels.Info, lf.NextApproxLevel(levels.Debug))
	assert.Equal(t, levels.Warning, lf.NextApproxLevel(levels.Warning))
	assert.Equal(t, levels.Warning, lf.NextApproxLevel(100))
}

func TestPerLevelDoesNotShareCallerTable(t *testing.T) {
	t.Parallel()

	table := map[levels.Level]string{levels.Info: "info"}
	lf := PerLevel(table)
	table[levels.Info] = "changed"
	assert.Equal(t, "info", lf.Format(levels.Info))
}

func TestCompileAndRender(t *testing.T) {
	t.Parallel()

	tmpl, err := Compile(TimedDetail)
	require.NoError(t, err)
	assert.Equal(t, TimedDetail, tmpl.Source())

	buffer := new(bytes.Buffer)
	err = tmpl.Render(buffer, Fields{
		Time:      "2025-04-03 20:59:39,418",
		Name:      "app",
		LevelName: "TRACE",
		File:      "main.go",
		Line:      218,
		Func:      "main.run",
		Message:   "some trace info",
		Attrs:     " key=value",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-04-03 20:59:39,418: app: [TRACE]: [main.go:218 - main.run()]: some trace info key=value\n", buffer.String())
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"unterminated action": "{{.Message",
		"unknown field":       "{{.Unknown}}",
	}

	for name, source := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Compile(source)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTemplate)
		})
	}

	assert.Panics(t, func() { MustCompile("{{") })
}

func TestForStreams(t *testing.T) {
	t.Parallel()

	first := new(bytes.Buffer)
	second := new(bytes.Buffer)

	same := ForStreams(false, first, second)
	require.Len(t, same, 2)
	assert.Same(t, first, same[0].Writer)
	assert.IsType(t, &SameFormat{}, same[1].Format)

	perLevel := ForStreams(true, first)
	require.Len(t, perLevel, 1)
	assert.IsType(t, &PerLevelFormat{}, perLevel[0].Format)

	assert.Empty(t, ForStreams(true))

	assert.Equal(t, os.Stderr, StderrSame()[0].Writer)
	assert.IsType(t, &PerLevelFormat{}, StderrPerLevel()[0].Format)
}
