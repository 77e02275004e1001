// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package format

import (
	"maps"
	"slices"

	"github.com/mia-platform/logician/levels"
)

const (
	// TimedDetail is the most verbose line format, it carries time and caller location.
	TimedDetail = "{{.Time}}: {{.Name}}: [{{.LevelName}}]: [{{.File}}:{{.Line}} - {{.Func}}()]: {{.Message}}{{.Attrs}}"
	// Detail carries the caller file and function.
	Detail = "{{.Name}}: {{.LevelName}}: [{{.File}} - {{.Func}}()]: {{.Message}}{{.Attrs}}"
	// Short carries the logger name and the level.
	Short = "{{.Name}}: {{.LevelName}}: {{.Message}}{{.Attrs}}"
	// Shorter carries only the level.
	Shorter = "{{.LevelName}}: {{.Message}}{{.Attrs}}"
)

// LevelFormat selects the line format to use for a threshold level.
type LevelFormat interface {
	Format(level levels.Level) string
}

var (
	_ LevelFormat = &SameFormat{}
	_ LevelFormat = &PerLevelFormat{}
)

// SameFormat uses one format whatever the level.
type SameFormat struct {
	format string
}

// Same returns a LevelFormat that always answers format. An empty format means Shorter.
func Same(format string) *SameFormat {
	if format == "" {
		format = Shorter
	}
	return &SameFormat{format: format}
}

func (f *SameFormat) Format(levels.Level) string {
	return f.format
}

// DefaultPerLevel returns a fresh copy of the default level -> format table.
func DefaultPerLevel() map[levels.Level]string {
	return map[levels.Level]string{
		levels.Trace:   TimedDetail,
		levels.Debug:   Detail,
		levels.Info:    Short,
		levels.Warning: Shorter,
	}
}

// PerLevelFormat uses a different format for different levels.
//
// For example, with the default table:
//
//	ERROR: an error occurred.
//	app: INFO: some information
//	app: DEBUG: [main.go - main.run()]: some debug info
//	2025-04-03 20:59:39,418: app: [TRACE]: [main.go:218 - main.run()]: some trace info
type PerLevelFormat struct {
	formats map[levels.Level]string
	sorted  []levels.Level
}

// PerLevel returns a LevelFormat backed by formats. A nil or empty table means
// DefaultPerLevel.
func PerLevel(formats map[levels.Level]string) *PerLevelFormat {
	if len(formats) == 0 {
		formats = DefaultPerLevel()
	}
	formats = maps.Clone(formats)

	return &PerLevelFormat{
		formats: formats,
		sorted:  slices.Sorted(maps.Keys(formats)),
	}
}

// Format returns the format registered for level or, when level has none, the format of
// NextApproxLevel.
func (f *PerLevelFormat) Format(level levels.Level) string {
	if format, ok := f.formats[level]; ok {
		return format
	}
	return f.formats[f.NextApproxLevel(level)]
}

// NextApproxLevel returns the smallest registered level above missing, or the highest
// registered level when missing is above all of them.
func (f *PerLevelFormat) NextApproxLevel(missing levels.Level) levels.Level {
	maxLevel := f.sorted[len(f.sorted)-1]
	if missing >= maxLevel {
		return maxLevel
	}

	for _, level := range f.sorted {
		if level > missing {
			return level
		}
	}
	return maxLevel
}

// Formats returns a copy of the level -> format table.
func (f *PerLevelFormat) Formats() map[levels.Level]string {
	return maps.Clone(f.formats)
}
