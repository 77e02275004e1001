// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package stdlog

import (
	"log/slog"

	"github.com/mia-platform/logician/levels"
)

// ReplaceAttr returns a slog.HandlerOptions.ReplaceAttr function for the built-in slog
// handlers. Level values are printed through registry and the attributes carried by
// Logger are renamed to "logger" and "level_name".
func ReplaceAttr(registry *levels.Registry) func(groups []string, attr slog.Attr) slog.Attr {
	if registry == nil {
		registry = levels.Default
	}

	return func(groups []string, attr slog.Attr) slog.Attr {
		if len(groups) > 0 {
			return attr
		}

		switch attr.Key {
		case slog.LevelKey:
			if level, ok := attr.Value.Any().(slog.Level); ok {
				return slog.String(slog.LevelKey, registry.Name(levels.Level(level)))
			}
		case LoggerNameKey:
			attr.Key = "logger"
		case LevelNameKey:
			attr.Key = "level_name"
		}
		return attr
	}
}
