// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package configurator

import (
	"errors"
	"fmt"

	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
	"github.com/mia-platform/logician/warn"
)

var (
	// ErrConflictingOptions is returned when two options exclude each other.
	ErrConflictingOptions = errors.New("conflicting options")
	// ErrNilLevelList is returned by NewList for a nil level list.
	ErrNilLevelList = errors.New("level list must not be nil")
	// ErrInvalidLevel is returned when a resolved level cannot be applied to a logger.
	ErrInvalidLevel = errors.New("invalid level")
)

// DefaultLevel is the level used when none, or an unknown one, is configured.
const DefaultLevel = levels.Warning

// Configurator builds a configured logger.
type Configurator interface {
	Configure(name string) (logger.Logger, error)
}

// LevelTarget holds a level that can be replaced before the next Configure call.
type LevelTarget[T any] interface {
	Level() T
	// SetLevel replaces the level and returns the previous one.
	SetLevel(level T) T
}

// LevelConfigurator is a Configurator whose level can be changed.
type LevelConfigurator[T any] interface {
	Configurator
	LevelTarget[T]
}

// HasUnderlying is implemented by configurators decorating another one.
type HasUnderlying interface {
	UnderlyingConfigurator() Configurator
}

// RegistryProvider is implemented by configurators resolving levels through their own
// registry.
type RegistryProvider interface {
	Registry() *levels.Registry
}

func registryOf(c Configurator) *levels.Registry {
	for c != nil {
		if provider, ok := c.(RegistryProvider); ok {
			return provider.Registry()
		}
		decorator, ok := c.(HasUnderlying)
		if !ok {
			break
		}
		c = decorator.UnderlyingConfigurator()
	}
	return levels.Default
}

// resolveLevel parses level through registry. An unknown level is reported to warner
// and replaced by DefaultLevel; an empty level silently means DefaultLevel.
func resolveLevel(name, level string, registry *levels.Registry, warner warn.Warner) levels.Level {
	if level == "" {
		return DefaultLevel
	}

	parsed, err := registry.Parse(level)
	if err == nil {
		return parsed
	}

	warner.Warn(fmt.Sprintf("%s: Undefined log level '%s'. Choose from %v.", name, level, registry.Names()))
	warner.Warn(fmt.Sprintf("%s: Setting log level to default: '%s'.", name, registry.Name(DefaultLevel)))
	return DefaultLevel
}
