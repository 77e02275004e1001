// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package levels

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrUnknownLevel is returned when a level string is neither numeric nor a registered name.
	ErrUnknownLevel = errors.New("unknown log level")

	// Default is the registry used when no other registry is supplied.
	Default = NewRegistry()
)

// Registry holds the level <-> name tables. It is safe for concurrent use.
type Registry struct {
	lock sync.RWMutex

	byLevel map[Level]string
	byName  map[string]Level
}

// NewRegistry returns a registry seeded with the default levels.
func NewRegistry() *Registry {
	r := &Registry{
		byLevel: make(map[Level]string),
		byName:  make(map[string]Level),
	}
	r.add(DefaultNames())
	r.byName[warnAlias] = Warning
	return r
}

// Register applies the default names and then the supplied ones, overriding the names
// of known levels and adding the unknown levels. A nil or empty map only restores the
// default names. It returns the complete level -> name mapping after registration.
func (r *Registry) Register(names map[Level]string) map[Level]string {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.add(DefaultNames())
	if len(names) > 0 {
		r.add(names)
	}

	return maps.Clone(r.byLevel)
}

func (r *Registry) add(names map[Level]string) {
	for level, name := range names {
		r.byLevel[level] = name
		r.byName[name] = level
	}
}

// Name returns the registered name for level or "Level <n>" when it is not registered.
func (r *Registry) Name(level Level) string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if name, ok := r.byLevel[level]; ok {
		return name
	}
	return "Level " + strconv.Itoa(int(level))
}

// Lookup returns the level registered with name. Names are matched exactly first and
// then in their upper case form.
func (r *Registry) Lookup(name string) (Level, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if level, ok := r.byName[name]; ok {
		return level, true
	}
	level, ok := r.byName[strings.ToUpper(name)]
	return level, ok
}

// Parse converts s into a Level. Numeric strings are always accepted, even when the
// level has no registered name; any other string must be a registered name.
func (r *Registry) Parse(s string) (Level, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return NotSet, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}

	if isDigits(trimmed) {
		value, err := strconv.Atoi(trimmed)
		if err != nil {
			return NotSet, fmt.Errorf("%w: %q: %w", ErrUnknownLevel, s, err)
		}
		return Level(value), nil
	}

	if level, ok := r.Lookup(trimmed); ok {
		return level, nil
	}
	return NotSet, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Levels returns the registered levels in ascending order.
func (r *Registry) Levels() []Level {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return slices.Sorted(maps.Keys(r.byLevel))
}

// Names returns the registered names ordered by ascending level.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, 0, len(r.byLevel))
	for _, level := range slices.Sorted(maps.Keys(r.byLevel)) {
		names = append(names, r.byLevel[level])
	}
	return names
}

// Mapping returns a copy of the level -> name table.
func (r *Registry) Mapping() map[Level]string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return maps.Clone(r.byLevel)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
