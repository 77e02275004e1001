// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package configurator

import (
	"fmt"
	"sync"

	"github.com/mia-platform/logician/configurator/vq"
	"github.com/mia-platform/logician/logger"
	"github.com/mia-platform/logician/warn"
)

var (
	_ HasUnderlying             = &VQSep{}
	_ LevelConfigurator[vq.Key] = &VQComm{}
	_ HasUnderlying             = &VQComm{}
)

// VQOption customizes VQSep and VQComm.
type VQOption func(*vqSettings)

type vqSettings struct {
	levelMap     vq.Map[string]
	defaultLevel string
	warner       warn.Warner
	sep          vq.Sep[string]
	comm         vq.Comm[string]
}

func newVQSettings(opts []VQOption) *vqSettings {
	s := &vqSettings{defaultLevel: vq.DefaultLevel}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.levelMap) == 0 {
		s.levelMap = vq.DefaultMap()
	}
	if s.sep == nil {
		s.sep = vq.NewSepExclusive(s.levelMap, true, s.warner)
	}
	if s.comm == nil {
		s.comm = vq.NewCommon(s.levelMap, true, s.warner)
	}
	return s
}

// WithLevelMap replaces vq.DefaultMap.
func WithLevelMap(levelMap vq.Map[string]) VQOption {
	return func(s *vqSettings) {
		s.levelMap = levelMap
	}
}

// WithDefaultLevel sets the level used when no key is given.
func WithDefaultLevel(level string) VQOption {
	return func(s *vqSettings) {
		s.defaultLevel = level
	}
}

// WithVQWarner sends unknown key warnings to w.
func WithVQWarner(w warn.Warner) VQOption {
	return func(s *vqSettings) {
		s.warner = w
	}
}

// WithSepResolver replaces the vq.SepExclusive used by VQSep.
func WithSepResolver(sep vq.Sep[string]) VQOption {
	return func(s *vqSettings) {
		s.sep = sep
	}
}

// WithCommResolver replaces the vq.Common used by VQComm.
func WithCommResolver(comm vq.Comm[string]) VQOption {
	return func(s *vqSettings) {
		s.comm = comm
	}
}

// VQSep decorates a configurator with a verbosity and a quietness given separately.
// The resolved level is set on the configured logger.
type VQSep struct {
	configurator Configurator
	verbosity    vq.Key
	quietness    vq.Key
	settings     *vqSettings
}

// NewVQSep returns a VQSep. By default verbosity and quietness cannot be given together.
func NewVQSep(configurator Configurator, verbosity, quietness vq.Key, opts ...VQOption) (*VQSep, error) {
	s := newVQSettings(opts)
	if err := s.sep.Validate(verbosity, quietness); err != nil {
		return nil, err
	}

	return &VQSep{
		configurator: configurator,
		verbosity:    verbosity,
		quietness:    quietness,
		settings:     s,
	}, nil
}

// LevelMap returns the key -> level table in use.
func (c *VQSep) LevelMap() vq.Map[string] {
	return c.settings.levelMap
}

func (c *VQSep) Configure(name string) (logger.Logger, error) {
	levelSpec, err := c.settings.sep.EffectiveLevel(c.verbosity, c.quietness, c.settings.defaultLevel)
	if err != nil {
		return nil, err
	}

	log, err := c.configurator.Configure(name)
	if err != nil {
		return nil, err
	}

	level, err := registryOf(c.configurator).Parse(levelSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidLevel, name, err)
	}
	log.SetLevel(level)
	return log, nil
}

func (c *VQSep) UnderlyingConfigurator() Configurator {
	return c.configurator
}

// VQComm decorates a level configurator with one key that is either a verbosity or a
// quietness. The resolved level is set on the decorated configurator before configuring.
type VQComm struct {
	lock         sync.RWMutex
	key          vq.Key
	configurator LevelConfigurator[string]
	settings     *vqSettings
}

func NewVQComm(key vq.Key, configurator LevelConfigurator[string], opts ...VQOption) (*VQComm, error) {
	s := newVQSettings(opts)
	if err := s.comm.Validate(key); err != nil {
		return nil, err
	}

	return &VQComm{
		key:          key,
		configurator: configurator,
		settings:     s,
	}, nil
}

// LevelMap returns the key -> level table in use.
func (c *VQComm) LevelMap() vq.Map[string] {
	return c.settings.levelMap
}

func (c *VQComm) Level() vq.Key {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.key
}

func (c *VQComm) SetLevel(key vq.Key) vq.Key {
	c.lock.Lock()
	defer c.lock.Unlock()
	previous := c.key
	c.key = key
	return previous
}

func (c *VQComm) Configure(name string) (logger.Logger, error) {
	level, err := c.settings.comm.EffectiveLevel(c.Level(), c.settings.defaultLevel)
	if err != nil {
		return nil, err
	}

	c.configurator.SetLevel(level)
	return c.configurator.Configure(name)
}

func (c *VQComm) UnderlyingConfigurator() Configurator {
	return c.configurator
}
