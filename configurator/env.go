// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package configurator

import (
	"os"
	"slices"

	"github.com/caarlos0/env/v11"

	"github.com/mia-platform/logician/logger"
)

// AllLogEnv is the variable every AllEnvList reads last.
const AllLogEnv = "LOGICIAN_ALL_LOG"

var _ HasUnderlying = &EnvList{}

// EnvList reads the level from environment variables when Configure is called. The
// first variable has the highest precedence.
type EnvList struct {
	envs         []string
	allLogEnv    string
	configurator LevelConfigurator[string]
	pickup       PickupStrategy[string]
	environ      func() []string
}

// EnvOption customizes an EnvList.
type EnvOption func(*EnvList)

// WithPickupStrategy replaces FirstNonZero.
func WithPickupStrategy(pickup PickupStrategy[string]) EnvOption {
	return func(c *EnvList) {
		if pickup != nil {
			c.pickup = pickup
		}
	}
}

// WithEnviron reads variables from environ instead of os.Environ.
func WithEnviron(environ func() []string) EnvOption {
	return func(c *EnvList) {
		if environ != nil {
			c.environ = environ
		}
	}
}

// WithAllLogEnv replaces AllLogEnv on an AllEnvList.
func WithAllLogEnv(name string) EnvOption {
	return func(c *EnvList) {
		if c.allLogEnv != "" && name != "" {
			c.allLogEnv = name
		}
	}
}

// NewEnvList returns an EnvList reading envs in order. Unset and empty variables are
// skipped.
func NewEnvList(envs []string, configurator LevelConfigurator[string], opts ...EnvOption) *EnvList {
	return newEnvList(envs, "", configurator, opts)
}

// NewAllEnvList is like NewEnvList but always reads AllLogEnv after envs, so every
// logger of a program can be tuned with one variable.
func NewAllEnvList(envs []string, configurator LevelConfigurator[string], opts ...EnvOption) *EnvList {
	return newEnvList(envs, AllLogEnv, configurator, opts)
}

func newEnvList(envs []string, allLogEnv string, configurator LevelConfigurator[string], opts []EnvOption) *EnvList {
	c := &EnvList{
		envs:         slices.Clone(envs),
		allLogEnv:    allLogEnv,
		configurator: configurator,
		pickup:       FirstNonZero[string],
		environ:      os.Environ,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.envs = slices.DeleteFunc(c.envs, func(name string) bool {
		return name == c.allLogEnv
	})
	return c
}

// Envs returns the variables read, highest precedence first.
func (c *EnvList) Envs() []string {
	envs := slices.Clone(c.envs)
	if c.allLogEnv != "" {
		envs = append(envs, c.allLogEnv)
	}
	return envs
}

// LevelList returns the current values of Envs.
func (c *EnvList) LevelList() []string {
	environment := env.ToMap(c.environ())

	envs := c.Envs()
	values := make([]string, 0, len(envs))
	for _, name := range envs {
		values = append(values, environment[name])
	}
	return values
}

func (c *EnvList) Configure(name string) (logger.Logger, error) {
	return configureFromList(name, c.LevelList(), c.pickup, c.configurator)
}

func (c *EnvList) UnderlyingConfigurator() Configurator {
	return c.configurator
}

// WithEnvs returns a copy reading envs too. They take precedence over the current
// variables, unless lowPrecedence is set. The all log variable stays last.
func (c *EnvList) WithEnvs(lowPrecedence bool, envs ...string) *EnvList {
	clone := *c
	if lowPrecedence {
		clone.envs = slices.Concat(c.envs, envs)
	} else {
		clone.envs = slices.Concat(envs, c.envs)
	}
	clone.envs = slices.DeleteFunc(clone.envs, func(name string) bool {
		return name == c.allLogEnv
	})
	return &clone
}
