// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package configurator

import (
	"github.com/mia-platform/logician/logger"
)

var _ HasUnderlying = &Supplier[string]{}

// Supplier asks its supply function for the level on every Configure call and sets it
// on the decorated configurator.
type Supplier[T any] struct {
	supply       func() T
	configurator LevelConfigurator[T]
}

func NewSupplier[T any](supply func() T, configurator LevelConfigurator[T]) *Supplier[T] {
	return &Supplier[T]{supply: supply, configurator: configurator}
}

func (c *Supplier[T]) Configure(name string) (logger.Logger, error) {
	c.configurator.SetLevel(c.supply())
	return c.configurator.Configure(name)
}

func (c *Supplier[T]) UnderlyingConfigurator() Configurator {
	return c.configurator
}
