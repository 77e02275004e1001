// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package configurator

import (
	"slices"

	"github.com/mia-platform/logician/logger"
)

var _ HasUnderlying = &List[string]{}

// PickupStrategy chooses a level from a list. It returns false when nothing fits.
type PickupStrategy[T comparable] func(levelList []T) (T, bool)

// FirstNonZero picks the first level that is not the zero value.
func FirstNonZero[T comparable](levelList []T) (T, bool) {
	var zero T
	for _, level := range levelList {
		if level != zero {
			return level, true
		}
	}
	return zero, false
}

// List picks a level from a list and sets it on the decorated configurator before
// configuring. When nothing is picked the decorated configurator keeps its own level.
type List[T comparable] struct {
	levelList    []T
	configurator LevelConfigurator[T]
	pickup       PickupStrategy[T]
}

// NewList returns a List. A nil pickup means FirstNonZero.
func NewList[T comparable](levelList []T, configurator LevelConfigurator[T], pickup PickupStrategy[T]) (*List[T], error) {
	if levelList == nil {
		return nil, ErrNilLevelList
	}
	if pickup == nil {
		pickup = FirstNonZero[T]
	}

	return &List[T]{
		levelList:    slices.Clone(levelList),
		configurator: configurator,
		pickup:       pickup,
	}, nil
}

// LevelList returns a copy of the candidate levels.
func (c *List[T]) LevelList() []T {
	return slices.Clone(c.levelList)
}

func (c *List[T]) Configure(name string) (logger.Logger, error) {
	return configureFromList(name, c.levelList, c.pickup, c.configurator)
}

func (c *List[T]) UnderlyingConfigurator() Configurator {
	return c.configurator
}

// WithLevelList returns a copy of the configurator picking from levelList.
func (c *List[T]) WithLevelList(levelList []T) (*List[T], error) {
	return NewList(levelList, c.configurator, c.pickup)
}

func configureFromList[T comparable](name string, levelList []T, pickup PickupStrategy[T], configurator LevelConfigurator[T]) (logger.Logger, error) {
	if level, ok := pickup(levelList); ok {
		configurator.SetLevel(level)
	}
	return configurator.Configure(name)
}
