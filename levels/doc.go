// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package levels defines the logging levels understood by logician and the registry
// that maps every level to its display name.
// Levels are plain integers: the defaults follow the classic numeric scale
// (DEBUG=10, INFO=20, ...) and callers are free to register their own levels in between.
package levels
