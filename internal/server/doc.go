// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server contains the admin HTTP server of logician.
// It exposes the configured loggers on fiber routes: their list, their current level
// and the levels they know, and lets operators change a level at runtime.
package server
