// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger defines the all-level Logger used by applications and the Underlying
// contract implemented by logging backends.
// Direct bridges the two: it resolves level names, records the call site and hands a
// Record to the backend, so that backends can be swapped without touching the code that
// logs.
package logger
