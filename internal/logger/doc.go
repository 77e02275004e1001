// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps hclog behind the small interface used for the diagnostics of
// logician itself: configuration warnings, the admin server and the CLI plumbing.
// Loggers travel through context helpers.
package logger
