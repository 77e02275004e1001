// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package stdlog is the log/slog backend of logician. Handler renders records with the
// line formats of the format package and writes them to one or more streams, while
// Logger exposes any slog.Handler as a logger.Underlying.
//
// slog levels are used as plain integers: a record at levels.Notice carries
// slog.Level(27), so the level values of the registry survive the round trip.
package stdlog
