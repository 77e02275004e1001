// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package format decides how log lines look.
// A LevelFormat chooses a line template from the configured threshold level, so that a
// more verbose logger also prints more details for every line; a StreamFormat binds a
// LevelFormat to the writer the lines are sent to.
package format
