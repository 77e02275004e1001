// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package info holds application version information.
package info

import (
	"strings"
)

var (
	// AppName is the name of the application.
	AppName = "logician"
	// Version is dynamically set by the ci or overridden by the Makefile.
	Version = "DEV"
	// BuildDate is dynamically set at build time by the cli or overridden in the Makefile.
	BuildDate = "" // YYYY-MM-DD
)

// VersionInformation formats version, the optional buildDate and the Go runtime version
// for display.
func VersionInformation(version, buildDate, runtimeVersion string) string {
	builder := new(strings.Builder)
	builder.WriteString(version)
	if buildDate != "" {
		builder.WriteString(" (" + buildDate + ")")
	}
	builder.WriteString(", Go Version: " + runtimeVersion)
	return builder.String()
}
