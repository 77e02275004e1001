// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package levels

import (
	"strconv"
)

// Level is the severity of a log record. Higher values are more severe.
type Level int

const (
	NotSet   Level = 0
	Trace    Level = 5
	Debug    Level = 10
	Info     Level = 20
	Success  Level = 25
	Notice   Level = 27
	Cmd      Level = 28
	Warning  Level = 30
	Error    Level = 40
	Critical Level = 50
	Fatal    Level = 60
)

const (
	TraceName    = "TRACE"
	DebugName    = "DEBUG"
	InfoName     = "INFO"
	SuccessName  = "SUCCESS"
	NoticeName   = "NOTICE"
	CmdName      = "COMMAND"
	WarningName  = "WARNING"
	ErrorName    = "ERROR"
	CriticalName = "CRITICAL"
	FatalName    = "FATAL"

	// warnAlias is accepted by Parse but never used as a display name.
	warnAlias = "WARN"
)

// DefaultNames returns a fresh copy of the default level -> name mapping.
func DefaultNames() map[Level]string {
	return map[Level]string{
		Trace:    TraceName,
		Debug:    DebugName,
		Info:     InfoName,
		Success:  SuccessName,
		Notice:   NoticeName,
		Cmd:      CmdName,
		Warning:  WarningName,
		Error:    ErrorName,
		Critical: CriticalName,
		Fatal:    FatalName,
	}
}

// String returns the name of the level in the Default registry.
func (l Level) String() string {
	return Default.Name(l)
}

// Spec returns the level as a numeric string, the form accepted by every level
// configurator regardless of the names registered.
func (l Level) Spec() string {
	return strconv.Itoa(int(l))
}
