// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logician/configurator/vq"
	"github.com/mia-platform/logician/internal/info"
	"github.com/mia-platform/logician/internal/logger"
)

func TestRootCommand(t *testing.T) {
	Version = "test"
	BuildDate = "2024-06-01"

	cmd := rootCmd()
	buffer := new(bytes.Buffer)
	cmd.SetOut(buffer)

	log := logger.NewLogger(cmd.OutOrStderr())
	ctx := logger.WithContext(t.Context(), log)

	cmd.SetArgs([]string{"--log-level", "WARN", "version"})
	err := cmd.ExecuteContext(ctx)
	require.NoError(t, err)

	log.Info("ignored line for set log level")
	lines := strings.Split(buffer.String(), "\n")
	assert.Len(t, lines, 2) // version output + empty line
	assert.Equal(t, info.VersionInformation(Version, BuildDate, runtime.Version())+"\n", buffer.String())

	buffer.Reset()
	BuildDate = ""
	cmd.SetArgs([]string{"--log-level", "WARN", "version"})
	err = cmd.ExecuteContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, info.VersionInformation(Version, "", runtime.Version())+"\n", buffer.String())
}

func TestRootFlagsLevel(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		flags         rootFlags
		expectedLevel logger.Level
		expectedError error
	}{
		"log level flag": {
			flags:         rootFlags{logLevel: "DEBUG"},
			expectedLevel: logger.DEBUG,
		},
		"one verbose flag": {
			flags:         rootFlags{logLevel: "ERROR", verbose: 1},
			expectedLevel: logger.INFO,
		},
		"verbose flags over the maximum": {
			flags:         rootFlags{logLevel: "WARN", verbose: 5},
			expectedLevel: logger.TRACE,
		},
		"quiet flags": {
			flags:         rootFlags{logLevel: "WARN", quiet: 2},
			expectedLevel: logger.ERROR,
		},
		"verbose and quiet together": {
			flags:         rootFlags{logLevel: "WARN", verbose: 1, quiet: 1},
			expectedError: vq.ErrTogether,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			level, err := test.flags.level()
			if test.expectedError != nil {
				assert.ErrorIs(t, err, test.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expectedLevel, level)
		})
	}
}

func TestVerbosityFlags(t *testing.T) {
	cmd := rootCmd()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	log := logger.NewTextLogger(stderr, logger.WARN)
	ctx := logger.WithContext(t.Context(), log)

	cmd.SetArgs([]string{"-vv", "levels"})
	require.NoError(t, cmd.ExecuteContext(ctx))
	log.Debug("visible after -vv")
	assert.Contains(t, stderr.String(), "visible after -vv")
	assert.Contains(t, stdout.String(), "WARNING")

	stderr.Reset()
	cmd.SetArgs([]string{"-v", "-q", "levels"})
	err := cmd.ExecuteContext(ctx)
	assert.ErrorIs(t, err, vq.ErrTogether)
	assert.Contains(t, stderr.String(), vq.ErrTogether.Error())
}
