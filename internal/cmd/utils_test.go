// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testLoggersFile = `name: app
level: INFO
levelNames:
  25: DONE
streams:
  - target: stdout
    format: "{{.Name}} {{.LevelName}} {{.Message}}{{.Attrs}}"
---
name: jobs
backend: logrus
level: ERROR
`

// setupTestFileStructure creates a test file structure under the given baseDir.
func setupTestFileStructure(tb testing.TB, baseDir string) {
	tb.Helper()

	require.NoError(tb, os.MkdirAll(filepath.Join(baseDir, "valid", "subdir"), os.ModePerm))
	require.NoError(tb, os.WriteFile(filepath.Join(baseDir, "valid", "loggers.yaml"), []byte(testLoggersFile), os.ModePerm))
	require.NoError(tb, os.WriteFile(filepath.Join(baseDir, "valid", "subdir", "ignored.yaml"), []byte("\tinvalid yaml file"), os.ModePerm))
	require.NoError(tb, os.Symlink(filepath.Join(baseDir, "valid", "loggers.yaml"), filepath.Join(baseDir, "symlink.file")))

	require.NoError(tb, os.MkdirAll(filepath.Join(baseDir, "invalid"), os.ModePerm))
	require.NoError(tb, os.WriteFile(filepath.Join(baseDir, "invalid", "invalid.yaml"), []byte("\tinvalid yaml file"), os.ModePerm))
}

// executeCommand runs cmd with args and returns its standard output and error.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}
