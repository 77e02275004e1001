// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logician/configurator"
	"github.com/mia-platform/logician/configurator/vq"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/warn"
)

func environ(vars ...string) configurator.EnvOption {
	return configurator.WithEnviron(func() []string { return vars })
}

func TestConfigureStd(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		config   *LoggerConfig
		log      func(t *testing.T, config *LoggerConfig, outputs *Outputs)
		expected string
	}{
		"single format stream": {
			config: &LoggerConfig{
				Name:    "app",
				Level:   "INFO",
				CmdName: "BUILD",
				Streams: []StreamConfig{{Target: TargetStdout, Format: "{{.Name}}: {{.LevelName}}: {{.Message}}{{.Attrs}}"}},
			},
			log: func(t *testing.T, config *LoggerConfig, outputs *Outputs) {
				t.Helper()
				log, err := config.Configure(outputs, nil)
				require.NoError(t, err)
				log.Debug("silenced")
				log.Info("ready", "port", 8080)
				log.Cmd("compiling")
			},
			expected: "app: INFO: ready port=8080\napp: BUILD: compiling\n",
		},
		"per level formats pick the threshold format": {
			config: &LoggerConfig{
				Name:  "app",
				Level: "DEBUG",
				Streams: []StreamConfig{
					{Target: TargetStdout, Formats: map[string]string{
						"DEBUG":   "detail {{.LevelName}}: {{.Message}}",
						"WARNING": "short {{.Message}}",
					}},
					{Target: TargetNull},
				},
			},
			log: func(t *testing.T, config *LoggerConfig, outputs *Outputs) {
				t.Helper()
				log, err := config.Configure(outputs, nil)
				require.NoError(t, err)
				log.Debug("hello")
			},
			expected: "detail DEBUG: hello\n",
		},
		"custom level names in formats": {
			config: &LoggerConfig{
				Name:       "app",
				Level:      "DONE",
				LevelNames: LevelNames{levels.Success: "DONE"},
				Streams: []StreamConfig{
					{Target: TargetStdout, Formats: map[string]string{"DONE": "{{.LevelName}} {{.Message}}"}},
				},
			},
			log: func(t *testing.T, config *LoggerConfig, outputs *Outputs) {
				t.Helper()
				log, err := config.Configure(outputs, nil)
				require.NoError(t, err)
				log.Info("silenced")
				log.Success("deployed")
			},
			expected: "DONE deployed\n",
		},
		"environment overrides the configured level": {
			config: &LoggerConfig{
				Name:    "svc",
				Level:   "ERROR",
				Envs:    []string{"SVC_LOG"},
				Streams: []StreamConfig{{Target: TargetStdout}},
			},
			log: func(t *testing.T, config *LoggerConfig, outputs *Outputs) {
				t.Helper()
				log, err := config.Configure(outputs, nil, environ("SVC_LOG=INFO"))
				require.NoError(t, err)
				log.Info("visible")
			},
			expected: "INFO: visible\n",
		},
		"all loggers variable is read last": {
			config: &LoggerConfig{
				Name:      "svc",
				Envs:      []string{"SVC_LOG"},
				AllLogEnv: true,
				Streams:   []StreamConfig{{Target: TargetStdout}},
			},
			log: func(t *testing.T, config *LoggerConfig, outputs *Outputs) {
				t.Helper()
				log, err := config.Configure(outputs, nil, environ(configurator.AllLogEnv+"=ERROR"))
				require.NoError(t, err)
				log.Warning("silenced")
				log.Error("visible")
			},
			expected: "ERROR: visible\n",
		},
		"verbosity wins over the configured level": {
			config: &LoggerConfig{
				Name:      "cli",
				Level:     "ERROR",
				Verbosity: vq.V,
				Streams:   []StreamConfig{{Target: TargetStdout}},
			},
			log: func(t *testing.T, config *LoggerConfig, outputs *Outputs) {
				t.Helper()
				log, err := config.Configure(outputs, nil)
				require.NoError(t, err)
				log.Debug("silenced")
				log.Info("visible")
			},
			expected: "INFO: visible\n",
		},
	}

	for testName, test := range tests {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			stdout := new(bytes.Buffer)
			outputs := &Outputs{Stdout: stdout, Stderr: new(bytes.Buffer)}
			test.log(t, test.config, outputs)
			assert.Equal(t, test.expected, stdout.String())
		})
	}
}

func TestConfigureBackends(t *testing.T) {
	t.Parallel()

	t.Run("hclog", func(t *testing.T) {
		t.Parallel()

		stderr := new(bytes.Buffer)
		config := &LoggerConfig{Name: "worker", Backend: BackendHclog, Verbosity: vq.VV}
		log, err := config.Configure(&Outputs{Stderr: stderr}, nil)
		require.NoError(t, err)

		assert.Equal(t, levels.Debug, log.Level())
		log.Debug("tick")
		assert.Contains(t, stderr.String(), "[DEBUG] worker: tick")
	})

	t.Run("logrus", func(t *testing.T) {
		t.Parallel()

		stderr := new(bytes.Buffer)
		config := &LoggerConfig{Name: "jobs", Backend: BackendLogrus, Level: "INFO"}
		log, err := config.Configure(&Outputs{Stderr: stderr}, nil)
		require.NoError(t, err)

		log.Info("started")
		assert.Contains(t, stderr.String(), "level=info msg=started logger=jobs")
	})

	t.Run("zerolog", func(t *testing.T) {
		t.Parallel()

		stderr := new(bytes.Buffer)
		config := &LoggerConfig{Name: "api", Backend: BackendZerolog, Quietness: vq.Q}
		log, err := config.Configure(&Outputs{Stderr: stderr}, nil)
		require.NoError(t, err)

		assert.Equal(t, levels.Error, log.Level())
		log.Warning("silenced")
		log.Error("failed")

		line := make(map[string]any)
		require.NoError(t, json.Unmarshal(stderr.Bytes(), &line))
		assert.Equal(t, "error", line["level"])
		assert.Equal(t, "api", line["logger"])
		assert.Equal(t, "failed", line["message"])
	})
}

func TestConfigureWarnings(t *testing.T) {
	t.Parallel()

	recorder := new(warn.Recorder)
	config := &LoggerConfig{Name: "app", Level: "LOUD", Streams: []StreamConfig{}}
	log, err := config.Configure(&Outputs{}, recorder)
	require.NoError(t, err)

	assert.Equal(t, levels.Warning, log.Level())
	assert.Len(t, recorder.Messages(), 2)
	assert.Contains(t, recorder.Messages()[0], "app: Undefined log level 'LOUD'.")
}

func TestConfigureInvalidFormatLevel(t *testing.T) {
	t.Parallel()

	config := &LoggerConfig{
		Name:    "app",
		Streams: []StreamConfig{{Target: TargetStdout, Formats: map[string]string{"LOUD": "{{.Message}}"}}},
	}
	_, err := config.Configure(&Outputs{Stdout: new(bytes.Buffer)}, nil)
	assert.ErrorIs(t, err, levels.ErrUnknownLevel)
	assert.ErrorContains(t, err, "streams.0.formats")
}

func TestOutputsFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	outputs := NewOutputs()

	first, err := outputs.Writer(path)
	require.NoError(t, err)
	second, err := outputs.Writer(path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	config := &LoggerConfig{
		Name:    "app",
		Level:   "INFO",
		Streams: []StreamConfig{{Target: path, Format: "{{.Message}}"}},
	}
	log, err := config.Configure(outputs, nil)
	require.NoError(t, err)
	log.Info("to the file")

	require.NoError(t, outputs.Close())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "to the file\n", string(content))

	_, err = outputs.Writer(filepath.Join(dir, "missing", "app.log"))
	assert.ErrorContains(t, err, "opening stream")
}
