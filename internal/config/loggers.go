// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mia-platform/logician/configurator/vq"
	"github.com/mia-platform/logician/levels"
)

const (
	BackendStd     = "std"
	BackendHclog   = "hclog"
	BackendLogrus  = "logrus"
	BackendZerolog = "zerolog"

	TargetStderr = "stderr"
	TargetStdout = "stdout"
	TargetNull   = "null"

	NameField       = "name"
	BackendField    = "backend"
	StreamsField    = "streams"
	TargetField     = "target"
	FormatField     = "format"
	FormatsField    = "formats"
	PerLevelField   = "perLevel"
	LevelNamesField = "levelNames"
	VerbosityField  = "verbosity"
	QuietnessField  = "quietness"
)

var (
	// ErrParsing reports failures that occur while decoding logger files.
	ErrParsing = errors.New("error parsing")

	Backends = []string{BackendStd, BackendHclog, BackendLogrus, BackendZerolog}
)

// LoggerConfig describes one logger and the configurator that builds it.
type LoggerConfig struct {
	Name       string         `json:"name" yaml:"name"`
	Level      string         `json:"level,omitempty" yaml:"level,omitempty"`
	Backend    string         `json:"backend,omitempty" yaml:"backend,omitempty"`
	CmdName    string         `json:"cmdName,omitempty" yaml:"cmdName,omitempty"`
	PerLevel   bool           `json:"perLevel,omitempty" yaml:"perLevel,omitempty"`
	NoWarn     bool           `json:"noWarn,omitempty" yaml:"noWarn,omitempty"`
	LevelNames LevelNames     `json:"levelNames,omitempty" yaml:"levelNames,omitempty"`
	Streams    []StreamConfig `json:"streams,omitempty" yaml:"streams,omitempty"`
	Envs       []string       `json:"envs,omitempty" yaml:"envs,omitempty"`
	AllLogEnv  bool           `json:"allLogEnv,omitempty" yaml:"allLogEnv,omitempty"`
	Verbosity  vq.Key         `json:"verbosity,omitempty" yaml:"verbosity,omitempty"`
	Quietness  vq.Key         `json:"quietness,omitempty" yaml:"quietness,omitempty"`
}

// StreamConfig binds an output target to its formats. Format applies to every level,
// Formats maps level names or numbers to the format used from that level.
type StreamConfig struct {
	Target  string            `json:"target" yaml:"target"`
	Format  string            `json:"format,omitempty" yaml:"format,omitempty"`
	Formats map[string]string `json:"formats,omitempty" yaml:"formats,omitempty"`
}

// LevelNames maps level numbers to the names registered for them.
type LevelNames map[levels.Level]string

// UnmarshalYAML decodes level names keyed by level number and rejects empty names. Keys
// may be plain or quoted numbers, JSON object keys are always strings.
func (ln *LevelNames) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	names := make(LevelNames, len(raw))
	for key, name := range raw {
		level, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return fmt.Errorf("invalid level %q in '%s': use a level number", key, LevelNamesField)
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty name for level %d in '%s'", level, LevelNamesField)
		}
		names[levels.Level(level)] = name
	}

	*ln = names
	return nil
}

// StreamsSet reports if the configuration lists its streams, even an empty list.
func (c *LoggerConfig) StreamsSet() bool {
	return c.Streams != nil
}

// validate collects every problem of the configuration.
func (c *LoggerConfig) validate() []string {
	errorsList := []string{}

	if c.Name == "" {
		errorsList = append(errorsList, fmt.Sprintf("missing field '%s'", NameField))
	}

	if c.Backend != "" && !slices.Contains(Backends, c.Backend) {
		errorsList = append(errorsList, fmt.Sprintf("unknown value '%s' for '%s': choose from %v", c.Backend, BackendField, Backends))
	}

	if c.Backend != "" && c.Backend != BackendStd && (c.StreamsSet() || c.PerLevel) {
		errorsList = append(errorsList, fmt.Sprintf("'%s' and '%s' are only supported by the '%s' backend", StreamsField, PerLevelField, BackendStd))
	}

	for i, stream := range c.Streams {
		errorsList = append(errorsList, validateStream(i, stream, c.PerLevel)...)
	}

	if c.Verbosity != vq.None && c.Quietness != vq.None {
		errorsList = append(errorsList, fmt.Sprintf("cannot provide both '%s' and '%s': choose one", VerbosityField, QuietnessField))
	}

	return errorsList
}

func validateStream(index int, stream StreamConfig, perLevel bool) []string {
	errorsList := []string{}

	if stream.Target == "" {
		errorsList = append(errorsList, fmt.Sprintf("missing field '%s.%d.%s'", StreamsField, index, TargetField))
	}
	if stream.Format != "" && len(stream.Formats) > 0 {
		errorsList = append(errorsList, fmt.Sprintf("cannot provide both '%s.%d.%s' and '%s.%d.%s': choose one", StreamsField, index, FormatField, StreamsField, index, FormatsField))
	}
	if perLevel && (stream.Format != "" || len(stream.Formats) > 0) {
		errorsList = append(errorsList, fmt.Sprintf("cannot provide both '%s' and formats in '%s.%d'", PerLevelField, StreamsField, index))
	}

	return errorsList
}

// NewLoggerConfigsFromPath parses the file at path and returns every logger configuration
// it contains, one per YAML document. JSON files are accepted too.
func NewLoggerConfigsFromPath(path string) ([]*LoggerConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	configs, err := NewLoggerConfigs(file)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}
	return configs, nil
}

// NewLoggerConfigs decodes every logger configuration from reader.
func NewLoggerConfigs(reader io.Reader) ([]*LoggerConfig, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	configs := make([]*LoggerConfig, 0)
	names := make(map[string]struct{})

	for {
		config := new(LoggerConfig)
		err := decoder.Decode(&config)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		// Skip empty documents.
		if config == nil {
			continue
		}

		if errorsList := config.validate(); len(errorsList) > 0 {
			return nil, fmt.Errorf("invalid logger %q: %s", config.Name, strings.Join(errorsList, "; "))
		}
		if _, found := names[config.Name]; found {
			return nil, fmt.Errorf("duplicated logger %q", config.Name)
		}
		names[config.Name] = struct{}{}

		configs = append(configs, config)
	}

	return configs, nil
}
