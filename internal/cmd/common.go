// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mia-platform/logician/internal/config"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
)

var (
	errNoArguments     = errors.New("no logger name provided")
	errMissingArgs     = errors.New("missing arguments")
	errUnknownLogger   = errors.New("unknown logger")
	errInvalidArgument = errors.New("invalid argument")
	errNoLoggersFiles  = errors.New("no loggers file provided")
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errMissingArgs), errors.Is(err, errInvalidArgument):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// unwrappedError returns the unwrapped error if available, otherwise it returns the original error.
func unwrappedError(err error) error {
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		return unwrapped
	}

	return err
}

// collectPaths expands every directory in paths into the files it directly contains.
func collectPaths(paths []string) ([]string, error) {
	collected := make([]string, 0)
	for _, p := range paths {
		cleanedPath := filepath.Clean(p)
		err := filepath.Walk(cleanedPath, func(walkedPath string, info fs.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("loggers file %q: %w", walkedPath, unwrappedError(err))
			}

			switch {
			case !info.IsDir(): // it's a file add to the collection
				collected = append(collected, walkedPath)
			case info.IsDir() && cleanedPath != walkedPath: // skip directories if is not the root path
				return filepath.SkipDir
			}

			return nil
		})

		if err != nil {
			return nil, err
		}
	}

	return collected, nil
}

// loadLoggerConfigs loads all logger configurations from the provided paths.
func loadLoggerConfigs(paths []string) ([]*config.LoggerConfig, error) {
	configs := make([]*config.LoggerConfig, 0)
	for _, path := range paths {
		fileConfigs, err := config.NewLoggerConfigsFromPath(path)
		if err != nil {
			return nil, err
		}

		configs = append(configs, fileConfigs...)
	}

	return configs, nil
}

// findLoggerConfig returns the configuration called name or, when configs is empty, a
// default one writing to stderr at level.
func findLoggerConfig(configs []*config.LoggerConfig, name, level string) (*config.LoggerConfig, error) {
	if len(configs) == 0 {
		return &config.LoggerConfig{
			Name:    name,
			Level:   level,
			Streams: []config.StreamConfig{{Target: config.TargetStderr}},
		}, nil
	}

	for _, c := range configs {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", errUnknownLogger, name)
}

func registryOf(log logger.Logger) *levels.Registry {
	if provider, ok := log.(interface{ Registry() *levels.Registry }); ok {
		return provider.Registry()
	}
	return levels.Default
}
