// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const (
	loggersPathFlagName  = "loggers-file"
	loggersPathFlagShort = "f"
	loggersPathFlagUsage = "Path to a file or directory containing logger configurations. Can be specified multiple times."

	levelFlagName    = "level"
	levelFlagUsage   = "Threshold of the default logger, used when no loggers file is provided"
	defaultLevelFlag = "WARNING"

	cmdNameFlagName  = "cmd-name"
	cmdNameFlagUsage = "Level name shown on COMMAND records"

	watchFlagName  = "watch"
	watchFlagUsage = "Reload the loggers when their files change"
)

// flags collects the CLI options shared by every command.
type flags struct {
	loggersPaths []string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(
		&f.loggersPaths,
		loggersPathFlagName,
		loggersPathFlagShort,
		nil,
		loggersPathFlagUsage)
}

// emitFlags holds the flags of the emit command.
type emitFlags struct {
	flags
	level   string
	cmdName string
}

func (f *emitFlags) addFlags(cmd *cobra.Command) {
	f.flags.addFlags(cmd)
	cmd.Flags().StringVar(&f.level, levelFlagName, defaultLevelFlag, levelFlagUsage)
	cmd.Flags().StringVar(&f.cmdName, cmdNameFlagName, "", cmdNameFlagUsage)
}

// toOptions builds the emit options from the parsed flags and the arguments
// LOGGER LEVEL MESSAGE [KEY=VALUE...].
func (f *emitFlags) toOptions(args []string) (*emitOptions, error) {
	if len(args) == 0 {
		return nil, errNoArguments
	}
	if len(args) < 3 {
		return nil, errMissingArgs
	}

	attrs := make([]any, 0, 2*(len(args)-3))
	for _, pair := range args[3:] {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q is not in the KEY=VALUE form", errInvalidArgument, pair)
		}
		attrs = append(attrs, key, value)
	}

	paths, err := collectPaths(f.loggersPaths)
	if err != nil {
		return nil, err
	}

	return &emitOptions{
		loggersPaths: paths,
		loggerName:   args[0],
		level:        args[1],
		message:      args[2],
		attrs:        attrs,
		defaultLevel: f.level,
		cmdName:      f.cmdName,
	}, nil
}

// levelsFlags holds the flags of the levels command.
type levelsFlags struct {
	flags
}

func (f *levelsFlags) toOptions(args []string) (*levelsOptions, error) {
	paths, err := collectPaths(f.loggersPaths)
	if err != nil {
		return nil, err
	}

	opts := &levelsOptions{loggersPaths: paths}
	if len(args) > 0 {
		opts.loggerName = args[0]
	}
	return opts, nil
}

// serveFlags holds the flags of the serve command.
type serveFlags struct {
	flags
	watch bool
}

func (f *serveFlags) addFlags(cmd *cobra.Command) {
	f.flags.addFlags(cmd)
	cmd.Flags().BoolVar(&f.watch, watchFlagName, false, watchFlagUsage)
}

func (f *serveFlags) toOptions() (*serveOptions, error) {
	paths, err := collectPaths(f.loggersPaths)
	if err != nil {
		return nil, err
	}

	return &serveOptions{
		loggersPaths: paths,
		watch:        f.watch,
		serverGetter: serverGetter,
	}, nil
}
