// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	emitCmdUsage = "emit LOGGER LEVEL MESSAGE [KEY=VALUE...]"
	emitCmdShort = "emit one record through a configured logger"
	emitCmdLong  = `Emit one record through a configured logger.
	The logger is built from the loggers files exactly as a program would build it,
	environment variables and verbosity included, so the command is handy to check
	formats, streams and thresholds before shipping them.

	Without a loggers file a default logger writing to stderr is used.
	LEVEL accepts a level name, an alias such as WARN, or a number.`

	emitCmdExample = `# Emit an info record with two attributes
	logician emit app INFO "service started" port=8080 env=prod -f loggers.yaml

	# Emit the captured output of a command with a custom level name
	logician emit app COMMAND "go build ./..." --cmd-name BUILD --level TRACE`

	levelsCmdUsage = "levels [LOGGER]"
	levelsCmdShort = "list the logging levels"
	levelsCmdLong  = `List the logging levels and their names.
	When LOGGER is given, the names registered by its configuration are used and
	its current threshold is marked with a star.`

	levelsCmdExample = `# List the default levels
	logician levels

	# List the levels of a configured logger
	logician levels app -f loggers.yaml`

	serveCmdUsage = "serve"
	serveCmdShort = "serve the configured loggers over http"
	serveCmdLong  = `Start the admin server for the configured loggers.
	The server lists the loggers with their threshold and lets operators change
	a threshold at runtime. With --watch the loggers are rebuilt every time one
	of their files changes.

	The listening address is read from the HTTP_HOST and HTTP_PORT environment
	variables.`

	serveCmdExample = `# Serve the loggers of a directory and watch for changes
	logician serve -f ./loggers --watch`
)

// EmitCmd returns the Cobra command that emits a record through a configured logger.
func EmitCmd() *cobra.Command {
	flags := &emitFlags{}
	cmd := &cobra.Command{
		Use:     emitCmdUsage,
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// LevelsCmd returns the Cobra command that lists the logging levels.
func LevelsCmd() *cobra.Command {
	flags := &levelsFlags{}
	cmd := &cobra.Command{
		Use:     levelsCmdUsage,
		Short:   heredoc.Doc(levelsCmdShort),
		Long:    heredoc.Doc(levelsCmdLong),
		Example: heredoc.Doc(levelsCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// ServeCmd returns the Cobra command that starts the admin server.
func ServeCmd() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions()
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
