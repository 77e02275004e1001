// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/logician/configurator/vq"
	internalcmd "github.com/mia-platform/logician/internal/cmd"
	"github.com/mia-platform/logician/internal/info"
	"github.com/mia-platform/logician/internal/logger"
	"github.com/mia-platform/logician/levels"
)

var (
	// Version is injected at build time via the Makefile.
	Version = info.Version
	// BuildDate is injected at build time via the Makefile.
	BuildDate = info.BuildDate

	appName      = info.AppName
	versionShort = "Display the " + appName + " version"
)

const (
	appShort = "logician configures, tries out and serves loggers"

	logLevelFlagName  = "log-level"
	logLevelFlagUsage = "set the logging level of %s itself (possible values: %s)"

	verboseFlagName      = "verbose"
	verboseShortFlagName = "v"
	verboseFlagUsage     = "increase the logging level of logician itself, repeat up to three times"

	quietFlagName      = "quiet"
	quietShortFlagName = "q"
	quietFlagUsage     = "decrease the logging level of logician itself"

	versionCmdName = "version"
)

var (
	logLevelDefaultValue = logger.WARN.String()

	// verbosityLevels maps the repeated -v and -q flags to the diagnostics levels.
	verbosityLevels = vq.Map[logger.Level]{
		vq.V:   logger.INFO,
		vq.VV:  logger.DEBUG,
		vq.VVV: logger.TRACE,
		vq.Q:   logger.ERROR,
	}
)

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	logLevel string
	verbose  int
	quiet    int
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.logLevel, logLevelFlagName, logLevelDefaultValue, heredoc.Docf(logLevelFlagUsage, appName, strings.Join(levels.Default.Names(), ", ")))
	flags.CountVarP(&f.verbose, verboseFlagName, verboseShortFlagName, verboseFlagUsage)
	flags.CountVarP(&f.quiet, quietFlagName, quietShortFlagName, quietFlagUsage)
}

// level resolves the diagnostics level: -v and -q win over --log-level.
func (f *rootFlags) level() (logger.Level, error) {
	defaultLevel := logger.LevelFromString(f.logLevel)

	verbosity, err := vq.KeyFromCount(f.verbose, 0)
	if err != nil {
		return defaultLevel, err
	}
	quietness, err := vq.KeyFromCount(0, min(f.quiet, 1))
	if err != nil {
		return defaultLevel, err
	}

	resolver := vq.NewSepExclusive(verbosityLevels, false, nil)
	return resolver.EffectiveLevel(verbosity, quietness, defaultLevel)
}

func main() {
	cmd := rootCmd()
	log := logger.NewTextLogger(cmd.ErrOrStderr(), logger.WARN)
	ctx := logger.WithContext(context.Background(), log)

	exitCode := 0
	if err := cmd.ExecuteContext(ctx); err != nil {
		exitCode = 1
	}

	os.Exit(exitCode)
}

// rootCmd constructs the root Cobra command with shared configuration.
func rootCmd() *cobra.Command {
	flag := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := flag.level()
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}

			log := logger.FromContext(cmd.Context())
			log.SetLevel(level)
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flag.addFlags(cmd)
	cmd.AddCommand(
		internalcmd.EmitCmd(),
		internalcmd.LevelsCmd(),
		internalcmd.ServeCmd(),
		versionCmd(),
	)

	return cmd
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionShort),

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), info.VersionInformation(Version, BuildDate, runtime.Version()))
		},
	}
}
