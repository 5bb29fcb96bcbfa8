package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deprtest/e2e/internal/config"
	"github.com/deprtest/e2e/internal/logging"
	"github.com/deprtest/e2e/internal/version"
)

var (
	envFileFlag  string
	logLevelFlag string

	settings *config.Settings
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "depr-e2e",
	Short: "End-to-end suites for the depreciation web app",
	Long: `depr-e2e drives the API and browser suites of the depreciation web app.

Settings come from built-in defaults, the --env-file dotenv file and the
environment, in increasing order of precedence.`,
	Version:           version.String(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "depr-e2e %s\n", rootCmd.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", config.DefaultEnvFile, "Dotenv file to read settings from")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

// setup loads settings and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.Load(envFileFlag)
	if err != nil {
		return err
	}
	if logLevelFlag != "" {
		s.LogLevel = logLevelFlag
	}
	l, err := logging.FromSettings(s)
	if err != nil {
		return err
	}
	settings, logger = s, l
	logger.Debug("settings loaded", zap.String("env_file", envFileFlag), zap.Any("settings", s.Redacted()))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
