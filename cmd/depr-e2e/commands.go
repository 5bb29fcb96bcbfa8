package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deprtest/e2e/internal/config"
	"github.com/deprtest/e2e/internal/dbclient"
	"github.com/deprtest/e2e/internal/ui/driver"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved settings with passwords masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := yaml.NewEncoder(cmd.OutOrStdout())
		out.SetIndent(2)
		defer func() { _ = out.Close() }()
		return out.Encode(settings.Redacted())
	},
}

var checkTimeoutFlag time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate settings and probe the UI and API base URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := settings.Validate(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeoutFlag)
		defer cancel()

		prober := config.NewProber(logger)
		targets := map[string]string{
			"ui":  settings.UIBaseURL(),
			"api": settings.APIBaseURL,
		}
		names := make([]string, 0, len(targets))
		for name := range targets {
			names = append(names, name)
		}
		sort.Strings(names)

		var unreachable []string
		for _, name := range names {
			base := targets[name]
			got, ok := prober.DetectReachable(ctx, base)
			switch {
			case !ok:
				unreachable = append(unreachable, name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s unreachable\n", name, base)
			case got != base:
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s unreachable, %s answers\n", name, base, got)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s ok\n", name, base)
			}
		}
		if len(unreachable) > 0 {
			return fmt.Errorf("unreachable: %v", unreachable)
		}
		return nil
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the playwright driver and chromium",
	RunE: func(cmd *cobra.Command, args []string) error {
		return driver.Install(logger)
	},
}

var (
	rotateSecretsFlag bool
	outputPathFlag    string
	forceFlag         bool
)

var synthesizeCmd = &cobra.Command{
	Use:     "synthesize",
	Aliases: []string{"synth", "generate-env"},
	Short:   "Write a documented .env with generated fixture passwords",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := outputPathFlag
		if !filepath.IsAbs(outputPath) {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			outputPath = filepath.Join(cwd, outputPath)
		}

		if _, err := os.Stat(outputPath); err == nil && !forceFlag && !rotateSecretsFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "File %s already exists. Use --force to overwrite or --rotate-secrets to update secrets only.\n", outputPathFlag)
			return nil
		}

		synth := config.NewSynthesizer(outputPath)
		if err := synth.SynthesizeEnv(rotateSecretsFlag); err != nil {
			return fmt.Errorf("failed to synthesize environment: %w", err)
		}

		if rotateSecretsFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "Rotated %d secret values, backup saved to %s.backup.*\n", synth.GetGeneratedCount(), outputPathFlag)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d secrets in %s\n", synth.GetGeneratedCount(), outputPathFlag)
		}
		return nil
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database helpers for seeding and cleanup",
}

var dbExecCmd = &cobra.Command{
	Use:   "exec SCRIPT",
	Short: "Run a SQL script against DB_URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := dbclient.New(settings.DBURL, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.ExecScript(cmd.Context(), args[0])
	},
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeoutFlag, "timeout", 10*time.Second, "Overall probe timeout")

	synthesizeCmd.Flags().BoolVar(&rotateSecretsFlag, "rotate-secrets", false, "Rotate only secret values, keeping other settings")
	synthesizeCmd.Flags().StringVar(&outputPathFlag, "output", config.DefaultEnvFile, "Output path for the generated .env file")
	synthesizeCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite existing .env without prompting")

	dbCmd.AddCommand(dbExecCmd)
	rootCmd.AddCommand(configCmd, checkCmd, installCmd, synthesizeCmd, dbCmd)
}
