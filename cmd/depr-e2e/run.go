package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Suite packages, relative to the module root.
var suitePackages = map[string][]string{
	"api": {"./tests/api/..."},
	"ui":  {"./tests/e2e/..."},
	"all": {"./tests/api/...", "./tests/e2e/..."},
}

var (
	smokeFlag   bool
	verboseFlag bool
	runFlag     string
)

var runCmd = &cobra.Command{
	Use:   "run [api|ui|all] [-- go test flags]",
	Short: "Run the e2e suites with go test",
	Long: `Run invokes go test with the e2e build tag on the selected suites.

Arguments after -- are passed to go test unchanged, e.g.
  depr-e2e run ui --smoke -- -count=1`,
	Args: func(cmd *cobra.Command, args []string) error {
		if dash := cmd.ArgsLenAtDash(); dash >= 0 {
			args = args[:dash]
		}
		return cobra.MaximumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		suite := "all"
		var extra []string
		if dash := cmd.ArgsLenAtDash(); dash >= 0 {
			extra = args[dash:]
			args = args[:dash]
		}
		if len(args) > 0 {
			suite = args[0]
		}
		goArgs, err := testArgs(suite, smokeFlag, verboseFlag, runFlag, extra)
		if err != nil {
			return err
		}

		env, err := suiteEnv(os.Environ(), envFileFlag)
		if err != nil {
			return err
		}

		logger.Info("running suites", zap.String("suite", suite), zap.Strings("args", goArgs))
		c := exec.CommandContext(cmd.Context(), "go", goArgs...)
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()
		c.Env = env
		return c.Run()
	},
}

func init() {
	runCmd.Flags().BoolVar(&smokeFlag, "smoke", false, "Run only tests whose name contains Smoke")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Pass -v to go test")
	runCmd.Flags().StringVar(&runFlag, "run", "", "Test name pattern, combined with --smoke")

	rootCmd.AddCommand(runCmd)
}

// testArgs builds the go test argument list for a suite.
func testArgs(suite string, smoke, verbose bool, pattern string, extra []string) ([]string, error) {
	pkgs, ok := suitePackages[strings.ToLower(suite)]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q (want api, ui or all)", suite)
	}

	args := []string{"test", "-tags", "e2e"}
	if verbose {
		args = append(args, "-v")
	}
	switch {
	case smoke && pattern != "":
		args = append(args, "-run", fmt.Sprintf("Smoke.*(%s)|(%s).*Smoke", pattern, pattern))
	case smoke:
		args = append(args, "-run", "Smoke")
	case pattern != "":
		args = append(args, "-run", pattern)
	}
	args = append(args, pkgs...)
	return append(args, extra...), nil
}

// suiteEnv appends DEPR_ENV_FILE to base. go test runs every package from its
// own directory, so the path is made absolute first. An empty envFile leaves
// the suites on their default lookup.
func suiteEnv(base []string, envFile string) ([]string, error) {
	if envFile == "" {
		return base, nil
	}
	abs, err := filepath.Abs(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve env file %s: %w", envFile, err)
	}
	return append(base, "DEPR_ENV_FILE="+abs), nil
}
