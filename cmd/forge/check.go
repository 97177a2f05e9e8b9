package main

import (
	"fmt"
	"os"

	"github.com/entrhq/forge/internal/checks"
	"github.com/entrhq/forge/internal/config"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the project's configured quality checks",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	runner := checks.Plan(cwd, cfg.PackageManager, cfg.Checks)
	result := runner.Run()

	for _, r := range result.Results {
		mark := styleSuccess.Render("PASS")
		if !r.Passed {
			mark = styleError.Render("FAIL")
			if r.Optional {
				mark = styleWarn.Render("WARN")
			}
		}
		fmt.Printf("  [%s] %-12s %s\n", mark, r.Name, r.Message)
	}
	fmt.Printf("\n%d check(s) in %s\n", len(result.Results), result.Duration)

	if !result.AllPassed {
		return fmt.Errorf("checks failed")
	}
	return nil
}
