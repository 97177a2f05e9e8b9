package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrhq/forge/internal/config"
	"github.com/entrhq/forge/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rollback history",
	RunE:  showHistory,
}

var historyCount int

func init() {
	historyCmd.Flags().IntVarP(&historyCount, "count", "n", 10, "Number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func showHistory(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	store, err := history.Open(filepath.Join(cfg.ForgeDir(), "history.db"))
	if err != nil {
		return fmt.Errorf("history error: %w", err)
	}
	defer store.Close()

	records, err := store.Recent(historyCount)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No rollbacks recorded yet.")
		return nil
	}

	for _, r := range records {
		icon := "[OK]"
		if r.Outcome == "failure" {
			icon = "[FAIL]"
		}
		mode := ""
		if r.DryRun {
			mode = " (dry-run)"
		}
		fmt.Printf("%s %s %s %s%s (%dms)\n", icon, r.CreatedAt[:19], r.Method, r.Target, mode, r.DurationMs)
	}
	return nil
}
