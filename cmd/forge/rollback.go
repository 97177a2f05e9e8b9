package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/forge/internal/config"
	"github.com/entrhq/forge/internal/history"
	"github.com/entrhq/forge/internal/rollback"
	"github.com/entrhq/forge/internal/tracker"
	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Undo a prior commit, merged PR, files or branch range",
	Long:  "Reverts prior changes while preserving user-authored sections of the instructions document. With no flags, an interactive menu collects the method and target.",
	RunE:  runRollback,
}

var (
	rollbackMethod string
	rollbackTarget string
	rollbackDryRun bool
)

func init() {
	rollbackCmd.Flags().StringVar(&rollbackMethod, "method", "", "rollback method: commit, pr, partial, branch")
	rollbackCmd.Flags().StringVar(&rollbackTarget, "target", "", "rollback target (hash, file list or range)")
	rollbackCmd.Flags().BoolVar(&rollbackDryRun, "dry-run", false, "preview only, no changes")
	rootCmd.AddCommand(rollbackCmd)
}

func runRollback(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := filepath.Abs(cwd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	var req rollback.Request
	if rollbackMethod == "" {
		r, ok := promptRollback(bufio.NewReader(os.Stdin))
		if !ok {
			fmt.Println(styleInfo.Render("Cancelled."))
			return nil
		}
		req = r
	} else {
		req = rollback.Request{
			Method: rollback.Method(rollbackMethod),
			Target: rollbackTarget,
			DryRun: rollbackDryRun,
		}
	}

	o := rollback.New(rollback.Options{
		Root:         root,
		Instructions: cfg.InstructionsPath(),
		Out:          os.Stdout,
		Tracker:      tracker.New(root),
	})

	start := time.Now()
	runErr := o.Run(req)
	recordRollback(cfg, req, runErr, time.Since(start))

	if runErr != nil {
		fmt.Println(styleError.Render("Error: " + runErr.Error()))
		return fmt.Errorf("rollback failed")
	}
	return nil
}

// recordRollback appends the invocation to the history store. Best-effort:
// a history failure never changes the rollback outcome.
func recordRollback(cfg *config.Config, req rollback.Request, runErr error, d time.Duration) {
	if err := os.MkdirAll(cfg.ForgeDir(), 0755); err != nil {
		return
	}
	store, err := history.Open(filepath.Join(cfg.ForgeDir(), "history.db"))
	if err != nil {
		return
	}
	defer store.Close()

	rec := history.Record{
		Method:     string(req.Method),
		Target:     req.Target,
		DryRun:     req.DryRun,
		Outcome:    "success",
		DurationMs: d.Milliseconds(),
	}
	if runErr != nil {
		rec.Outcome = "failure"
		rec.Detail = runErr.Error()
	}
	if err := store.Append(rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history write failed: %v\n", err)
	}
}

// promptRollback collects a method and target interactively. The input is
// passed unmodified to the orchestrator: the orchestrator, not the prompt
// layer, is the trust boundary. Returns ok=false on quit.
func promptRollback(in *bufio.Reader) (rollback.Request, bool) {
	fmt.Println(styleBanner.Render("forge rollback"))
	fmt.Println("  1) Undo last commit")
	fmt.Println("  2) Undo a specific commit")
	fmt.Println("  3) Undo a merged PR")
	fmt.Println("  4) Restore specific files")
	fmt.Println("  5) Undo a branch range")
	fmt.Println("  6) Dry-run preview")
	fmt.Println("  q) Quit")
	fmt.Print(stylePrompt.Render("> "))

	choice, err := in.ReadString('\n')
	if err != nil {
		return rollback.Request{}, false
	}
	choice = strings.TrimSpace(choice)

	ask := func(label string) (string, bool) {
		fmt.Print(stylePrompt.Render(label + ": "))
		line, err := in.ReadString('\n')
		if err != nil {
			return "", false
		}
		return strings.TrimSpace(line), true
	}

	switch choice {
	case "1":
		return rollback.Request{Method: rollback.MethodCommit, Target: "HEAD"}, true
	case "2":
		target, ok := ask("Commit hash")
		if !ok {
			return rollback.Request{}, false
		}
		return rollback.Request{Method: rollback.MethodCommit, Target: target}, true
	case "3":
		target, ok := ask("Merge commit hash")
		if !ok {
			return rollback.Request{}, false
		}
		return rollback.Request{Method: rollback.MethodPR, Target: target}, true
	case "4":
		target, ok := ask("Files (comma-separated)")
		if !ok {
			return rollback.Request{}, false
		}
		return rollback.Request{Method: rollback.MethodPartial, Target: target}, true
	case "5":
		target, ok := ask("Range (<start>..<end>)")
		if !ok {
			return rollback.Request{}, false
		}
		return rollback.Request{Method: rollback.MethodBranch, Target: target}, true
	case "6":
		method, ok := ask("Method (commit, pr, partial, branch)")
		if !ok {
			return rollback.Request{}, false
		}
		target, ok := ask("Target")
		if !ok {
			return rollback.Request{}, false
		}
		return rollback.Request{Method: rollback.Method(method), Target: target, DryRun: true}, true
	default:
		return rollback.Request{}, false
	}
}
