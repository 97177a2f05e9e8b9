package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrhq/forge/internal/checks"
	"github.com/entrhq/forge/internal/config"
	"github.com/entrhq/forge/internal/gitexec"
	"github.com/entrhq/forge/internal/history"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify the forge environment",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	fmt.Println("Forge Doctor")
	fmt.Println("============")
	fmt.Println()

	cfg, cfgErr := config.Load(cwd)
	if cfgErr != nil {
		fmt.Printf("Config............. %s\n", styleError.Render("ERROR: "+cfgErr.Error()))
		cfg = config.Default(cwd)
	} else {
		fmt.Println("Config............. OK")
	}

	runner := checks.NewRunner()
	runner.Add(checks.BinaryCheck{Binary: "git"})
	runner.Add(checks.BinaryCheck{Binary: "gh", Optional: true})
	runner.Add(checks.DirCheck{Dir: cfg.ForgeDir()})
	runner.Add(checks.FileCheck{Path: cfg.InstructionsPath(), Desc: "instructions"})

	result := runner.Run()
	for _, r := range result.Results {
		mark := "OK"
		if !r.Passed {
			mark = "MISSING"
			if r.Optional {
				mark = "MISSING (optional)"
			}
		}
		fmt.Printf("%-24s %s\n", r.Name, mark)
	}

	fmt.Print("Work tree.......... ")
	if clean, err := gitexec.New(cwd).IsClean(); err != nil {
		fmt.Println("not a git repository")
	} else if clean {
		fmt.Println("clean")
	} else {
		fmt.Println("dirty (rollback will refuse to run)")
	}

	fmt.Print("History store...... ")
	store, err := history.Open(filepath.Join(cfg.ForgeDir(), "history.db"))
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
	} else {
		defer store.Close()
		records, _ := store.Recent(1)
		if len(records) == 0 {
			fmt.Println("OK (empty)")
		} else {
			fmt.Printf("OK (last rollback %s)\n", records[0].CreatedAt)
		}
	}

	return nil
}
