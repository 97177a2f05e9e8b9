package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/entrhq/forge/internal/scaffold"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [agents...]",
	Short: "Install forge workflow files into this project",
	Long:  "Writes the instructions document, starter commands and per-agent rule files. Known agents: " + strings.Join(scaffold.KnownAgents(), ", ") + ". Defaults to claude.",
	RunE:  runInit,
}

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	agents := args
	if len(agents) == 0 {
		agents = []string{"claude"}
	}

	res, err := scaffold.Install(scaffold.Options{Root: cwd, Agents: agents, Force: initForce})
	if err != nil {
		return err
	}

	for _, p := range res.Written {
		fmt.Println(styleSuccess.Render("  wrote   ") + p)
	}
	for _, p := range res.Skipped {
		fmt.Println(styleInfo.Render("  skipped ") + p + " (exists, use --force)")
	}
	fmt.Printf("\nInstalled for %s. Run 'forge check' to verify your setup.\n", strings.Join(agents, ", "))
	return nil
}
