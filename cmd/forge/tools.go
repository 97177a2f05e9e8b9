package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/entrhq/forge/internal/catalog"
	"github.com/entrhq/forge/internal/config"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools [name]",
	Short: "Recommend tools for this project",
	Long:  "Matches the tool catalog against the project's marker files. With a name, renders that tool's page.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	cat := catalog.Builtin()
	if err := cat.LoadDir(filepath.Join(cfg.ForgeDir(), "catalog")); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if len(args) == 1 {
		tool, err := cat.Get(args[0])
		if err != nil {
			if errors.Is(err, catalog.ErrToolNotFound) {
				return fmt.Errorf("unknown tool %q, run 'forge tools' to list", args[0])
			}
			return err
		}
		fmt.Print(renderMarkdown(tool.Page))
		return nil
	}

	matched := cat.Match(cwd)
	if len(matched) == 0 {
		fmt.Println("No recommendations for this project.")
		return nil
	}
	fmt.Println(styleBanner.Render("Recommended tools:"))
	for _, t := range matched {
		fmt.Printf("  %-16s %s\n", stylePrompt.Render(t.Name), t.Summary)
	}
	fmt.Println(styleInfo.Render("\nRun 'forge tools <name>' for setup instructions."))
	return nil
}

func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}
