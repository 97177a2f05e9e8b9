// Package scaffold installs the forge workflow files into a project: the
// instructions document with its preserve markers, starter custom commands,
// per-agent rule files and the project config.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/entrhq/forge/internal/config"
)

//go:embed templates
var templatesFS embed.FS

// agentDirs maps each supported agent to the directory its rule file
// belongs in, relative to the project root.
var agentDirs = map[string]string{
	"claude":   ".claude",
	"cursor":   filepath.Join(".cursor", "rules"),
	"copilot":  ".github",
	"windsurf": filepath.Join(".windsurf", "rules"),
}

// KnownAgents returns the supported agent names, sorted.
func KnownAgents() []string {
	names := make([]string, 0, len(agentDirs))
	for name := range agentDirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Options struct {
	Root   string
	Agents []string
	Force  bool
}

// Result lists what Install wrote and what it left alone.
type Result struct {
	Written []string
	Skipped []string
}

// Install lays out the forge workflow files. Existing files are skipped
// unless Force is set, so re-running init never destroys user edits.
func Install(opts Options) (Result, error) {
	var res Result

	for _, agent := range opts.Agents {
		if _, ok := agentDirs[agent]; !ok {
			return res, fmt.Errorf("scaffold: unknown agent %q (known: %s)", agent, strings.Join(KnownAgents(), ", "))
		}
	}

	instructions, err := templatesFS.ReadFile("templates/INSTRUCTIONS.md")
	if err != nil {
		return res, fmt.Errorf("scaffold: embedded instructions: %w", err)
	}
	if err := writeFile(&res, filepath.Join(opts.Root, ".forge", "INSTRUCTIONS.md"), instructions, opts.Force); err != nil {
		return res, err
	}

	cmdEntries, err := templatesFS.ReadDir("templates/commands")
	if err != nil {
		return res, fmt.Errorf("scaffold: embedded commands: %w", err)
	}
	for _, e := range cmdEntries {
		data, err := templatesFS.ReadFile("templates/commands/" + e.Name())
		if err != nil {
			return res, fmt.Errorf("scaffold: embedded command %s: %w", e.Name(), err)
		}
		if err := writeFile(&res, filepath.Join(opts.Root, ".forge", "commands", e.Name()), data, opts.Force); err != nil {
			return res, err
		}
	}

	workflow, err := templatesFS.ReadFile("templates/workflow.md")
	if err != nil {
		return res, fmt.Errorf("scaffold: embedded workflow: %w", err)
	}
	for _, agent := range opts.Agents {
		body := strings.ReplaceAll(string(workflow), "{{agent}}", agent)
		dest := filepath.Join(opts.Root, agentDirs[agent], "forge-workflow.md")
		if err := writeFile(&res, dest, []byte(body), opts.Force); err != nil {
			return res, err
		}
	}

	cfgPath := filepath.Join(opts.Root, config.FileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) || opts.Force {
		cfg := config.Default(opts.Root)
		cfg.Agents = opts.Agents
		if err := cfg.Save(); err != nil {
			return res, fmt.Errorf("scaffold: write config: %w", err)
		}
		res.Written = append(res.Written, cfgPath)
	} else {
		res.Skipped = append(res.Skipped, cfgPath)
	}

	return res, nil
}

func writeFile(res *Result, path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		res.Skipped = append(res.Skipped, path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("scaffold: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scaffold: write %s: %w", path, err)
	}
	res.Written = append(res.Written, path)
	return nil
}
