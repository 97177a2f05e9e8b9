// Package checks runs the project's configured quality gates (linters,
// test runners) and the environment checks behind `forge doctor`.
package checks

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/entrhq/forge/internal/config"
)

// Check is the interface for a single validation step.
type Check interface {
	Name() string
	Run() Result
}

// Result holds the outcome of a single check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional"`
	Message  string `json:"message"`
}

// RunResult holds the aggregate outcome of all checks. AllPassed ignores
// optional failures.
type RunResult struct {
	AllPassed bool     `json:"all_passed"`
	Results   []Result `json:"results"`
	Duration  string   `json:"duration"`
}

// Runner executes a collection of checks sequentially.
type Runner struct {
	checks []Check
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Add(c Check) {
	r.checks = append(r.checks, c)
}

func (r *Runner) Run() RunResult {
	start := time.Now()
	var results []Result
	allPassed := true
	for _, c := range r.checks {
		result := c.Run()
		results = append(results, result)
		if !result.Passed && !result.Optional {
			allPassed = false
		}
	}
	return RunResult{
		AllPassed: allPassed,
		Results:   results,
		Duration:  time.Since(start).String(),
	}
}

// Plan builds the runner for `forge check`: the configured checks, or the
// defaults for the configured package manager when none are set. The
// package manager is an explicit parameter, never ambient state.
func Plan(dir, packageManager string, configured []config.Check) *Runner {
	r := NewRunner()
	if len(configured) == 0 {
		configured = defaultChecks(packageManager)
	}
	for _, c := range configured {
		if len(c.Command) == 0 {
			continue
		}
		r.Add(CommandCheck{CheckName: c.Name, Dir: dir, Argv: c.Command, Opt: c.Optional})
	}
	return r
}

func defaultChecks(packageManager string) []config.Check {
	switch packageManager {
	case "go":
		return []config.Check{
			{Name: "vet", Command: []string{"go", "vet", "./..."}},
			{Name: "test", Command: []string{"go", "test", "./..."}},
		}
	case "pnpm", "yarn", "bun":
		return []config.Check{
			{Name: "lint", Command: []string{packageManager, "run", "lint"}, Optional: true},
			{Name: "test", Command: []string{packageManager, "test"}},
		}
	default:
		return []config.Check{
			{Name: "lint", Command: []string{"npm", "run", "lint"}, Optional: true},
			{Name: "test", Command: []string{"npm", "test"}},
		}
	}
}

// ---------- Built-in checks ----------

// CommandCheck runs an argv vector and passes when it exits zero.
type CommandCheck struct {
	CheckName string
	Dir       string
	Argv      []string
	Opt       bool
}

func (c CommandCheck) Name() string { return c.CheckName }
func (c CommandCheck) Run() Result {
	cmd := exec.Command(c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return Result{Name: c.CheckName, Passed: false, Optional: c.Opt, Message: tail(string(out), 400)}
	}
	return Result{Name: c.CheckName, Passed: true, Optional: c.Opt, Message: "OK"}
}

// tail keeps the last n bytes of command output, where the failure usually is.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// DirCheck validates that a directory exists.
type DirCheck struct {
	Dir string
}

func (c DirCheck) Name() string { return "dir:" + c.Dir }
func (c DirCheck) Run() Result {
	info, err := os.Stat(c.Dir)
	if err != nil {
		return Result{Name: c.Name(), Passed: false, Message: fmt.Sprintf("directory not found: %s", c.Dir)}
	}
	if !info.IsDir() {
		return Result{Name: c.Name(), Passed: false, Message: fmt.Sprintf("not a directory: %s", c.Dir)}
	}
	return Result{Name: c.Name(), Passed: true, Message: "OK"}
}

// FileCheck validates that a file exists.
type FileCheck struct {
	Path string
	Desc string
}

func (c FileCheck) Name() string { return "file:" + c.Desc }
func (c FileCheck) Run() Result {
	if _, err := os.Stat(c.Path); err != nil {
		return Result{Name: c.Name(), Passed: false, Message: fmt.Sprintf("file not found: %s", c.Path)}
	}
	return Result{Name: c.Name(), Passed: true, Message: "OK"}
}

// BinaryCheck validates that an executable is available in PATH.
type BinaryCheck struct {
	Binary   string
	Optional bool
}

func (c BinaryCheck) Name() string { return "binary:" + c.Binary }
func (c BinaryCheck) Run() Result {
	path, err := exec.LookPath(c.Binary)
	if err != nil {
		return Result{Name: c.Name(), Passed: false, Optional: c.Optional, Message: fmt.Sprintf("%s not found in PATH", c.Binary)}
	}
	return Result{Name: c.Name(), Passed: true, Optional: c.Optional, Message: fmt.Sprintf("found at %s", path)}
}
