// Package gitexec runs the git subcommand sequences behind each rollback
// method. Every invocation passes arguments as a discrete argv vector; no
// string is ever handed to a shell, so a hostile target cannot break out of
// its argument slot even before validation is considered.
package gitexec

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes git subcommands inside a fixed working directory.
type Runner struct {
	dir string
}

func New(dir string) *Runner {
	return &Runner{dir: dir}
}

func (r *Runner) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// IsClean reports whether the working tree has no uncommitted changes.
func (r *Runner) IsClean() (bool, error) {
	out, err := r.git("status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("gitexec: status: %w: %s", err, out)
	}
	return out == "", nil
}

// Head returns the current HEAD commit hash.
func (r *Runner) Head() (string, error) {
	out, err := r.git("rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("gitexec: rev-parse: %w: %s", err, out)
	}
	return out, nil
}

// CommitMessage returns the full commit message of target.
func (r *Runner) CommitMessage(target string) (string, error) {
	out, err := r.git("log", "-1", "--format=%B", target)
	if err != nil {
		return "", fmt.Errorf("gitexec: log: %w: %s", err, out)
	}
	return out, nil
}

// RevertCommit creates a revert commit for target. Target may be the
// literal HEAD.
func (r *Runner) RevertCommit(target string) (string, error) {
	return r.git("revert", "--no-edit", target)
}

// RevertMerge reverts a merge commit, keeping parent 1 as the mainline.
func (r *Runner) RevertMerge(target string) (string, error) {
	return r.git("revert", "-m", "1", "--no-edit", target)
}

// RevertRange reverts every commit in start..end, newest first.
func (r *Runner) RevertRange(start, end string) (string, error) {
	return r.git("revert", "--no-edit", start+".."+end)
}

// RestoreFiles checks each path out from HEAD~1 and commits all of them as
// a single rollback commit. git checkout <tree-ish> -- <path> stages the
// restored content, so no separate add is needed.
func (r *Runner) RestoreFiles(paths []string) (string, error) {
	for _, p := range paths {
		if out, err := r.git("checkout", "HEAD~1", "--", p); err != nil {
			return out, fmt.Errorf("gitexec: checkout %s: %w", p, err)
		}
	}
	msg := "chore: rollback " + strings.Join(paths, ", ")
	out, err := r.git("commit", "-m", msg)
	if err != nil {
		return out, fmt.Errorf("gitexec: commit: %w", err)
	}
	return out, nil
}

// AmendWith stages the given paths and folds them into the commit the
// rollback just produced, so the revert and the content restore land as one
// unit in history.
func (r *Runner) AmendWith(paths ...string) (string, error) {
	args := append([]string{"add", "--"}, paths...)
	if out, err := r.git(args...); err != nil {
		return out, fmt.Errorf("gitexec: add: %w", err)
	}
	out, err := r.git("commit", "--amend", "--no-edit")
	if err != nil {
		return out, fmt.Errorf("gitexec: amend: %w", err)
	}
	return out, nil
}

// Summary returns a one-line log summary of target.
func (r *Runner) Summary(target string) (string, error) {
	out, err := r.git("log", "-1", "--oneline", target)
	if err != nil {
		return "", fmt.Errorf("gitexec: log: %w: %s", err, out)
	}
	return out, nil
}

// ChangedFiles lists the files touched by target.
func (r *Runner) ChangedFiles(target string) ([]string, error) {
	out, err := r.git("diff-tree", "--no-commit-id", "--name-only", "-r", target)
	if err != nil {
		return nil, fmt.Errorf("gitexec: diff-tree: %w: %s", err, out)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// RangeSummaries returns one-line summaries for every commit in start..end.
func (r *Runner) RangeSummaries(start, end string) ([]string, error) {
	out, err := r.git("log", "--oneline", start+".."+end)
	if err != nil {
		return nil, fmt.Errorf("gitexec: log: %w: %s", err, out)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
