// Package rollback undoes prior forge commits, merged PRs, individual files
// or branch ranges in the user's repository. The orchestrator runs a linear
// pipeline: validate, check the tree is clean, snapshot preserved content,
// run the git sequence, restore the content, amend it into the rollback
// commit. Dry runs short-circuit after validation into read-only previews.
package rollback

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/entrhq/forge/internal/gitexec"
	"github.com/entrhq/forge/internal/preserve"
	"github.com/entrhq/forge/internal/tracker"
)

// IssueTracker posts a rollback notice on a linked issue. Failures are
// warnings, never rollback failures.
type IssueTracker interface {
	Comment(issue, body string) error
}

type Options struct {
	Root         string // absolute project root
	Instructions string // path to the instructions document
	Out          io.Writer
	Tracker      IssueTracker
}

type Orchestrator struct {
	root    string
	doc     string
	git     *gitexec.Runner
	out     io.Writer
	tracker IssueTracker
}

func New(opts Options) *Orchestrator {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Orchestrator{
		root:    opts.Root,
		doc:     opts.Instructions,
		git:     gitexec.New(opts.Root),
		out:     out,
		tracker: opts.Tracker,
	}
}

const recoveryHint = "No automatic cleanup was attempted. Inspect with 'git status' and 'git log', then finish manually with 'git revert <commit>'."

// Run executes one rollback request to completion. Validation happens fully
// before any git subprocess is invoked; a dry run never reaches the
// snapshot or amend steps.
func (o *Orchestrator) Run(req Request) error {
	if v := Validate(req.Method, req.Target, o.root); !v.Valid {
		return &ValidationError{Reason: v.Reason}
	}

	if req.DryRun {
		return o.preview(req)
	}

	clean, err := o.git.IsClean()
	if err != nil {
		return fmt.Errorf("rollback: precondition check: %w", err)
	}
	if !clean {
		return ErrDirtyTree
	}

	bundle, err := preserve.Extract(o.doc)
	if err != nil {
		return fmt.Errorf("rollback: snapshot preserved content: %w", err)
	}
	for _, w := range bundle.Warnings {
		fmt.Fprintf(o.out, "warning: instructions document: %s\n", w)
	}

	if err := o.execute(req); err != nil {
		// Restore and amend are skipped: amending a commit that does not
		// represent the intended state would make recovery harder.
		return err
	}

	if err := preserve.Restore(o.doc, bundle); err != nil {
		return fmt.Errorf("rollback: restore preserved content: %w", err)
	}

	if _, err := os.Stat(o.doc); err == nil {
		if out, err := o.git.AmendWith(o.doc); err != nil {
			return &ExecutionError{Op: "amend", Output: out, Hint: recoveryHint, Err: err}
		}
	}

	if req.Method == MethodPR {
		o.notifyTracker(req.Target)
	}

	fmt.Fprintln(o.out, "Rollback complete.")
	return nil
}

func (o *Orchestrator) execute(req Request) error {
	switch req.Method {
	case MethodCommit:
		if out, err := o.git.RevertCommit(req.Target); err != nil {
			return &ExecutionError{Op: "revert", Output: out, Hint: recoveryHint, Err: err}
		}
	case MethodPR:
		if out, err := o.git.RevertMerge(req.Target); err != nil {
			return &ExecutionError{Op: "revert merge", Output: out, Hint: recoveryHint, Err: err}
		}
	case MethodPartial:
		if out, err := o.git.RestoreFiles(SplitPaths(req.Target)); err != nil {
			return &ExecutionError{Op: "restore files", Output: out, Hint: recoveryHint, Err: err}
		}
	case MethodBranch:
		parts := strings.Split(req.Target, "..")
		if out, err := o.git.RevertRange(parts[0], parts[1]); err != nil {
			return &ExecutionError{Op: "revert range", Output: out, Hint: recoveryHint, Err: err}
		}
	}
	return nil
}

// notifyTracker looks up an issue reference in the reverted commit's
// message and posts a notice. Best-effort: failures become warnings.
func (o *Orchestrator) notifyTracker(target string) {
	msg, err := o.git.CommitMessage(target)
	if err != nil {
		fmt.Fprintf(o.out, "warning: issue lookup skipped: %v\n", err)
		return
	}
	issue, ok := tracker.FindIssue(msg)
	if !ok || o.tracker == nil {
		return
	}
	if err := o.tracker.Comment(issue, fmt.Sprintf("forge rolled back this change (reverted %s).", target)); err != nil {
		fmt.Fprintf(o.out, "warning: issue tracker update failed: %v\n", err)
	}
}

// preview prints what a rollback would do using only read-only git
// introspection. No mutating subcommand is ever issued on this path.
func (o *Orchestrator) preview(req Request) error {
	switch req.Method {
	case MethodCommit, MethodPR:
		summary, err := o.git.Summary(req.Target)
		if err != nil {
			return fmt.Errorf("rollback: preview: %w", err)
		}
		fmt.Fprintf(o.out, "Would revert: %s\n", summary)
		files, err := o.git.ChangedFiles(req.Target)
		if err != nil {
			return fmt.Errorf("rollback: preview: %w", err)
		}
		for _, f := range files {
			fmt.Fprintf(o.out, "  %s\n", f)
		}
	case MethodPartial:
		summary, err := o.git.Summary("HEAD~1")
		if err != nil {
			return fmt.Errorf("rollback: preview: %w", err)
		}
		fmt.Fprintf(o.out, "Would restore from %s:\n", summary)
		for _, p := range SplitPaths(req.Target) {
			fmt.Fprintf(o.out, "  %s\n", p)
		}
	case MethodBranch:
		parts := strings.Split(req.Target, "..")
		summaries, err := o.git.RangeSummaries(parts[0], parts[1])
		if err != nil {
			return fmt.Errorf("rollback: preview: %w", err)
		}
		fmt.Fprintf(o.out, "Would revert %d commit(s):\n", len(summaries))
		for _, s := range summaries {
			fmt.Fprintf(o.out, "  %s\n", s)
		}
	}
	fmt.Fprintln(o.out, "Dry run: no changes made.")
	return nil
}
