package rollback

import "errors"

// ErrDirtyTree is the precondition failure: rollback never runs against a
// working tree with uncommitted changes.
var ErrDirtyTree = errors.New("rollback: working tree has uncommitted changes, commit or stash them first")

// ValidationError reports user input that fails the rollback grammar. No
// git command has been issued when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "rollback: " + e.Reason
}

// ExecutionError reports a git subprocess that exited non-zero after
// mutation began. The operation is not auto-undone: git's own object model
// is the recovery mechanism, and Hint tells the user where to start.
type ExecutionError struct {
	Op     string
	Output string
	Hint   string
	Err    error
}

func (e *ExecutionError) Error() string {
	msg := "rollback: " + e.Op + " failed"
	if e.Output != "" {
		msg += ": " + e.Output
	}
	if e.Hint != "" {
		msg += "\n" + e.Hint
	}
	return msg
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
