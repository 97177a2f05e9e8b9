// Package tracker posts rollback notices to the external issue tracker via
// the gh CLI. Every call is best-effort: a missing binary or a non-zero
// exit is reported to the caller as an ordinary error and must never fail
// the rollback that triggered it.
package tracker

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

var issueRe = regexp.MustCompile(`#(\d+)`)

// FindIssue returns the first issue number referenced in a commit message.
func FindIssue(message string) (string, bool) {
	m := issueRe.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

type Client struct {
	dir    string
	binary string
}

func New(dir string) *Client {
	return &Client{dir: dir, binary: "gh"}
}

// Comment posts body on the given issue.
func (c *Client) Comment(issue, body string) error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return fmt.Errorf("tracker: %s not found in PATH", c.binary)
	}
	cmd := exec.Command(c.binary, "issue", "comment", issue, "--body", body)
	cmd.Dir = c.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("tracker: gh issue comment: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
