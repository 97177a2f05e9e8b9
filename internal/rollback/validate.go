package rollback

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Method selects which git operation sequence a rollback uses.
type Method string

const (
	MethodCommit  Method = "commit"
	MethodPR      Method = "pr"
	MethodPartial Method = "partial"
	MethodBranch  Method = "branch"
)

// Request is one rollback invocation as entered by the user. It is built
// once from CLI input and consumed once by the orchestrator.
type Request struct {
	Method Method
	Target string
	DryRun bool
}

// ValidationResult is the accept/reject outcome for a (method, target) pair.
type ValidationResult struct {
	Valid  bool
	Reason string
}

func invalid(reason string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}

// hashRe is the only target grammar accepted for commit-ish methods: 4-40
// hex characters. Everything else, including git revision syntax like
// HEAD~1, is rejected rather than sanitized.
var hashRe = regexp.MustCompile(`^[0-9a-fA-F]{4,40}$`)

// encodedTraversalRe catches URL-encoded traversal fragments that would
// survive a naive ".." check.
var encodedTraversalRe = regexp.MustCompile(`(?i)%2e|%2f|%5c`)

const shellMeta = ";|&$`()<>\r\n"

// Validate checks a (method, target) pair against the rollback input
// grammar. Pure and deterministic: no I/O, no state, safe to call any
// number of times. root must be an absolute path to the project root; it is
// used only for lexical path resolution. Rules apply in order and the first
// failure wins.
func Validate(method Method, target, root string) ValidationResult {
	switch method {
	case MethodCommit, MethodPR:
		if target == "HEAD" || hashRe.MatchString(target) {
			return ValidationResult{Valid: true}
		}
		return invalid("Invalid commit hash: must be HEAD or 4-40 hex characters")
	case MethodPartial:
		for _, raw := range strings.Split(target, ",") {
			p := strings.TrimSpace(raw)
			if reason, ok := checkPath(p, root); !ok {
				return invalid(reason)
			}
		}
		return ValidationResult{Valid: true}
	case MethodBranch:
		parts := strings.Split(target, "..")
		if len(parts) != 2 {
			return invalid("Invalid branch range: expected <start>..<end>")
		}
		if !hashRe.MatchString(parts[0]) || !hashRe.MatchString(parts[1]) {
			return invalid("Invalid branch range: both ends must be 4-40 hex characters")
		}
		return ValidationResult{Valid: true}
	default:
		return invalid("Invalid method")
	}
}

func checkPath(p, root string) (string, bool) {
	if p == "" {
		return "Invalid file path: empty", false
	}
	if strings.ContainsAny(p, shellMeta) {
		return "Invalid file path: " + p, false
	}
	if encodedTraversalRe.MatchString(p) {
		return "Invalid file path: " + p, false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < 0x20 || p[i] > 0x7e {
			return "Invalid file path: " + p, false
		}
	}
	resolved := p
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(root, resolved)
	}
	resolved = filepath.Clean(resolved)
	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "Invalid file path: " + p + " escapes the project root", false
	}
	return "", true
}

// SplitPaths returns the trimmed file paths of a validated partial target.
func SplitPaths(target string) []string {
	var paths []string
	for _, raw := range strings.Split(target, ",") {
		paths = append(paths, strings.TrimSpace(raw))
	}
	return paths
}
