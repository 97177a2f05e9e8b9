// Package preserve protects user-authored regions of the instructions
// document across destructive git operations. Regions are delimited by
// comment markers:
//
//	<!-- forge:keep -->  ...  <!-- forge:/keep -->        anonymous, numbered
//	<!-- forge:keep:NAME -->  ...  <!-- forge:/keep:NAME -->  named
//
// A Bundle lives only in process memory: extract and restore must happen in
// the same invocation, and a crash in between loses the snapshot. There is
// deliberately no on-disk backup artifact.
package preserve

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// CommandsDirName is the custom-commands subdirectory kept alongside the
// instructions document. Its files are snapshotted whole: they are user
// content even though they carry no markers.
const CommandsDirName = "commands"

var markerRe = regexp.MustCompile(`<!-- forge:(/?)keep(?::([A-Za-z0-9_-]+))? -->`)

// Section is one preserved region: its key (a sequence number for anonymous
// pairs, the embedded name for named pairs) and its verbatim interior.
type Section struct {
	Key  string
	Body string
}

// CommandFile is a snapshot of one file from the commands subdirectory.
type CommandFile struct {
	Name    string
	Content string
}

// Bundle holds everything extracted ahead of a destructive operation.
type Bundle struct {
	Sections []Section
	Commands []CommandFile
	Warnings []string
}

// Empty reports whether the bundle holds nothing to restore.
func (b *Bundle) Empty() bool {
	return len(b.Sections) == 0 && len(b.Commands) == 0
}

// Section returns the body stored under key.
func (b *Bundle) Section(key string) (string, bool) {
	for _, s := range b.Sections {
		if s.Key == key {
			return s.Body, true
		}
	}
	return "", false
}

// pair locates one matched marker pair inside a document: the interior byte
// range plus the key it resolves to.
type pair struct {
	key        string
	start, end int
}

// scanPairs walks the document's markers in order and pairs them up.
// Unbalanced or misnamed markers produce warnings rather than a guessed
// recovery: matched pairs are still usable, the rest is reported.
func scanPairs(doc string) ([]pair, []string) {
	var (
		pairs    []pair
		warnings []string
		anon     int
		open     bool
		openName string
		openEnd  int
	)
	for _, m := range markerRe.FindAllStringSubmatchIndex(doc, -1) {
		closing := doc[m[2]:m[3]] == "/"
		name := ""
		if m[4] != -1 {
			name = doc[m[4]:m[5]]
		}
		switch {
		case !closing && open:
			warnings = append(warnings, "start marker without a matching end")
			openName, openEnd = name, m[1]
		case !closing:
			open, openName, openEnd = true, name, m[1]
		case closing && !open:
			warnings = append(warnings, "end marker without a matching start")
		case closing && name != openName:
			warnings = append(warnings, fmt.Sprintf("end marker %q does not match start %q", name, openName))
			open = false
		default:
			key := openName
			if key == "" {
				anon++
				key = strconv.Itoa(anon)
			}
			pairs = append(pairs, pair{key: key, start: openEnd, end: m[0]})
			open = false
		}
	}
	if open {
		warnings = append(warnings, "start marker without a matching end")
	}
	return pairs, warnings
}

// Extract snapshots every matched marker pair in the document, plus all
// files in the commands subdirectory next to it. A missing document yields
// an empty bundle, which makes the downstream restore a no-op.
func Extract(docPath string) (*Bundle, error) {
	b := &Bundle{}
	data, err := os.ReadFile(docPath)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("preserve: read %s: %w", docPath, err)
	}

	doc := string(data)
	pairs, warnings := scanPairs(doc)
	b.Warnings = warnings
	for _, p := range pairs {
		b.Sections = append(b.Sections, Section{Key: p.key, Body: doc[p.start:p.end]})
	}

	cmdDir := filepath.Join(filepath.Dir(docPath), CommandsDirName)
	entries, err := os.ReadDir(cmdDir)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("preserve: read %s: %w", cmdDir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(cmdDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("preserve: read command %s: %w", e.Name(), err)
		}
		b.Commands = append(b.Commands, CommandFile{Name: e.Name(), Content: string(content)})
	}
	return b, nil
}

// Restore re-scans the (possibly rewritten) document for marker pairs and
// replaces each interior with the bundled content, matched by position for
// anonymous pairs and by name for named ones. A pair the rewrite removed
// entirely cannot be reinserted, since there is no anchor left to say where, so
// its content stays lost. Command files are rewritten unconditionally,
// recreating the subdirectory if needed.
func Restore(docPath string, b *Bundle) error {
	if b == nil || b.Empty() {
		return nil
	}
	data, err := os.ReadFile(docPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("preserve: read %s: %w", docPath, err)
	}

	doc := string(data)
	pairs, _ := scanPairs(doc)
	out := make([]byte, 0, len(doc))
	last := 0
	for _, p := range pairs {
		body, ok := b.Section(p.key)
		if !ok {
			continue
		}
		out = append(out, doc[last:p.start]...)
		out = append(out, body...)
		last = p.end
	}
	out = append(out, doc[last:]...)
	if err := os.WriteFile(docPath, out, 0644); err != nil {
		return fmt.Errorf("preserve: write %s: %w", docPath, err)
	}

	if len(b.Commands) == 0 {
		return nil
	}
	cmdDir := filepath.Join(filepath.Dir(docPath), CommandsDirName)
	if err := os.MkdirAll(cmdDir, 0755); err != nil {
		return fmt.Errorf("preserve: mkdir %s: %w", cmdDir, err)
	}
	for _, c := range b.Commands {
		if err := os.WriteFile(filepath.Join(cmdDir, c.Name), []byte(c.Content), 0644); err != nil {
			return fmt.Errorf("preserve: write command %s: %w", c.Name, err)
		}
	}
	return nil
}
