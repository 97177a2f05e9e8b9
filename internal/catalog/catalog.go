// Package catalog recommends developer tools for a project by matching
// marker files (go.mod, package.json, ...) against a registry of tool
// descriptions. The built-in registry can be extended with YAML files in
// .forge/catalog.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrToolNotFound is returned when a tool cannot be found in the catalog.
var ErrToolNotFound = errors.New("catalog: tool not found")

// Tool describes one recommendable tool. Page is a markdown document
// rendered by `forge tools <name>`.
type Tool struct {
	Name    string   `yaml:"name"`
	Summary string   `yaml:"summary"`
	Matches []string `yaml:"matches"`
	Page    string   `yaml:"page"`
}

// Catalog is a registry of tools keyed by name.
type Catalog struct {
	tools map[string]Tool
}

func New() *Catalog {
	return &Catalog{tools: make(map[string]Tool)}
}

// Load parses YAML bytes into a Tool.
func Load(data []byte) (Tool, error) {
	var t Tool
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tool{}, fmt.Errorf("catalog: failed to parse YAML: %w", err)
	}
	return t, nil
}

// LoadDir registers all *.yaml and *.yml files from dir. Invalid files are
// silently skipped; a missing directory is not an error.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("catalog: failed to read directory %q: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		t, err := Load(data)
		if err != nil {
			continue
		}
		c.Register(t)
	}
	return nil
}

// Register adds a tool, replacing any existing tool of the same name.
func (c *Catalog) Register(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("catalog: cannot register tool with empty name")
	}
	c.tools[t.Name] = t
	return nil
}

// Get retrieves a tool by name.
func (c *Catalog) Get(name string) (Tool, error) {
	t, ok := c.tools[name]
	if !ok {
		return Tool{}, ErrToolNotFound
	}
	return t, nil
}

// List returns all tools sorted alphabetically by name.
func (c *Catalog) List() []Tool {
	list := make([]Tool, 0, len(c.tools))
	for _, t := range c.tools {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Match returns the tools whose marker files exist under root, sorted by
// name.
func (c *Catalog) Match(root string) []Tool {
	var matched []Tool
	for _, t := range c.List() {
		for _, marker := range t.Matches {
			if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}
