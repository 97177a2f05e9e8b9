package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/entrhq/forge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	res, err := Install(Options{Root: dir, Agents: []string{"claude", "cursor"}})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Written)
	assert.Empty(t, res.Skipped)

	data, err := os.ReadFile(filepath.Join(dir, ".forge", "INSTRUCTIONS.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "forge:keep")
	assert.Contains(t, string(data), "forge:/keep")

	assert.FileExists(t, filepath.Join(dir, ".forge", "commands", "review.md"))
	assert.FileExists(t, filepath.Join(dir, ".claude", "forge-workflow.md"))
	assert.FileExists(t, filepath.Join(dir, ".cursor", "rules", "forge-workflow.md"))
	assert.FileExists(t, filepath.Join(dir, config.FileName))

	workflow, _ := os.ReadFile(filepath.Join(dir, ".claude", "forge-workflow.md"))
	assert.Contains(t, string(workflow), "claude")
	assert.NotContains(t, string(workflow), "{{agent}}")
}

func TestInstallSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, ".forge", "INSTRUCTIONS.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(docPath), 0755))
	require.NoError(t, os.WriteFile(docPath, []byte("user edited"), 0644))

	res, err := Install(Options{Root: dir, Agents: []string{"claude"}})
	require.NoError(t, err)
	assert.Contains(t, res.Skipped, docPath)

	data, _ := os.ReadFile(docPath)
	assert.Equal(t, "user edited", string(data))
}

func TestInstallForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, ".forge", "INSTRUCTIONS.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(docPath), 0755))
	require.NoError(t, os.WriteFile(docPath, []byte("user edited"), 0644))

	_, err := Install(Options{Root: dir, Agents: []string{"claude"}, Force: true})
	require.NoError(t, err)

	data, _ := os.ReadFile(docPath)
	assert.Contains(t, string(data), "forge:keep")
}

func TestInstallUnknownAgent(t *testing.T) {
	_, err := Install(Options{Root: t.TempDir(), Agents: []string{"hal9000"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hal9000")
}

func TestInstallWritesConfigAgents(t *testing.T) {
	dir := t.TempDir()
	_, err := Install(Options{Root: dir, Agents: []string{"copilot"}})
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"copilot"}, cfg.Agents)
}

func TestKnownAgents(t *testing.T) {
	agents := KnownAgents()
	assert.Contains(t, agents, "claude")
	assert.Contains(t, agents, "cursor")
	assert.Contains(t, agents, "copilot")
	assert.Contains(t, agents, "windsurf")
}
