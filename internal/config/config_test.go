package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".forge", "INSTRUCTIONS.md"), cfg.Instructions)
	assert.Equal(t, []string{"claude"}, cfg.Agents)
	assert.Equal(t, "npm", cfg.PackageManager)
	assert.Equal(t, dir, cfg.Root)
}

func TestLoadParsesAndBackfills(t *testing.T) {
	dir := t.TempDir()
	content := "package_manager: go\nagents:\n  - claude\n  - cursor\nchecks:\n  - name: vet\n    command: [go, vet, ./...]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.PackageManager)
	assert.Equal(t, []string{"claude", "cursor"}, cfg.Agents)
	// Unset fields fall back to defaults.
	assert.Equal(t, filepath.Join(".forge", "INSTRUCTIONS.md"), cfg.Instructions)
	require.Len(t, cfg.Checks, 1)
	assert.Equal(t, []string{"go", "vet", "./..."}, cfg.Checks[0].Command)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("agents: not-a-list"), 0644))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(dir)
	cfg.PackageManager = "pnpm"
	require.NoError(t, cfg.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "pnpm", loaded.PackageManager)
}

func TestPaths(t *testing.T) {
	cfg := Default("/proj")
	assert.Equal(t, filepath.Join("/proj", ".forge", "INSTRUCTIONS.md"), cfg.InstructionsPath())
	assert.Equal(t, filepath.Join("/proj", ".forge"), cfg.ForgeDir())
}
