package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project-level config file forge reads from the repo root.
const FileName = ".forge.yaml"

// Check is one quality gate run by `forge check`. Command is an argv
// vector; nothing is passed through a shell.
type Check struct {
	Name     string   `yaml:"name"`
	Command  []string `yaml:"command"`
	Optional bool     `yaml:"optional"`
}

type Config struct {
	Instructions   string   `yaml:"instructions"`
	Agents         []string `yaml:"agents"`
	PackageManager string   `yaml:"package_manager"`
	Checks         []Check  `yaml:"checks"`
	Root           string   `yaml:"-"`
}

func Default(root string) *Config {
	return &Config{
		Instructions:   filepath.Join(".forge", "INSTRUCTIONS.md"),
		Agents:         []string{"claude"},
		PackageManager: "npm",
		Root:           root,
	}
}

// Load reads .forge.yaml from the project root. A missing file yields the
// defaults; zero values in a present file are backfilled.
func Load(root string) (*Config, error) {
	cfg := Default(root)

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Instructions == "" {
		cfg.Instructions = filepath.Join(".forge", "INSTRUCTIONS.md")
	}
	if len(cfg.Agents) == 0 {
		cfg.Agents = []string{"claude"}
	}
	if cfg.PackageManager == "" {
		cfg.PackageManager = "npm"
	}
	cfg.Root = root

	return cfg, nil
}

// Save writes the config to the project root.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.Root, FileName), data, 0644)
}

// InstructionsPath returns the absolute path of the instructions document.
func (c *Config) InstructionsPath() string {
	if filepath.IsAbs(c.Instructions) {
		return c.Instructions
	}
	return filepath.Join(c.Root, c.Instructions)
}

// ForgeDir returns the directory holding the instructions document, the
// custom commands and the history store.
func (c *Config) ForgeDir() string {
	return filepath.Dir(c.InstructionsPath())
}
