// Package config holds runtime configuration for the shell emulator,
// merged from defaults, an optional override file and command-line flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultPromptTemplate is the classic user@host:cwd$ display
	DefaultPromptTemplate = "{user}@{host}:{cwd}$ "

	// DefaultScriptPath is where the startup script is looked for when no
	// explicit path is configured
	DefaultScriptPath = "startup.txt"

	// DefaultLogLvl maps to info verbosity (1 error .. 5 trace)
	DefaultLogLvl = 3
)

// Config contains runtime configuration values for the shell emulator.
type Config struct {
	VFSPath        string // Path to the manifest file the virtual tree is built from
	ScriptPath     string // Path to the startup script executed before the interactive loop (Default "startup.txt")
	PromptTemplate string // Prompt template with {user}, {host}, {cwd} placeholders
	LogLvl         int    // Log verbosity between 1 (error) and 5 (trace) (Default 3)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions.
type ConfigOverride struct {
	VFSPath        *string `yaml:"vfs_path,omitempty" json:"vfs_path,omitempty"`
	ScriptPath     *string `yaml:"script_path,omitempty" json:"script_path,omitempty"`
	PromptTemplate *string `yaml:"prompt_template,omitempty" json:"prompt_template,omitempty"`
	LogLvl         *int    `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		ScriptPath:     DefaultScriptPath,
		PromptTemplate: DefaultPromptTemplate,
		LogLvl:         DefaultLogLvl,
	}
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.VFSPath != nil {
		c.VFSPath = *override.VFSPath
	}
	if override.ScriptPath != nil {
		c.ScriptPath = *override.ScriptPath
	}
	if override.PromptTemplate != nil {
		c.PromptTemplate = *override.PromptTemplate
	}
	if override.LogLvl != nil {
		c.LogLvl = *override.LogLvl
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
