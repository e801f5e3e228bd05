// Package config provides functions for loading, defaulting and saving stale-pr-reporter configuration.
package config

import (
	"fmt"
	"os"

	"github.com/alan/stale-pr-reporter/cmd"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads the configuration from the specified file
func LoadConfig(filename string) (*cmd.Config, error) {
	data, err := os.ReadFile(filename) //nolint:gosec // Config filename is from command-line flag
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config cmd.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified file
func SaveConfig(filename string, config *cmd.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the file, then overlays environment overrides and fills defaults
func Load(filename string) (*cmd.Config, error) {
	config, err := LoadConfig(filename)
	if err != nil {
		return nil, err
	}
	ApplyEnv(config, os.Getenv)
	ApplyDefaults(config)
	return config, nil
}
