// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"esocial-informe/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Extract contains document extraction settings
	Extract ExtractConfig `json:"extract"`

	// Output contains output settings
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ExtractConfig contains document extraction settings
type ExtractConfig struct {
	// Workers is the number of parallel extraction workers
	Workers int `json:"workers"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default audit output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// Directory is where generated reports are written
	Directory string `json:"directory"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Extract: ExtractConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			Directory:     ".",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
