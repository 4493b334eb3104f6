// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default destination names, kept from the tool this replaces so existing
// batch scripts keep working.
const (
	DefaultWithKeyDir = "PDFs_Com_Chave"
	DefaultNoKeyDir   = "PDFs_Sem_Chave"
	DefaultReportFile = "chaves_extraidas.txt"
	DefaultWorkers    = 4
)

// Config represents the application configuration. All paths are resolved
// once at startup; nothing in the processing core reads configuration state.
type Config struct {
	Defaults struct {
		InputDir   string `yaml:"input_dir"`
		WithKeyDir string `yaml:"with_key_dir"`
		NoKeyDir   string `yaml:"no_key_dir"`
		ReportFile string `yaml:"report_file"`
		Format     string `yaml:"format"`
		Workers    int    `yaml:"workers"`
		Verbose    bool   `yaml:"verbose"`
		Debug      bool   `yaml:"debug"`
		NoColor    bool   `yaml:"no_color"`
		Quiet      bool   `yaml:"quiet"`
	} `yaml:"defaults"`
}

// LoadConfig loads configuration from the specified file path. An empty path
// returns the built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	config.Defaults.InputDir = "."
	config.Defaults.WithKeyDir = DefaultWithKeyDir
	config.Defaults.NoKeyDir = DefaultNoKeyDir
	config.Defaults.ReportFile = DefaultReportFile
	config.Defaults.Format = "delimited"
	config.Defaults.Workers = DefaultWorkers

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// LoadConfigOrDefault loads configuration, falling back to defaults on any
// error. Used at startup where a broken config file should warn, not abort.
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// FindConfigFile looks for a configuration file in standard locations.
func FindConfigFile() string {
	for _, name := range []string{"chave-scan.yaml", "chave-scan.yml", ".chave-scan.yaml"} {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// ValidateConfig checks the configuration for values the run cannot proceed
// with. Directory existence is checked later, at run setup, so that output
// directories can still be created on demand.
func ValidateConfig(config *Config) error {
	if config.Defaults.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", config.Defaults.Workers)
	}
	switch config.Defaults.Format {
	case "", "delimited", "json":
	default:
		return fmt.Errorf("unknown report format %q (expected delimited or json)", config.Defaults.Format)
	}
	if config.Defaults.WithKeyDir == config.Defaults.NoKeyDir {
		return fmt.Errorf("with_key_dir and no_key_dir must differ")
	}
	return nil
}
