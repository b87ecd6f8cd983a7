package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ReportConfig represents the configuration file structure
type ReportConfig struct {
	TemporalHost string `json:"temporal_host"`
	Namespace    string `json:"namespace"`
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*ReportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ReportConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultConfigPath returns the config file read when -config is not given
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reindex-report.json"
	}
	return filepath.Join(home, ".reindex-report.json")
}
