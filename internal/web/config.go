package web

import (
	"encoding/json"
	"os"
)

// Config represents the report server configuration
type Config struct {
	Server   ServerConfig  `json:"server"`
	Inputs   InputConfig   `json:"inputs"`
	Features FeatureConfig `json:"features"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// InputConfig points at the reconciliation inputs the server runs against
type InputConfig struct {
	ElementsPath string `json:"elements_path"`
	SchedulePath string `json:"schedule_path"`
}

// FeatureConfig contains feature toggles
type FeatureConfig struct {
	ExportEnabled    bool `json:"export_enabled"`
	ReconcileEnabled bool `json:"reconcile_enabled"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Inputs: InputConfig{
			ElementsPath: "data/elements.csv",
			SchedulePath: "data/schedule.csv",
		},
		Features: FeatureConfig{
			ExportEnabled:    true,
			ReconcileEnabled: true,
		},
	}
}
