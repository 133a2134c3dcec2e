package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the Forward Enterprise connection parameters and file
// locations. Values come from built-in defaults, optionally overridden by
// ~/.config/fwd-provision/config.yaml.
type Config struct {
	AppHost      string `yaml:"app_host"`
	NetworkID    string `yaml:"network_id"`
	SetupID      string `yaml:"setup_id"`
	RegionsFile  string `yaml:"regions_file"`
	AppCredsFile string `yaml:"app_creds_file"`
	OutputFile   string `yaml:"output_file"`
}

func defaults() *Config {
	return &Config{
		AppHost:      DefaultAppHost,
		NetworkID:    DefaultNetworkID,
		SetupID:      DefaultSetupID,
		RegionsFile:  DefaultRegionsFile,
		AppCredsFile: DefaultAppCredsFile,
		OutputFile:   DefaultOutputFilename,
	}
}

// Load reads the optional config file and merges it over the defaults.
// A missing file is not an error.
func Load() (*Config, error) {
	cfg := defaults()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	path := filepath.Join(home, ".config", "fwd-provision", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, err
	}
	cfg.merge(&override)
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.AppHost != "" {
		c.AppHost = o.AppHost
	}
	if o.NetworkID != "" {
		c.NetworkID = o.NetworkID
	}
	if o.SetupID != "" {
		c.SetupID = o.SetupID
	}
	if o.RegionsFile != "" {
		c.RegionsFile = o.RegionsFile
	}
	if o.AppCredsFile != "" {
		c.AppCredsFile = o.AppCredsFile
	}
	if o.OutputFile != "" {
		c.OutputFile = o.OutputFile
	}
}
