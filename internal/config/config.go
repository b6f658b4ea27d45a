package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings read from
// ~/.config/modula/config.yaml. A missing file means defaults.
type Config struct {
	Theme       string `yaml:"theme"`
	DefaultView string `yaml:"default_view"`
	DataDir     string `yaml:"data_dir"`
	DisableCues bool   `yaml:"disable_cues"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Theme:       "forest",
		DefaultView: "tree",
	}
}

// DefaultPath returns the user config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "modula", "config.yaml")
	}
	return filepath.Join(home, ".config", "modula", "config.yaml")
}

// Load reads the config file at path, layering it over the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.DefaultView != "" {
		cfg.DefaultView = file.DefaultView
	}
	if file.DataDir != "" {
		cfg.DataDir = file.DataDir
	}
	cfg.DisableCues = file.DisableCues
	return cfg, nil
}
