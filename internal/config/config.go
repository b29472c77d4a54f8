// Package config loads the splitdesk configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	AppName  = "splitdesk"
	FileName = "config.yaml"
)

// Config is the user configuration. A missing file or missing keys fall back
// to defaults; loading never produces a config the workspace cannot run with.
type Config struct {
	// Modal enables modal editing.
	Modal bool `yaml:"modal"`
	// Workspace is the folder opened at startup. Empty means no workspace.
	Workspace string `yaml:"workspace"`
	// ShowBorders paints divider lines between split panes.
	ShowBorders bool `yaml:"show_borders"`
	// Keybindings overrides default bindings, command name to key sequence.
	Keybindings map[string]string `yaml:"keybindings"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ShowBorders: true,
	}
}

// DataDir returns the path to the splitdesk data directory (~/.splitdesk/).
// Creates the directory if it doesn't exist.
// Can be overridden with SPLITDESK_DATA_DIR environment variable (primarily for testing).
func DataDir() (string, error) {
	if dataDir := os.Getenv("SPLITDESK_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// Path returns the config file path (~/.splitdesk/config.yaml).
func Path() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, FileName), nil
}

// Load reads the config at path. A missing file returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadDefault reads the config from the data directory.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return Load(path)
}

// Save writes the config to path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
