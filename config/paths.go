package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// This file centralizes path helpers for the config package so other
// packages rely on a single source of truth for where ng-setup stores
// its configuration.

const (
	configName    = "config"
	configType    = "yml"
	appConfigPath = "ng-setup"

	// NG_SETUP_CONFIG_DIR_ENV overrides the base config directory,
	// mainly for tests and containerized runs
	NG_SETUP_CONFIG_DIR_ENV = "NG_SETUP_CONFIG_DIR"
)

// ConfigDir returns the base application config directory.
// If the NG_SETUP_CONFIG_DIR environment variable is set, its value is
// used as the base before appending ng-setup. Otherwise the defaults
// are:
// - macOS:   ~/Library/Application Support/ng-setup
// - Linux:   ~/.config/ng-setup
// - Windows: %AppData%\ng-setup
func ConfigDir() (string, error) {
	dir := os.Getenv(NG_SETUP_CONFIG_DIR_ENV)
	if dir != "" {
		return filepath.Join(dir, appConfigPath), nil
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve user config directory: %w", err)
	}

	return filepath.Join(userConfigDir, appConfigPath), nil
}

// createConfigDir ensures the application config directory exists and
// returns its path.
func createConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	return dir, nil
}

// ConfigFilePath returns the absolute path to the main config file,
// without creating any directories.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, fmt.Sprintf("%s.%s", configName, configType)), nil
}
