package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "NTWK_CONFIG"
	// ConfigDirName is the config directory name under XDG.
	ConfigDirName = "ntwk"
	// ConfigFileName is the config file name inside ConfigDirName.
	ConfigFileName = "config.toml"
)

// FindConfigPath searches for a config file in priority order and returns
// the first that exists, or "" if none do.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, ConfigFileName)
		if fileExists(path) {
			return path
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", ConfigDirName, ConfigFileName)
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// DefaultConfigPath returns the preferred location for a new config file.
func DefaultConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, ConfigFileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", ConfigDirName, ConfigFileName)
	}
	return ConfigFileName
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0o755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
