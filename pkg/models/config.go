package models

import (
	"os"
	"path/filepath"
)

// ConfigPaths provides paths for config and data directories
type ConfigPaths struct {
	ConfigDir string
	LogFile   string
}

// GetConfigPaths returns paths for svctop configuration
func GetConfigPaths() (ConfigPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigPaths{}, err
	}

	configDir := filepath.Join(home, ".config", "svctop")
	return ConfigPaths{
		ConfigDir: configDir,
		LogFile:   filepath.Join(configDir, "svctop.log"),
	}, nil
}

// EnsureDirs creates necessary configuration directories
func (cp ConfigPaths) EnsureDirs() error {
	return os.MkdirAll(cp.ConfigDir, 0755)
}

// UnitDir returns the directory holding operator-defined unit files for a scope.
func UnitDir(scope Scope) (string, error) {
	if scope == ScopeSystem {
		return "/etc/systemd/system", nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "systemd", "user"), nil
}
