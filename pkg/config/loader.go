package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/devports/svctop/pkg/models"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/svctop"
	projectConfigDir = ".svctop"
	configFileName   = "config.yaml"
)

// Load layers the default, user and project configuration files. An explicit
// path, when given, replaces the user and project layers.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	if explicitPath != "" {
		overlay, err := loadFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		return finalize(merge(cfg, overlay))
	}

	for _, locate := range []func() (string, error){getUserConfigPath, getProjectConfigPath} {
		path, err := locate()
		if err != nil {
			// Optional layer.
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		overlay, err := loadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		cfg = merge(cfg, overlay)
	}

	return finalize(cfg)
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func loadFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge applies the fields set in overlay on top of base.
func merge(base, overlay Config) Config {
	out := base
	if overlay.Scope != "" {
		out.Scope = overlay.Scope
	}
	if overlay.InputCadence > 0 {
		out.InputCadence = overlay.InputCadence
	}
	if overlay.DataCadence > 0 {
		out.DataCadence = overlay.DataCadence
	}
	if overlay.LogLines > 0 {
		out.LogLines = overlay.LogLines
	}
	if overlay.CommandTimeout > 0 {
		out.CommandTimeout = overlay.CommandTimeout
	}
	if overlay.ShowOnlyUserConfig != nil {
		out.ShowOnlyUserConfig = overlay.ShowOnlyUserConfig
	}
	if overlay.UnitDir != "" {
		out.UnitDir = overlay.UnitDir
	}
	if overlay.WatchUnitDir != nil {
		out.WatchUnitDir = overlay.WatchUnitDir
	}
	if overlay.CursorAnchor != "" {
		out.CursorAnchor = overlay.CursorAnchor
	}
	if overlay.LogFile != "" {
		out.LogFile = overlay.LogFile
	}
	return out
}

func finalize(cfg Config) (Config, error) {
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.UnitDir == "" {
		dir, err := models.UnitDir(cfg.Scope)
		if err != nil {
			return Config{}, fmt.Errorf("failed to resolve unit directory: %w", err)
		}
		cfg.UnitDir = dir
		cfg.unitDirDerived = true
	}
	return cfg, nil
}

// Validate rejects values the session cannot run with.
func (c Config) Validate() error {
	switch c.Scope {
	case models.ScopeUser, models.ScopeSystem:
	default:
		return fmt.Errorf("invalid scope %q (want %q or %q)", c.Scope, models.ScopeUser, models.ScopeSystem)
	}
	switch c.CursorAnchor {
	case AnchorIndex, AnchorName:
	default:
		return fmt.Errorf("invalid cursor_anchor %q (want %q or %q)", c.CursorAnchor, AnchorIndex, AnchorName)
	}
	if c.InputCadence <= 0 || c.DataCadence <= 0 {
		return fmt.Errorf("cadences must be positive")
	}
	if c.LogLines <= 0 {
		return fmt.Errorf("log_lines must be positive")
	}
	return nil
}
