package config

import (
	"fmt"
	"time"

	"github.com/devports/svctop/pkg/models"
)

// CursorAnchor selects how the list cursor follows a refreshed service list.
type CursorAnchor string

const (
	// AnchorIndex keeps the cursor at the same position, clamped to the new length.
	AnchorIndex CursorAnchor = "index"
	// AnchorName re-selects the previously selected service by name when it is still visible.
	AnchorName CursorAnchor = "name"
)

// Config is the merged svctop configuration.
type Config struct {
	Scope              models.Scope  `yaml:"scope,omitempty"`
	InputCadence       time.Duration `yaml:"input_cadence,omitempty"`
	DataCadence        time.Duration `yaml:"data_cadence,omitempty"`
	LogLines           int           `yaml:"log_lines,omitempty"`
	CommandTimeout     time.Duration `yaml:"command_timeout,omitempty"`
	ShowOnlyUserConfig *bool         `yaml:"show_only_user_config,omitempty"`
	UnitDir            string        `yaml:"unit_dir,omitempty"`
	WatchUnitDir       *bool         `yaml:"watch_unit_dir,omitempty"`
	CursorAnchor       CursorAnchor  `yaml:"cursor_anchor,omitempty"`
	LogFile            string        `yaml:"log_file,omitempty"`

	// unitDirDerived is set when UnitDir came from Scope rather than a config file.
	unitDirDerived bool
}

// OnlyUserConfig reports the initial filter flag.
func (c Config) OnlyUserConfig() bool {
	return c.ShowOnlyUserConfig == nil || *c.ShowOnlyUserConfig
}

// SetScope switches the systemd manager scope. A unit directory derived from
// the previous scope follows the new one; one set in a config file is kept.
func (c *Config) SetScope(scope models.Scope) error {
	c.Scope = scope
	if !c.unitDirDerived {
		return nil
	}
	dir, err := models.UnitDir(scope)
	if err != nil {
		return fmt.Errorf("failed to resolve unit directory: %w", err)
	}
	c.UnitDir = dir
	return nil
}

// Watch reports whether the unit directory should be watched for changes.
func (c Config) Watch() bool {
	return c.WatchUnitDir == nil || *c.WatchUnitDir
}
