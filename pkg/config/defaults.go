package config

import (
	"time"

	"github.com/devports/svctop/pkg/models"
)

const (
	DefaultInputCadence   = 100 * time.Millisecond
	DefaultDataCadence    = 2 * time.Second
	DefaultLogLines       = 100
	DefaultCommandTimeout = 10 * time.Second
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scope:          models.ScopeUser,
		InputCadence:   DefaultInputCadence,
		DataCadence:    DefaultDataCadence,
		LogLines:       DefaultLogLines,
		CommandTimeout: DefaultCommandTimeout,
		CursorAnchor:   AnchorIndex,
	}
}
