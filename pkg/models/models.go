package models

import "fmt"

// Service is one unit reported by the service directory. It is replaced
// wholesale on every refresh.
type Service struct {
	Name         string
	LoadedState  string // "loaded", "not-found", "unloaded"
	ActiveState  string // "active", "inactive", "failed"
	SubState     string // "running", "dead", "exited"
	IsUserConfig bool
}

// IsRunning reports whether the unit is active with a running main process.
func (s Service) IsRunning() bool {
	return s.ActiveState == "active" && s.SubState == "running"
}

// IsFailed reports whether the unit ended up in the failed state.
func (s Service) IsFailed() bool {
	return s.ActiveState == "failed"
}

// Action is a control verb understood by the service directory.
type Action int

const (
	ActionStart Action = iota
	ActionStop
	ActionRestart
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionRestart:
		return "restart"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Scope selects which systemd manager is queried.
type Scope string

const (
	ScopeUser   Scope = "user"
	ScopeSystem Scope = "system"
)
