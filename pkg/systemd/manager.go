package systemd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/devports/svctop/pkg/models"
)

var ErrUnknownAction = errors.New("unknown service action")
var ErrNotFound = errors.New("unit not found")

// DirectoryError is returned by every failing Manager call.
type DirectoryError struct {
	Op   string
	Unit string
	Err  error
}

func (e *DirectoryError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Unit, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// Runner executes an external command and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(string(exitErr.Stderr)); msg != "" {
				return out, fmt.Errorf("%s: %w: %s", name, err, msg)
			}
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Manager lists, controls and reads logs of systemd service units.
type Manager struct {
	scope   models.Scope
	unitDir string
	timeout time.Duration
	runner  Runner
}

// NewManager creates a manager for the given scope. unitDir is scanned to
// decide which units come from the operator's own configuration.
func NewManager(scope models.Scope, unitDir string, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Manager{
		scope:   scope,
		unitDir: unitDir,
		timeout: timeout,
		runner:  execRunner{},
	}
}

func (m *Manager) scopeArgs(args ...string) []string {
	if m.scope == models.ScopeUser {
		return append([]string{"--user"}, args...)
	}
	return args
}

func (m *Manager) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.runner.Output(ctx, name, args...)
}

// ListServices returns every service unit known to the manager, loaded or
// merely installed, sorted by name.
func (m *Manager) ListServices(ctx context.Context) ([]models.Service, error) {
	userUnits := userConfigUnits(m.unitDir)

	out, err := m.run(ctx, "systemctl", m.scopeArgs("list-units", "--type=service", "--all", "--no-pager", "--no-legend", "--plain")...)
	if err != nil {
		return nil, &DirectoryError{Op: "list-units", Err: err}
	}
	services := parseListUnits(string(out), userUnits)

	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		seen[svc.Name] = true
	}

	// list-unit-files is slow and only adds installed but unloaded units, so
	// its failure does not fail the listing.
	if out, err := m.run(ctx, "systemctl", m.scopeArgs("list-unit-files", "--type=service", "--no-pager", "--no-legend", "--plain")...); err == nil {
		for _, name := range parseListUnitFiles(string(out)) {
			if seen[name] {
				continue
			}
			seen[name] = true
			services = append(services, models.Service{
				Name:         name,
				LoadedState:  "unloaded",
				ActiveState:  "inactive",
				SubState:     "dead",
				IsUserConfig: userUnits[name],
			})
		}
	}

	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

// Service returns the current state of a single unit.
func (m *Manager) Service(ctx context.Context, name string) (models.Service, error) {
	services, err := m.ListServices(ctx)
	if err != nil {
		return models.Service{}, err
	}
	for _, svc := range services {
		if svc.Name == name {
			return svc, nil
		}
	}
	return models.Service{}, &DirectoryError{Op: "status", Unit: name, Err: ErrNotFound}
}

// Control starts, stops or restarts a unit.
func (m *Manager) Control(ctx context.Context, name string, action models.Action) error {
	if err := ValidateUnitName(name); err != nil {
		return &DirectoryError{Op: action.String(), Unit: name, Err: err}
	}
	switch action {
	case models.ActionStart, models.ActionStop, models.ActionRestart:
	default:
		return &DirectoryError{Op: action.String(), Unit: name, Err: ErrUnknownAction}
	}
	if _, err := m.run(ctx, "systemctl", m.scopeArgs(action.String(), name)...); err != nil {
		return &DirectoryError{Op: action.String(), Unit: name, Err: err}
	}
	return nil
}

// FetchLogs returns at most maxLines of the unit's most recent journal lines.
func (m *Manager) FetchLogs(ctx context.Context, name string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return []string{}, nil
	}
	if err := ValidateUnitName(name); err != nil {
		return nil, &DirectoryError{Op: "logs", Unit: name, Err: err}
	}
	out, err := m.run(ctx, "journalctl", m.scopeArgs("-u", name, "-n", strconv.Itoa(maxLines), "--no-pager")...)
	if err != nil {
		return nil, &DirectoryError{Op: "logs", Unit: name, Err: err}
	}
	return lastNLines(splitLines(string(out)), maxLines), nil
}
