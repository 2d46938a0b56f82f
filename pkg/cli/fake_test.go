package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/devports/svctop/pkg/config"
	"github.com/devports/svctop/pkg/models"
)

var errUnitNotFound = errors.New("unit not found")

type fakeDirectory struct {
	services   []models.Service
	listErr    error
	listCalls  int
	logs       map[string][]string
	logErr     error
	controlErr error
	controls   []string
}

func (f *fakeDirectory) ListServices(context.Context) ([]models.Service, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Service(nil), f.services...), nil
}

func (f *fakeDirectory) Service(_ context.Context, name string) (models.Service, error) {
	for _, svc := range f.services {
		if svc.Name == name {
			return svc, nil
		}
	}
	return models.Service{}, fmt.Errorf("status %s: %w", name, errUnitNotFound)
}

func (f *fakeDirectory) Control(_ context.Context, name string, action models.Action) error {
	f.controls = append(f.controls, action.String()+" "+name)
	return f.controlErr
}

func (f *fakeDirectory) FetchLogs(_ context.Context, name string, maxLines int) ([]string, error) {
	if f.logErr != nil {
		return nil, f.logErr
	}
	lines := f.logs[name]
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}

func testServices() []models.Service {
	return []models.Service{
		{Name: "api.service", LoadedState: "loaded", ActiveState: "active", SubState: "running", IsUserConfig: true},
		{Name: "dbus.service", LoadedState: "loaded", ActiveState: "active", SubState: "running"},
		{Name: "worker.service", LoadedState: "loaded", ActiveState: "failed", SubState: "failed", IsUserConfig: true},
	}
}

func newTestApp(dir *fakeDirectory) (*App, *bytes.Buffer) {
	cfg := config.Default()
	cfg.UnitDir = "/units"
	out := &bytes.Buffer{}
	return &App{
		config:    cfg,
		directory: dir,
		logger:    log.New(&bytes.Buffer{}),
		out:       out,
	}, out
}
