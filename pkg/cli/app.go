package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/devports/svctop/pkg/config"
	"github.com/devports/svctop/pkg/models"
	"github.com/devports/svctop/pkg/session"
	"github.com/devports/svctop/pkg/systemd"
)

// serviceDirectory is what the commands and the session need from systemd.
type serviceDirectory interface {
	session.Directory
	Service(ctx context.Context, name string) (models.Service, error)
}

// App is the main application handler
type App struct {
	config    config.Config
	directory serviceDirectory
	logger    *log.Logger
	out       io.Writer
}

// NewApp creates and initializes the application
func NewApp(cfg config.Config, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		config:    cfg,
		directory: systemd.NewManager(cfg.Scope, cfg.UnitDir, cfg.CommandTimeout),
		logger:    logger,
		out:       os.Stdout,
	}
}

// sessionOptions maps the configuration onto the session controller.
func (a *App) sessionOptions() session.Options {
	filtered := fmt.Sprintf("%s Services", shortenHome(a.config.UnitDir))
	all := "All User Services"
	if a.config.Scope == models.ScopeSystem {
		all = "All System Services"
	}
	return session.Options{
		InputCadence:       a.config.InputCadence,
		DataCadence:        a.config.DataCadence,
		LogLines:           a.config.LogLines,
		ShowOnlyUserConfig: a.config.OnlyUserConfig(),
		AnchorByName:       a.config.CursorAnchor == config.AnchorName,
		FilteredLabel:      filtered,
		AllLabel:           all,
		Logger:             a.logger,
	}
}

func shortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

// newLogger returns a logger writing to w at the requested verbosity.
func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "svctop",
	})
}

// openLogFile opens the file the interactive UI logs to while it owns the terminal.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
