package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/devports/svctop/pkg/models"
	"github.com/devports/svctop/pkg/session"
)

// ListCmd handles the 'ls' command
func (a *App) ListCmd(ctx context.Context, all bool) error {
	services, err := a.directory.ListServices(ctx)
	if err != nil {
		return err
	}
	onlyUser := a.config.OnlyUserConfig() && !all
	return a.printServiceTable(session.Visible(services, onlyUser))
}

// printServiceTable prints services in tabular format
func (a *App) printServiceTable(services []models.Service) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tLoad\tActive\tSub\tOrigin")
	for _, svc := range services {
		fmt.Fprintln(w, formatServiceRow(svc))
	}
	return w.Flush()
}

func formatServiceRow(svc models.Service) string {
	origin := "system"
	if svc.IsUserConfig {
		origin = "config"
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s", svc.Name, svc.LoadedState, svc.ActiveState, svc.SubState, origin)
}

// ControlCmd starts, stops or restarts a unit and reports its new state.
func (a *App) ControlCmd(ctx context.Context, name string, action models.Action) error {
	a.logger.Debug("Running service action", "service", name, "action", action)
	if err := a.directory.Control(ctx, name, action); err != nil {
		return fmt.Errorf("failed to %s %s: %w", action, name, err)
	}
	svc, err := a.directory.Service(ctx, name)
	if err != nil {
		fmt.Fprintf(a.out, "Ran %s on %q\n", action, name)
		return nil
	}
	fmt.Fprintf(a.out, "Ran %s on %q: %s/%s\n", action, name, svc.ActiveState, svc.SubState)
	return nil
}

// LogsCmd prints the most recent journal lines of a unit
func (a *App) LogsCmd(ctx context.Context, name string, lines int) error {
	if lines <= 0 {
		lines = a.config.LogLines
	}
	logLines, err := a.directory.FetchLogs(ctx, name, lines)
	if err != nil {
		return fmt.Errorf("failed to fetch logs: %w", err)
	}
	if len(logLines) == 0 {
		fmt.Fprintf(a.out, "No logs for %q\n", name)
		return nil
	}
	for _, line := range logLines {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// StatusCmd prints the state of one unit
func (a *App) StatusCmd(ctx context.Context, name string) error {
	svc, err := a.directory.Service(ctx, name)
	if err != nil {
		return err
	}
	return a.printServiceStatus(svc)
}

func (a *App) printServiceStatus(svc models.Service) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	running := "no"
	if svc.IsRunning() {
		running = "yes"
	}
	origin := "system-wide"
	if svc.IsUserConfig {
		origin = shortenHome(a.config.UnitDir)
	}
	fmt.Fprintf(w, "Name:\t%s\n", svc.Name)
	fmt.Fprintf(w, "Load:\t%s\n", svc.LoadedState)
	fmt.Fprintf(w, "Active:\t%s (%s)\n", svc.ActiveState, svc.SubState)
	fmt.Fprintf(w, "Running:\t%s\n", running)
	fmt.Fprintf(w, "Defined in:\t%s\n", origin)
	return w.Flush()
}
