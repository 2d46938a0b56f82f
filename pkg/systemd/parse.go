package systemd

import (
	"os"
	"strings"

	"github.com/devports/svctop/pkg/models"
)

// userConfigUnits returns the service unit file names present in dir.
func userConfigUnits(dir string) map[string]bool {
	names := make(map[string]bool)
	if dir == "" {
		return names
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	for _, entry := range entries {
		if isServiceUnit(entry.Name()) {
			names[entry.Name()] = true
		}
	}
	return names
}

func isServiceUnit(name string) bool {
	return strings.HasSuffix(name, ".service") && len(name) > len(".service")
}

// parseListUnits reads `systemctl list-units --plain --no-legend` output:
// UNIT LOAD ACTIVE SUB DESCRIPTION...
func parseListUnits(output string, userUnits map[string]bool) []models.Service {
	var services []models.Service
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		services = append(services, models.Service{
			Name:         fields[0],
			LoadedState:  fields[1],
			ActiveState:  fields[2],
			SubState:     fields[3],
			IsUserConfig: userUnits[fields[0]],
		})
	}
	return services
}

// parseListUnitFiles reads `systemctl list-unit-files --plain --no-legend`
// output and returns the unit names.
func parseListUnitFiles(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		names = append(names, fields[0])
	}
	return names
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

func lastNLines(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	out := make([]string, n)
	copy(out, in[len(in)-n:])
	return out
}
