package systemd

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrInvalidUnit = errors.New("invalid unit name")

var blockedUnitPatterns = []string{
	"&&", "||", ";", "|", ">", "<", "`", "$(", "${", "/",
}

func firstBlockedPattern(name string) (string, bool) {
	for _, p := range blockedUnitPatterns {
		if strings.Contains(name, p) {
			return p, true
		}
	}
	return "", false
}

// ValidateUnitName rejects names that must never reach systemctl or journalctl
// as an argument.
func ValidateUnitName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUnit)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: %q looks like a flag", ErrInvalidUnit, name)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidUnit, name)
	}
	if p, ok := firstBlockedPattern(name); ok {
		return fmt.Errorf("%w: %q contains disallowed pattern %q", ErrInvalidUnit, name, p)
	}
	return nil
}
