package session

import "github.com/devports/svctop/pkg/models"

// ViewState holds the operator's list filter.
type ViewState struct {
	ShowOnlyUserConfig bool
}

// Visible returns the services shown for the given filter flag, in their
// original order. The input slice is never modified.
func Visible(all []models.Service, onlyUserConfig bool) []models.Service {
	if !onlyUserConfig {
		out := make([]models.Service, len(all))
		copy(out, all)
		return out
	}
	out := make([]models.Service, 0, len(all))
	for _, svc := range all {
		if svc.IsUserConfig {
			out = append(out, svc)
		}
	}
	return out
}
