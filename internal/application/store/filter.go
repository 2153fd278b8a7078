package store

import (
	"strings"

	"udyam/internal/application/models"
)

// Filter narrows the official listing. Each set field is an exact-match AND
// condition; Q is a case-insensitive substring match across the reviewer
// comment and the name fields of the application data, OR-combined. Unset
// fields impose no constraint.
type Filter struct {
	Status          models.Status
	Sector          string
	ApplicationType string
	Q               string
}

// searchableDataFields are the application_data keys the free-text search
// inspects. Only string values are considered.
var searchableDataFields = []string{"name", "startup_name"}

// Matches reports whether the application satisfies the filter. Shared by
// the in-memory store; the postgres store expresses the same predicate in SQL.
func (f Filter) Matches(app *models.Application) bool {
	if f.Status != "" && app.Status != f.Status {
		return false
	}
	if f.Sector != "" && app.Sector != f.Sector {
		return false
	}
	if f.ApplicationType != "" && app.ApplicationType != f.ApplicationType {
		return false
	}
	if f.Q == "" {
		return true
	}

	q := strings.ToLower(f.Q)
	if strings.Contains(strings.ToLower(app.ReviewerComment), q) {
		return true
	}
	for _, field := range searchableDataFields {
		if v, ok := app.ApplicationData[field].(string); ok {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
	}
	return false
}
