package handler

import (
	"strings"

	"udyam/internal/application/models"
	"udyam/internal/application/store"
	"udyam/pkg/domain"
	dErrors "udyam/pkg/domain-errors"
)

// CreateRequest is the payload for opening a draft application.
type CreateRequest struct {
	StartupID       string         `json:"startup_id"`
	Sector          string         `json:"sector"`
	ApplicationType string         `json:"application_type"`
	ApplicationData map[string]any `json:"application_data"`

	startupID domain.StartupID
}

// Validate checks required fields and parses identifiers.
func (r *CreateRequest) Validate() error {
	var missing []string
	if r.StartupID == "" {
		missing = append(missing, "startup_id")
	}
	if r.Sector == "" {
		missing = append(missing, "sector")
	}
	if r.ApplicationType == "" {
		missing = append(missing, "application_type")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation,
			"missing required fields: "+strings.Join(missing, ", ")).
			WithDetails(map[string]any{"fields": missing})
	}

	id, err := domain.ParseStartupID(r.StartupID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "startup_id must be a valid UUID")
	}
	r.startupID = id
	return nil
}

// SubmitRequest is the optional payload for submitting an application.
type SubmitRequest struct {
	Comment string `json:"comment"`
}

// Validate is a no-op; the comment is optional.
func (r *SubmitRequest) Validate() error { return nil }

// ReviewRequest is the payload for an official's review transition.
type ReviewRequest struct {
	Action  string `json:"action"`
	Comment string `json:"comment"`
}

// Validate checks the action is present. Whether the action is one the
// lifecycle knows is the service's call.
func (r *ReviewRequest) Validate() error {
	if r.Action == "" {
		return dErrors.New(dErrors.CodeValidation, "missing required fields: action").
			WithDetails(map[string]any{"fields": []string{"action"}})
	}
	return nil
}

// parseListFilter builds the listing filter from query parameters. An
// unsupported status value is a validation error rather than an empty result.
func parseListFilter(status, sector, applicationType, q string) (store.Filter, error) {
	filter := store.Filter{
		Sector:          sector,
		ApplicationType: applicationType,
		Q:               q,
	}
	if status != "" {
		parsed, err := models.ParseStatus(status)
		if err != nil {
			return store.Filter{}, err
		}
		filter.Status = parsed
	}
	return filter, nil
}
