package handler

import "udyam/internal/catalog/models"

// EntryResponse is the HTTP response for requirement lookups.
type EntryResponse struct {
	Sector          string               `json:"sector"`
	ApplicationType string               `json:"application_type"`
	TotalRequired   int                  `json:"total_required"`
	Requirements    []models.Requirement `json:"requirements"`
}

// FromEntry converts a catalog entry to an HTTP response.
func FromEntry(entry *models.CatalogEntry) *EntryResponse {
	required := 0
	for _, r := range entry.Requirements {
		if r.Required {
			required++
		}
	}
	reqs := entry.Requirements
	if reqs == nil {
		reqs = []models.Requirement{}
	}
	return &EntryResponse{
		Sector:          entry.Sector,
		ApplicationType: entry.ApplicationType,
		TotalRequired:   required,
		Requirements:    reqs,
	}
}
