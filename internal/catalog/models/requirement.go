package models

// ExtractField names a value officials expect to read off an uploaded
// document of the category, with a display label for clients.
type ExtractField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Requirement is one document category a sector/application-type pair asks
// for. Required defaults to true in seeds; optional requirements inform the
// checklist but never block submission.
type Requirement struct {
	DocCategory   string         `json:"doc_category"`
	Required      bool           `json:"required"`
	Note          string         `json:"note,omitempty"`
	ExtractFields []ExtractField `json:"extract_fields,omitempty"`
}

// CatalogEntry is the ordered requirement checklist for one
// (sector, application_type) pair. The pair is the unique key; entries are
// read-heavy and immutable outside administrative upserts.
type CatalogEntry struct {
	Sector          string        `json:"sector"`
	ApplicationType string        `json:"application_type"`
	Requirements    []Requirement `json:"requirements"`
}

// RequirementByCategory finds a requirement by its doc category.
func (e *CatalogEntry) RequirementByCategory(category string) (Requirement, bool) {
	for _, r := range e.Requirements {
		if r.DocCategory == category {
			return r, true
		}
	}
	return Requirement{}, false
}
