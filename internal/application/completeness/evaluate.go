// Package completeness decides whether an application's uploaded documents
// satisfy its requirement checklist. The evaluation is a pure read: no I/O,
// no side effects, deterministic for a given checklist and document set.
package completeness

import (
	catalogmodels "udyam/internal/catalog/models"
	documentmodels "udyam/internal/document/models"
)

// Reasons a requirement can be unsatisfied.
const (
	ReasonAbsent     = "absent"
	ReasonUnverified = "unverified"
)

// Detail explains the state of one unsatisfied requirement.
type Detail struct {
	DocCategory string `json:"doc_category"`
	Required    bool   `json:"required"`
	Reason      string `json:"reason"`
}

// Result is the outcome of a completeness evaluation. Missing lists only
// required categories; optional requirements appear in Details but never
// block completeness.
type Result struct {
	Complete        bool     `json:"complete"`
	RequireVerified bool     `json:"require_verified"`
	Missing         []string `json:"missing"`
	Details         []Detail `json:"details"`
}

// Evaluate checks each requirement of the checklist against the uploaded
// documents. Matching is keyed on the document's DECLARED category; detected
// categories are a verification concern and never consulted here. When
// requireVerified is set, a matching document must additionally carry
// verified status, otherwise the requirement counts as unsatisfied with
// reason "unverified" rather than "absent".
//
// Detail order follows checklist order, which keeps the output stable for
// clients and tests.
func Evaluate(entry *catalogmodels.CatalogEntry, docs []documentmodels.Document, requireVerified bool) Result {
	result := Result{
		Complete:        true,
		RequireVerified: requireVerified,
		Missing:         []string{},
		Details:         []Detail{},
	}

	byCategory := make(map[string][]documentmodels.Document, len(docs))
	for _, doc := range docs {
		byCategory[doc.DocCategoryDeclared] = append(byCategory[doc.DocCategoryDeclared], doc)
	}

	for _, req := range entry.Requirements {
		matched := byCategory[req.DocCategory]
		reason := ""
		switch {
		case len(matched) == 0:
			reason = ReasonAbsent
		case requireVerified && !anyVerified(matched):
			reason = ReasonUnverified
		}
		if reason == "" {
			continue
		}

		result.Details = append(result.Details, Detail{
			DocCategory: req.DocCategory,
			Required:    req.Required,
			Reason:      reason,
		})
		if req.Required {
			result.Missing = append(result.Missing, req.DocCategory)
			result.Complete = false
		}
	}
	return result
}

func anyVerified(docs []documentmodels.Document) bool {
	for _, doc := range docs {
		if doc.VerifiedStatus == documentmodels.VerifiedStatusVerified {
			return true
		}
	}
	return false
}
