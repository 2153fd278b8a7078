package models

import (
	"time"

	"udyam/pkg/domain"
	dErrors "udyam/pkg/domain-errors"
)

// VerifiedStatus is the tri-state outcome of a document review.
type VerifiedStatus string

const (
	VerifiedStatusUnverified VerifiedStatus = "unverified"
	VerifiedStatusVerified   VerifiedStatus = "verified"
	VerifiedStatusRejected   VerifiedStatus = "rejected"
)

var validVerifiedStatuses = map[VerifiedStatus]bool{
	VerifiedStatusUnverified: true,
	VerifiedStatusVerified:   true,
	VerifiedStatusRejected:   true,
}

// ParseVerifiedStatus constructs a VerifiedStatus from external input.
func ParseVerifiedStatus(s string) (VerifiedStatus, error) {
	v := VerifiedStatus(s)
	if !validVerifiedStatuses[v] {
		return "", dErrors.New(dErrors.CodeValidation, "unsupported verified_status: "+s)
	}
	return v, nil
}

// Document is an uploaded file linked to an application. Upload and
// verification happen in external flows; this service reads documents for
// completeness evaluation and review projections.
//
// DocCategoryDeclared is what the uploader claimed; DocCategoryDetected is
// what external detection concluded and may differ. Completeness evaluation
// matches on the declared category only — reconciling a disagreeing
// detected category is a verification concern, surfaced to reviewers in
// listing projections.
type Document struct {
	ID                  domain.DocumentID    `json:"id"`
	ApplicationID       domain.ApplicationID `json:"application_id"`
	StartupID           domain.StartupID     `json:"startup_id"`
	DocCategoryDeclared string               `json:"doc_category_declared"`
	DocCategoryDetected string               `json:"doc_category_detected,omitempty"`
	VerifiedStatus      VerifiedStatus       `json:"verified_status"`
	FileName            string               `json:"file_name"`
	FileURL             string               `json:"file_url"`
	PageCount           int                  `json:"page_count"`
	CreatedAt           time.Time            `json:"created_at"`
}
