package models

import (
	"time"

	"udyam/pkg/domain"
	dErrors "udyam/pkg/domain-errors"
)

// BaseRegistrationType is the bootstrap filing. Registration is exempt from
// verified-document gating: it is how a startup gets into the system in the
// first place. Every other (regulated) type requires verified documents.
const BaseRegistrationType = "startup_registration"

// Status is the application lifecycle state.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusDraft:       true,
	StatusSubmitted:   true,
	StatusUnderReview: true,
	StatusApproved:    true,
	StatusRejected:    true,
}

// ParseStatus constructs a Status from external input (list filters).
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", dErrors.New(dErrors.CodeValidation, "unsupported status: "+s)
	}
	return st, nil
}

// transitions is the forward-only lifecycle. There is no path out of a
// terminal state and no path back to draft.
var transitions = map[Status][]Status{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview},
	StatusUnderReview: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether the lifecycle permits moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ReviewEntry is one record in the append-only review history.
type ReviewEntry struct {
	Action  string        `json:"action"`
	By      domain.UserID `json:"by"`
	ByRole  domain.Role   `json:"by_role"`
	Comment string        `json:"comment,omitempty"`
	At      time.Time     `json:"at"`
}

// Application is the aggregate root of the submission workflow.
//
// Invariants:
//   - (Sector, ApplicationType) must have a catalog entry at submission time
//   - ReviewHistory is append-only; entries are never edited or removed
//   - Status moves forward only, through the transitions table
//   - Applications are never hard-deleted (audit requirement)
//
// Mutation happens only through the transition helpers below plus the
// store's status-guarded update; handlers and services never poke fields
// directly. The store update is keyed on the status the transition started
// from, so concurrent submitters cannot double-append history.
type Application struct {
	ID              domain.ApplicationID `json:"id"`
	StartupID       domain.StartupID     `json:"startup_id"`
	Sector          string               `json:"sector"`
	ApplicationType string               `json:"application_type"`
	ApplicationData map[string]any       `json:"application_data,omitempty"`
	Status          Status               `json:"status"`
	SubmittedAt     *time.Time           `json:"submitted_at,omitempty"`
	ReviewerComment string               `json:"reviewer_comment,omitempty"`
	ReviewHistory   []ReviewEntry        `json:"review_history"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// NewApplication creates a draft application.
func NewApplication(id domain.ApplicationID, startupID domain.StartupID, sector, applicationType string, data map[string]any, now time.Time) *Application {
	return &Application{
		ID:              id,
		StartupID:       startupID,
		Sector:          sector,
		ApplicationType: applicationType,
		ApplicationData: data,
		Status:          StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CanSubmit checks the submission transition is allowed from the current
// status. Call before ApplySubmission.
func (a *Application) CanSubmit() error {
	if !a.Status.CanTransitionTo(StatusSubmitted) {
		return dErrors.New(dErrors.CodeInvalidState,
			"application cannot be submitted from status "+string(a.Status))
	}
	return nil
}

// ApplySubmission transitions the application to submitted and appends the
// review history entry. Call CanSubmit first.
func (a *Application) ApplySubmission(actor domain.Actor, comment string, now time.Time) {
	a.Status = StatusSubmitted
	a.SubmittedAt = &now
	a.UpdatedAt = now
	a.appendHistory("submitted", actor, comment, now)
}

// CanApplyReview checks an administrative review transition is allowed from
// the current status.
func (a *Application) CanApplyReview(target Status) error {
	if !a.Status.CanTransitionTo(target) {
		return dErrors.New(dErrors.CodeInvalidState,
			"application cannot move from "+string(a.Status)+" to "+string(target))
	}
	return nil
}

// ApplyReview transitions the application to target and appends the review
// history entry. Approve/reject also record the reviewer comment on the
// application itself. Call CanApplyReview first.
func (a *Application) ApplyReview(target Status, action string, actor domain.Actor, comment string, now time.Time) {
	a.Status = target
	a.UpdatedAt = now
	if target == StatusApproved || target == StatusRejected {
		a.ReviewerComment = comment
	}
	a.appendHistory(action, actor, comment, now)
}

func (a *Application) appendHistory(action string, actor domain.Actor, comment string, now time.Time) {
	a.ReviewHistory = append(a.ReviewHistory, ReviewEntry{
		Action:  action,
		By:      actor.UserID,
		ByRole:  actor.Role,
		Comment: comment,
		At:      now,
	})
}

// RequiresVerifiedDocuments reports whether submission demands verified
// documents for this application's type.
func (a *Application) RequiresVerifiedDocuments() bool {
	return a.ApplicationType != BaseRegistrationType
}
