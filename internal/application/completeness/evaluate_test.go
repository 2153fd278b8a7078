package completeness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodels "udyam/internal/catalog/models"
	documentmodels "udyam/internal/document/models"
	"udyam/pkg/domain"
)

func checklist() *catalogmodels.CatalogEntry {
	return &catalogmodels.CatalogEntry{
		Sector:          "ayurveda",
		ApplicationType: "clinic",
		Requirements: []catalogmodels.Requirement{
			{DocCategory: "license_copy", Required: true},
			{DocCategory: "premises_proof", Required: true},
			{DocCategory: "pitch_deck", Required: false},
		},
	}
}

func doc(category string, status documentmodels.VerifiedStatus) documentmodels.Document {
	return documentmodels.Document{
		ID:                  domain.NewDocumentID(),
		DocCategoryDeclared: category,
		VerifiedStatus:      status,
	}
}

func TestEvaluate_AllPresentUnverified(t *testing.T) {
	docs := []documentmodels.Document{
		doc("license_copy", documentmodels.VerifiedStatusUnverified),
		doc("premises_proof", documentmodels.VerifiedStatusUnverified),
	}

	t.Run("complete when verification not required", func(t *testing.T) {
		result := Evaluate(checklist(), docs, false)
		assert.True(t, result.Complete)
		assert.Empty(t, result.Missing)
	})

	t.Run("incomplete when verification required", func(t *testing.T) {
		result := Evaluate(checklist(), docs, true)
		assert.False(t, result.Complete)
		assert.Equal(t, []string{"license_copy", "premises_proof"}, result.Missing)
		for _, d := range result.Details {
			assert.Equal(t, ReasonUnverified, d.Reason)
		}
	})
}

func TestEvaluate_DistinguishesAbsentFromUnverified(t *testing.T) {
	docs := []documentmodels.Document{
		doc("license_copy", documentmodels.VerifiedStatusUnverified),
	}
	result := Evaluate(checklist(), docs, true)

	require.Len(t, result.Details, 2)
	assert.Equal(t, "license_copy", result.Details[0].DocCategory)
	assert.Equal(t, ReasonUnverified, result.Details[0].Reason)
	assert.Equal(t, "premises_proof", result.Details[1].DocCategory)
	assert.Equal(t, ReasonAbsent, result.Details[1].Reason)
}

func TestEvaluate_RejectedDocumentDoesNotSatisfyVerifiedRequirement(t *testing.T) {
	docs := []documentmodels.Document{
		doc("license_copy", documentmodels.VerifiedStatusRejected),
		doc("premises_proof", documentmodels.VerifiedStatusVerified),
	}
	result := Evaluate(checklist(), docs, true)

	assert.False(t, result.Complete)
	assert.Equal(t, []string{"license_copy"}, result.Missing)
}

func TestEvaluate_AnyStatusSatisfiesWhenVerificationNotRequired(t *testing.T) {
	docs := []documentmodels.Document{
		doc("license_copy", documentmodels.VerifiedStatusRejected),
		doc("premises_proof", documentmodels.VerifiedStatusUnverified),
	}
	result := Evaluate(checklist(), docs, false)

	assert.True(t, result.Complete)
	assert.Empty(t, result.Missing)
}

func TestEvaluate_OptionalRequirementsNeverBlock(t *testing.T) {
	docs := []documentmodels.Document{
		doc("license_copy", documentmodels.VerifiedStatusVerified),
		doc("premises_proof", documentmodels.VerifiedStatusVerified),
	}
	result := Evaluate(checklist(), docs, true)

	assert.True(t, result.Complete)
	assert.Empty(t, result.Missing)
	// The absent optional pitch_deck still shows up in details.
	require.Len(t, result.Details, 1)
	assert.Equal(t, "pitch_deck", result.Details[0].DocCategory)
	assert.False(t, result.Details[0].Required)
	assert.Equal(t, ReasonAbsent, result.Details[0].Reason)
}

func TestEvaluate_MatchesDeclaredCategoryNotDetected(t *testing.T) {
	mismatched := doc("license_copy", documentmodels.VerifiedStatusVerified)
	mismatched.DocCategoryDetected = "premises_proof"

	result := Evaluate(checklist(), []documentmodels.Document{mismatched}, true)

	// Declared license_copy satisfies license_copy; the detected category
	// does not satisfy premises_proof.
	assert.Contains(t, result.Missing, "premises_proof")
	assert.NotContains(t, result.Missing, "license_copy")
}

func TestEvaluate_IsPure(t *testing.T) {
	docs := []documentmodels.Document{
		doc("license_copy", documentmodels.VerifiedStatusUnverified),
	}
	entry := checklist()

	first := Evaluate(entry, docs, true)
	second := Evaluate(entry, docs, true)
	assert.Equal(t, first, second)
}

func TestEvaluate_EmptyChecklistIsComplete(t *testing.T) {
	entry := &catalogmodels.CatalogEntry{Sector: "yoga", ApplicationType: "clinic"}
	result := Evaluate(entry, nil, true)
	assert.True(t, result.Complete)
	assert.Empty(t, result.Missing)
	assert.Empty(t, result.Details)
}
