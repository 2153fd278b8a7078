package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"udyam/pkg/domain"
)

func TestCanSubmit(t *testing.T) {
	owner := domain.NewUserID()
	other := domain.NewUserID()

	t.Run("owner may submit", func(t *testing.T) {
		actor := domain.Actor{UserID: owner, Role: domain.RoleApplicant}
		assert.True(t, CanSubmit(actor, owner))
	})

	t.Run("admin may submit for anyone", func(t *testing.T) {
		actor := domain.Actor{UserID: other, Role: domain.RoleAdmin}
		assert.True(t, CanSubmit(actor, owner))
	})

	t.Run("non-owner applicant is denied", func(t *testing.T) {
		actor := domain.Actor{UserID: other, Role: domain.RoleApplicant}
		assert.False(t, CanSubmit(actor, owner))
	})

	t.Run("verified official is still denied", func(t *testing.T) {
		actor := domain.Actor{UserID: other, Role: domain.RoleGovOfficial, RoleVerified: true}
		assert.False(t, CanSubmit(actor, owner))
	})

	t.Run("zero actor never matches a zero owner", func(t *testing.T) {
		assert.False(t, CanSubmit(domain.Actor{}, domain.UserID{}))
	})
}

func TestCanListForOfficials(t *testing.T) {
	cases := []struct {
		name     string
		role     domain.Role
		verified bool
		want     bool
	}{
		{"admin always allowed", domain.RoleAdmin, false, true},
		{"verified official allowed", domain.RoleGovOfficial, true, true},
		{"unverified official denied", domain.RoleGovOfficial, false, false},
		{"applicant denied", domain.RoleApplicant, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actor := domain.Actor{UserID: domain.NewUserID(), Role: tc.role, RoleVerified: tc.verified}
			assert.Equal(t, tc.want, CanListForOfficials(actor))
		})
	}
}

func TestCanView(t *testing.T) {
	owner := domain.NewUserID()

	t.Run("owner may view", func(t *testing.T) {
		actor := domain.Actor{UserID: owner, Role: domain.RoleApplicant}
		assert.True(t, CanView(actor, owner))
	})

	t.Run("verified official may view", func(t *testing.T) {
		actor := domain.Actor{UserID: domain.NewUserID(), Role: domain.RoleGovOfficial, RoleVerified: true}
		assert.True(t, CanView(actor, owner))
	})

	t.Run("unrelated applicant denied", func(t *testing.T) {
		actor := domain.Actor{UserID: domain.NewUserID(), Role: domain.RoleApplicant}
		assert.False(t, CanView(actor, owner))
	})
}
