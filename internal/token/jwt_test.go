package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udyam/pkg/domain"
	dErrors "udyam/pkg/domain-errors"
)

func newTestService() *Service {
	return NewService("test-signing-key", "udyam", "udyam-portal")
}

func TestRoundTrip(t *testing.T) {
	svc := newTestService()
	actor := domain.Actor{
		UserID:       domain.NewUserID(),
		Role:         domain.RoleGovOfficial,
		RoleVerified: true,
	}

	tokenString, err := svc.GenerateAccessToken(actor, time.Minute)
	require.NoError(t, err)

	parsed, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, parsed.UserID)
	assert.Equal(t, domain.RoleGovOfficial, parsed.Role)
	assert.True(t, parsed.RoleVerified)
}

func TestExpiredToken(t *testing.T) {
	svc := newTestService()
	actor := domain.Actor{UserID: domain.NewUserID(), Role: domain.RoleApplicant}

	tokenString, err := svc.GenerateAccessToken(actor, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestWrongKey(t *testing.T) {
	actor := domain.Actor{UserID: domain.NewUserID(), Role: domain.RoleApplicant}
	tokenString, err := newTestService().GenerateAccessToken(actor, time.Minute)
	require.NoError(t, err)

	other := NewService("different-key", "udyam", "udyam-portal")
	_, err = other.ValidateToken(tokenString)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func TestGarbageToken(t *testing.T) {
	_, err := newTestService().ValidateToken("not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}
