package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/models"
)

func newTestAuthService(t *testing.T, env map[string]string) *authService {
	t.Helper()

	svc, err := NewAuthService(newTestConfig(t, env), logger.Nop())
	require.NoError(t, err)

	auth := svc.(*authService)
	auth.bcryptCost = bcrypt.MinCost
	return auth
}

func TestAuthService_HashAndVerifyPassword(t *testing.T) {
	auth := newTestAuthService(t, nil)

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, auth.VerifyPassword(hash, "correct horse"))
	assert.ErrorIs(t, auth.VerifyPassword(hash, "wrong horse"), ErrInvalidCredentials)
	assert.ErrorIs(t, auth.VerifyPassword("not-a-bcrypt-hash", "correct horse"), ErrInvalidCredentials)
}

func TestAuthService_HashPassword_Invalid(t *testing.T) {
	auth := newTestAuthService(t, nil)

	_, err := auth.HashPassword("")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = auth.HashPassword(strings.Repeat("a", maxPasswordLength+1))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthService_AccessToken(t *testing.T) {
	auth := newTestAuthService(t, nil)
	ctx := context.Background()

	token, err := auth.CreateAccessToken(ctx, "did:plc:alice")
	require.NoError(t, err)

	parsed, err := auth.ParseAccessToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, "did:plc:alice", parsed.DID)
	assert.Equal(t, models.ScopeAccess, parsed.Scope)
}

// TestAuthService_TokensAreNotInterchangeable verifies that a reset token is
// never accepted as an access token and vice versa.
func TestAuthService_TokensAreNotInterchangeable(t *testing.T) {
	auth := newTestAuthService(t, nil)
	ctx := context.Background()

	access, err := auth.CreateAccessToken(ctx, "did:plc:alice")
	require.NoError(t, err)
	reset, err := auth.CreatePasswordResetToken(ctx, "did:plc:alice")
	require.NoError(t, err)

	_, err = auth.ParseAccessToken(ctx, reset.String())
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	_, err = auth.ParsePasswordResetToken(ctx, access.String())
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	parsed, err := auth.ParsePasswordResetToken(ctx, reset.String())
	require.NoError(t, err)
	assert.Equal(t, models.ScopePasswordReset, parsed.Scope)
}

func TestAuthService_TokenFromOtherServerIsRejected(t *testing.T) {
	ctx := context.Background()
	ours := newTestAuthService(t, nil)

	otherSecret := newTestAuthService(t, map[string]string{"JWT_SECRET": "another-secret"})
	token, err := otherSecret.CreateAccessToken(ctx, "did:plc:alice")
	require.NoError(t, err)
	_, err = ours.ParseAccessToken(ctx, token.String())
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	otherIssuer := newTestAuthService(t, map[string]string{"HOSTNAME": "other.example.com"})
	token, err = otherIssuer.CreateAccessToken(ctx, "did:plc:alice")
	require.NoError(t, err)
	_, err = ours.ParseAccessToken(ctx, token.String())
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseAccessToken_Garbage(t *testing.T) {
	auth := newTestAuthService(t, nil)

	_, err := auth.ParseAccessToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_CreateAccessToken_EmptyDID(t *testing.T) {
	auth := newTestAuthService(t, nil)

	_, err := auth.CreateAccessToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_CheckAdminPassword(t *testing.T) {
	auth := newTestAuthService(t, map[string]string{"ADMIN_PASSWORD": "hunter2"})

	assert.True(t, auth.CheckAdminPassword("hunter2"))
	assert.False(t, auth.CheckAdminPassword("hunter3"))
	assert.False(t, auth.CheckAdminPassword(""))
}
