package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/mock"
	"github.com/MKhiriev/go-pds/internal/store"
	"github.com/MKhiriev/go-pds/models"
)

type accountSvcMocks struct {
	accounts *mock.MockAccountRepository
	auth     *mock.MockAuthService
	identity *mock.MockIdentityService
	mail     *mock.MockMailService
}

// newTestAccountSvc builds an accountService whose collaborators are all mocks
func newTestAccountSvc(t *testing.T, ctrl *gomock.Controller, env map[string]string) (*accountService, accountSvcMocks) {
	t.Helper()

	m := accountSvcMocks{
		accounts: mock.NewMockAccountRepository(ctrl),
		auth:     mock.NewMockAuthService(ctrl),
		identity: mock.NewMockIdentityService(ctrl),
		mail:     mock.NewMockMailService(ctrl),
	}
	cfg := newTestConfig(t, env)

	svc := NewAccountService(m.accounts, m.auth, m.identity, m.mail, NewURLBuilder(cfg), cfg, logger.Nop()).(*accountService)
	svc.now = func() time.Time { return fixedNow }

	return svc, m
}

func accessToken(did string) models.Token {
	return models.Token{SignedString: "signed-" + did, DID: did, Scope: models.ScopeAccess}
}

// ── CreateAccount ────────────────────────────────────────────────────────────

func TestAccountService_CreateAccount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestAccountSvc(t, ctrl, nil)
	ctx := context.Background()

	gomock.InOrder(
		m.identity.EXPECT().AssignDID(ctx, "", "alice.pds.example.com").Return("did:plc:alice", nil),
		m.auth.EXPECT().HashPassword("hunter22").Return("$2a$hash", nil),
		m.accounts.EXPECT().CreateAccount(ctx, models.Account{
			DID:          "did:plc:alice",
			Handle:       "alice.pds.example.com",
			Email:        "alice@example.org",
			PasswordHash: "$2a$hash",
			CreatedAt:    fixedNow,
		}, "").Return(nil),
		m.auth.EXPECT().CreateAccessToken(ctx, "did:plc:alice").Return(accessToken("did:plc:alice"), nil),
	)

	session, err := svc.CreateAccount(ctx, models.CreateAccountRequest{
		Handle:     "Alice.pds.example.com",
		Email:      "alice@example.org",
		Password:   "hunter22",
		InviteCode: "ignored-when-not-required",
	})
	require.NoError(t, err)
	assert.Equal(t, models.Session{
		AccessJwt: "signed-did:plc:alice",
		DID:       "did:plc:alice",
		Handle:    "alice.pds.example.com",
		Email:     "alice@example.org",
	}, session)
}

func TestAccountService_CreateAccount_InviteRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestAccountSvc(t, ctrl, map[string]string{"INVITE_REQUIRED": "true"})
	ctx := context.Background()
	req := models.CreateAccountRequest{Handle: "alice.pds.example.com", Email: "alice@example.org", Password: "hunter22"}

	_, err := svc.CreateAccount(ctx, req)
	assert.ErrorIs(t, err, ErrInviteCodeRequired)

	req.InviteCode = "pds-example-com-aaaaa-bbbbb"
	m.identity.EXPECT().AssignDID(ctx, "", req.Handle).Return("did:plc:alice", nil)
	m.auth.EXPECT().HashPassword(req.Password).Return("hash", nil)
	m.accounts.EXPECT().CreateAccount(ctx, gomock.Any(), req.InviteCode).Return(store.ErrInviteCodeUnavailable)

	_, err = svc.CreateAccount(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestAccountService_CreateAccount_DebugRegistersHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestAccountSvc(t, ctrl, map[string]string{"DEBUG_MODE": "1"})
	ctx := context.Background()

	m.identity.EXPECT().AssignDID(ctx, "", "bob.test").Return("did:plc:bob", nil)
	m.auth.EXPECT().HashPassword("hunter22").Return("hash", nil)
	m.accounts.EXPECT().CreateAccount(ctx, gomock.Any(), "").Return(nil)
	m.identity.EXPECT().RegisterTestHandle("bob.test", "did:plc:bob").Return(nil)
	m.auth.EXPECT().CreateAccessToken(ctx, "did:plc:bob").Return(accessToken("did:plc:bob"), nil)

	session, err := svc.CreateAccount(ctx, models.CreateAccountRequest{Handle: "bob.test", Email: "bob@example.org", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "did:plc:bob", session.DID)
}

func TestAccountService_CreateAccount_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateAccountRequest
		wantErr error
	}{
		{
			name:    "malformed handle",
			req:     models.CreateAccountRequest{Handle: "-alice-", Email: "alice@example.org", Password: "pw"},
			wantErr: ErrInvalidHandle,
		},
		{
			name:    "foreign domain",
			req:     models.CreateAccountRequest{Handle: "alice.bsky.social", Email: "alice@example.org", Password: "pw"},
			wantErr: ErrUnsupportedDomain,
		},
		{
			name:    "test domain outside debug mode",
			req:     models.CreateAccountRequest{Handle: "alice.test", Email: "alice@example.org", Password: "pw"},
			wantErr: ErrUnsupportedDomain,
		},
		{
			name:    "bad email",
			req:     models.CreateAccountRequest{Handle: "alice.pds.example.com", Email: "not-an-email", Password: "pw"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "empty password",
			req:     models.CreateAccountRequest{Handle: "alice.pds.example.com", Email: "alice@example.org"},
			wantErr: ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _ := newTestAccountSvc(t, ctrl, nil)

			_, err := svc.CreateAccount(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccountService_CreateAccount_Errors(t *testing.T) {
	dbErr := errors.New("db is down")

	tests := []struct {
		name     string
		assignEr error
		storeErr error
		wantErr  error
	}{
		{name: "did assignment fails", assignEr: ErrIncompatibleDIDDoc, wantErr: ErrIncompatibleDIDDoc},
		{name: "duplicate", storeErr: store.ErrAccountAlreadyExists, wantErr: ErrAccountAlreadyExists},
		{name: "store failure", storeErr: dbErr, wantErr: dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newTestAccountSvc(t, ctrl, nil)
			ctx := context.Background()
			req := models.CreateAccountRequest{Handle: "alice.pds.example.com", Email: "alice@example.org", Password: "pw", DID: "did:plc:alice"}

			if tt.assignEr != nil {
				m.identity.EXPECT().AssignDID(ctx, "did:plc:alice", req.Handle).Return("", tt.assignEr)
			} else {
				m.identity.EXPECT().AssignDID(ctx, "did:plc:alice", req.Handle).Return("did:plc:alice", nil)
				m.auth.EXPECT().HashPassword("pw").Return("hash", nil)
				m.accounts.EXPECT().CreateAccount(ctx, gomock.Any(), "").Return(tt.storeErr)
			}

			_, err := svc.CreateAccount(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── CreateSession ────────────────────────────────────────────────────────────

func TestAccountService_CreateSession(t *testing.T) {
	account := models.Account{DID: "did:plc:alice", Handle: "alice.pds.example.com", Email: "alice@example.org", PasswordHash: "hash"}

	t.Run("by handle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTestAccountSvc(t, ctrl, nil)
		ctx := context.Background()

		m.accounts.EXPECT().FindAccountByHandle(ctx, "alice.pds.example.com").Return(account, nil)
		m.auth.EXPECT().VerifyPassword("hash", "hunter22").Return(nil)
		m.auth.EXPECT().CreateAccessToken(ctx, account.DID).Return(accessToken(account.DID), nil)

		session, err := svc.CreateSession(ctx, models.CreateSessionRequest{Identifier: "Alice.PDS.example.com", Password: "hunter22"})
		require.NoError(t, err)
		assert.Equal(t, "signed-did:plc:alice", session.AccessJwt)
	})

	t.Run("by email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTestAccountSvc(t, ctrl, nil)
		ctx := context.Background()

		m.accounts.EXPECT().FindAccountByEmail(ctx, "alice@example.org").Return(account, nil)
		m.auth.EXPECT().VerifyPassword("hash", "hunter22").Return(nil)
		m.auth.EXPECT().CreateAccessToken(ctx, account.DID).Return(accessToken(account.DID), nil)

		_, err := svc.CreateSession(ctx, models.CreateSessionRequest{Identifier: "alice@example.org", Password: "hunter22"})
		require.NoError(t, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTestAccountSvc(t, ctrl, nil)
		ctx := context.Background()

		m.accounts.EXPECT().FindAccountByHandle(ctx, "ghost.pds.example.com").Return(models.Account{}, store.ErrAccountNotFound)

		_, err := svc.CreateSession(ctx, models.CreateSessionRequest{Identifier: "ghost.pds.example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTestAccountSvc(t, ctrl, nil)
		ctx := context.Background()

		m.accounts.EXPECT().FindAccountByHandle(ctx, account.Handle).Return(account, nil)
		m.auth.EXPECT().VerifyPassword("hash", "wrong").Return(ErrInvalidCredentials)

		_, err := svc.CreateSession(ctx, models.CreateSessionRequest{Identifier: account.Handle, Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newTestAccountSvc(t, ctrl, nil)

		_, err := svc.CreateSession(context.Background(), models.CreateSessionRequest{Identifier: " "})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})
}

// ── GetSession ───────────────────────────────────────────────────────────────

func TestAccountService_GetSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestAccountSvc(t, ctrl, nil)
	ctx := context.Background()

	m.accounts.EXPECT().FindAccountByDID(ctx, "did:plc:alice").
		Return(models.Account{DID: "did:plc:alice", Handle: "alice.pds.example.com", Email: "alice@example.org"}, nil)
	m.accounts.EXPECT().FindAccountByDID(ctx, "did:plc:ghost").Return(models.Account{}, store.ErrAccountNotFound)

	session, err := svc.GetSession(ctx, "did:plc:alice")
	require.NoError(t, err)
	assert.Empty(t, session.AccessJwt)
	assert.Equal(t, "alice.pds.example.com", session.Handle)

	_, err = svc.GetSession(ctx, "did:plc:ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

// ── Password reset ───────────────────────────────────────────────────────────

func TestAccountService_RequestPasswordReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestAccountSvc(t, ctrl, map[string]string{"APP_URL_PASSWORD_RESET": "https://app.example.com/reset"})
	ctx := context.Background()
	account := models.Account{DID: "did:plc:alice", Handle: "alice.pds.example.com", Email: "alice@example.org"}

	gomock.InOrder(
		m.accounts.EXPECT().FindAccountByEmail(ctx, "alice@example.org").Return(account, nil),
		m.auth.EXPECT().CreatePasswordResetToken(ctx, account.DID).
			Return(models.Token{SignedString: "reset-token", DID: account.DID, Scope: models.ScopePasswordReset}, nil),
		m.mail.EXPECT().SendPasswordReset(ctx, account.Email, account.Handle, "https://app.example.com/reset?token=reset-token").Return(nil),
	)

	require.NoError(t, svc.RequestPasswordReset(ctx, " Alice@Example.org "))
}

func TestAccountService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestAccountSvc(t, ctrl, nil)
	ctx := context.Background()

	m.accounts.EXPECT().FindAccountByEmail(ctx, "nobody@example.org").Return(models.Account{}, store.ErrAccountNotFound)

	assert.NoError(t, svc.RequestPasswordReset(ctx, "nobody@example.org"))
	assert.ErrorIs(t, svc.RequestPasswordReset(ctx, "not-an-email"), ErrInvalidEmail)
}

func TestAccountService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestAccountSvc(t, ctrl, nil)
	ctx := context.Background()

	gomock.InOrder(
		m.auth.EXPECT().ParsePasswordResetToken(ctx, "reset-token").Return(models.Token{DID: "did:plc:alice"}, nil),
		m.auth.EXPECT().HashPassword("new-password").Return("new-hash", nil),
		m.accounts.EXPECT().UpdatePasswordHash(ctx, "did:plc:alice", "new-hash").Return(nil),
	)

	require.NoError(t, svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: "reset-token", Password: "new-password"}))
}

func TestAccountService_ResetPassword_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestAccountSvc(t, ctrl, nil)
	ctx := context.Background()

	m.auth.EXPECT().ParsePasswordResetToken(ctx, "expired").Return(models.Token{}, ErrTokenIsExpiredOrInvalid)
	err := svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: "expired", Password: "pw"})
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	m.auth.EXPECT().ParsePasswordResetToken(ctx, "orphan").Return(models.Token{DID: "did:plc:gone"}, nil)
	m.auth.EXPECT().HashPassword("pw").Return("hash", nil)
	m.accounts.EXPECT().UpdatePasswordHash(ctx, "did:plc:gone", "hash").Return(store.ErrAccountNotFound)
	err = svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: "orphan", Password: "pw"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
