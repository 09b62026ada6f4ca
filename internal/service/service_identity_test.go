package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pds/internal/adapter"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/mock"
	"github.com/MKhiriev/go-pds/internal/store"
	"github.com/MKhiriev/go-pds/models"
)

func newTestIdentitySvc(t *testing.T, ctrl *gomock.Controller, env map[string]string) (*identityService, *mock.MockAccountRepository, *mock.MockPLCClient) {
	t.Helper()

	cfg := newTestConfig(t, env)
	accounts := mock.NewMockAccountRepository(ctrl)
	plc := mock.NewMockPLCClient(ctrl)

	svc := NewIdentityService(accounts, plc, NewURLBuilder(cfg), cfg, logger.Nop()).(*identityService)
	return svc, accounts, plc
}

// ── ResolveHandle ────────────────────────────────────────────────────────────

func TestIdentityService_ResolveHandle_FromAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, _ := newTestIdentitySvc(t, ctrl, nil)
	ctx := context.Background()

	accounts.EXPECT().FindAccountByHandle(ctx, "alice.pds.example.com").
		Return(models.Account{DID: "did:plc:alice", Handle: "alice.pds.example.com"}, nil)

	did, err := svc.ResolveHandle(ctx, "  Alice.PDS.example.com ")
	require.NoError(t, err)
	assert.Equal(t, "did:plc:alice", did)
}

func TestIdentityService_ResolveHandle_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, _ := newTestIdentitySvc(t, ctrl, nil)
	ctx := context.Background()

	accounts.EXPECT().FindAccountByHandle(ctx, "bob.pds.example.com").Return(models.Account{}, store.ErrAccountNotFound)

	_, err := svc.ResolveHandle(ctx, "bob.pds.example.com")
	assert.ErrorIs(t, err, ErrHandleNotFound)
}

func TestIdentityService_ResolveHandle_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestIdentitySvc(t, ctrl, nil)

	_, err := svc.ResolveHandle(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestIdentityService_TestRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestIdentitySvc(t, ctrl, map[string]string{"DEBUG_MODE": "1"})
	ctx := context.Background()

	require.NoError(t, svc.RegisterTestHandle("Carol.test", "did:plc:carol"))

	// resolved without touching the accounts table
	did, err := svc.ResolveHandle(ctx, "carol.test")
	require.NoError(t, err)
	assert.Equal(t, "did:plc:carol", did)
}

func TestIdentityService_RegisterTestHandle_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestIdentitySvc(t, ctrl, nil)

	assert.ErrorIs(t, svc.RegisterTestHandle("carol.test", "did:plc:carol"), ErrTestRegistryDisabled)
}

// ── AssignDID ────────────────────────────────────────────────────────────────

func TestIdentityService_AssignDID_NewIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestIdentitySvc(t, ctrl, nil)
	ctx := context.Background()

	first, err := svc.AssignDID(ctx, "", "alice.pds.example.com")
	require.NoError(t, err)
	second, err := svc.AssignDID(ctx, "", "alice.pds.example.com")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "did:plc:"))
	assert.Len(t, strings.TrimPrefix(first, "did:plc:"), plcIdentifierLength)
	assert.NotEqual(t, first, second, "every genesis carries a fresh nonce")
}

func TestIdentityService_AssignDID_Supplied(t *testing.T) {
	const did = "did:plc:ewvi7nxzyoun6zhxrhs64oiz"

	tests := []struct {
		name    string
		doc     models.DIDDocument
		err     error
		wantErr error
	}{
		{
			name: "document points here",
			doc: models.DIDDocument{ID: did, Service: []models.DIDService{
				{ID: "#atproto_pds", Type: pdsServiceType, ServiceEndpoint: "https://pds.example.com"},
			}},
		},
		{
			name: "document points elsewhere",
			doc: models.DIDDocument{ID: did, Service: []models.DIDService{
				{ID: "#atproto_pds", Type: pdsServiceType, ServiceEndpoint: "https://other.example.com"},
			}},
			wantErr: ErrIncompatibleDIDDoc,
		},
		{
			name:    "document without pds",
			doc:     models.DIDDocument{ID: did},
			wantErr: ErrIncompatibleDIDDoc,
		},
		{
			name:    "unknown did",
			err:     adapter.ErrDIDNotFound,
			wantErr: ErrInvalidDID,
		},
		{
			name:    "malformed did",
			err:     adapter.ErrInvalidDID,
			wantErr: ErrInvalidDID,
		},
		{
			name:    "directory unavailable",
			err:     errors.New("connection refused"),
			wantErr: ErrDIDResolutionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _, plc := newTestIdentitySvc(t, ctrl, nil)
			ctx := context.Background()

			plc.EXPECT().ResolveDID(ctx, did).Return(tt.doc, tt.err)

			got, err := svc.AssignDID(ctx, did, "alice.pds.example.com")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, did, got)
		})
	}
}

// ── RecommendedDIDCredentials ────────────────────────────────────────────────

func TestIdentityService_RecommendedDIDCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, _ := newTestIdentitySvc(t, ctrl, nil)
	ctx := context.Background()

	accounts.EXPECT().FindAccountByDID(ctx, "did:plc:alice").
		Return(models.Account{DID: "did:plc:alice", Handle: "alice.pds.example.com"}, nil)

	creds, err := svc.RecommendedDIDCredentials(ctx, "did:plc:alice")
	require.NoError(t, err)
	assert.Equal(t, []string{testRecoveryKey}, creds.RotationKeys)
	assert.Equal(t, []string{"at://alice.pds.example.com"}, creds.AlsoKnownAs)
	assert.Equal(t, models.DIDService{Type: pdsServiceType, ServiceEndpoint: "https://pds.example.com"}, creds.Services[pdsServiceID])
}

func TestIdentityService_RecommendedDIDCredentials_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, _ := newTestIdentitySvc(t, ctrl, nil)
	ctx := context.Background()

	accounts.EXPECT().FindAccountByDID(ctx, "did:plc:ghost").Return(models.Account{}, store.ErrAccountNotFound)

	_, err := svc.RecommendedDIDCredentials(ctx, "did:plc:ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
