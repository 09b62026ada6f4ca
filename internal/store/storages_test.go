package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/migrations"
	"github.com/MKhiriev/go-pds/models"
)

func newTestStorages(t *testing.T, environment map[string]string) *Storages {
	t.Helper()

	environment["RECOVERY_KEY"] = "did:key:recovery"
	cfg, err := config.ReadEnv(environment, nil)
	require.NoError(t, err)

	s, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewStorages_InMemory(t *testing.T) {
	s := newTestStorages(t, map[string]string{})

	assert.Equal(t, migrations.DialectSQLite, s.DB.Dialect())
	assert.IsType(t, &memoryBlockStore{}, s.BlockStore)
}

func TestNewStorages_OnDisk(t *testing.T) {
	dir := t.TempDir()
	s := newTestStorages(t, map[string]string{
		"DATABASE_LOC":   filepath.Join(dir, "db", "pds.sqlite"),
		"BLOCKSTORE_LOC": filepath.Join(dir, "blocks"),
	})

	assert.FileExists(t, filepath.Join(dir, "db", "pds.sqlite"))
	assert.DirExists(t, filepath.Join(dir, "blocks"))
	assert.IsType(t, &fileBlockStore{}, s.BlockStore)
}

// TestNewStorages_MemoryDatabasesAreIsolated verifies that two servers in
// the same process never share an in-memory database.
func TestNewStorages_MemoryDatabasesAreIsolated(t *testing.T) {
	first := newTestStorages(t, map[string]string{})
	second := newTestStorages(t, map[string]string{})
	ctx := context.Background()

	require.NoError(t, first.AccountRepository.CreateAccount(ctx, testAccount(), ""))

	_, err := second.AccountRepository.FindAccountByDID(ctx, testAccount().DID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSQLite_AccountLifecycle(t *testing.T) {
	s := newTestStorages(t, map[string]string{})
	ctx := context.Background()
	account := testAccount()

	require.NoError(t, s.AccountRepository.CreateAccount(ctx, account, ""))

	byHandle, err := s.AccountRepository.FindAccountByHandle(ctx, account.Handle)
	require.NoError(t, err)
	assert.Equal(t, account.DID, byHandle.DID)
	assert.True(t, account.CreatedAt.Equal(byHandle.CreatedAt))

	byEmail, err := s.AccountRepository.FindAccountByEmail(ctx, account.Email)
	require.NoError(t, err)
	assert.Equal(t, account.Handle, byEmail.Handle)

	duplicate := account
	duplicate.DID = "did:plc:other"
	duplicate.Email = "other@example.com"
	err = s.AccountRepository.CreateAccount(ctx, duplicate, "")
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)

	require.NoError(t, s.AccountRepository.UpdatePasswordHash(ctx, account.DID, "rotated"))
	updated, err := s.AccountRepository.FindAccountByDID(ctx, account.DID)
	require.NoError(t, err)
	assert.Equal(t, "rotated", updated.PasswordHash)
}

func TestSQLite_InviteCodeIsConsumed(t *testing.T) {
	s := newTestStorages(t, map[string]string{})
	ctx := context.Background()

	require.NoError(t, s.InviteRepository.CreateInviteCode(ctx, models.InviteCode{
		Code:          "single-use",
		AvailableUses: 1,
		ForAccount:    "admin",
		CreatedBy:     "admin",
		CreatedAt:     time.Now().UTC(),
	}))

	first := testAccount()
	require.NoError(t, s.AccountRepository.CreateAccount(ctx, first, "single-use"))

	second := models.Account{DID: "did:plc:bob", Handle: "bob.test", Email: "bob@example.com", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	err := s.AccountRepository.CreateAccount(ctx, second, "single-use")
	require.ErrorIs(t, err, ErrInviteCodeUnavailable)

	// the failed transaction must not leave the account behind
	_, err = s.AccountRepository.FindAccountByDID(ctx, second.DID)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	code, err := s.InviteRepository.FindInviteCode(ctx, "single-use")
	require.NoError(t, err)
	assert.Equal(t, 0, code.AvailableUses)
	assert.False(t, code.Usable())
}

func TestSQLite_DisableInviteCodes(t *testing.T) {
	s := newTestStorages(t, map[string]string{})
	ctx := context.Background()

	require.NoError(t, s.InviteRepository.CreateInviteCode(ctx, models.InviteCode{Code: "multi", AvailableUses: 5, CreatedAt: time.Now().UTC()}))
	require.ErrorIs(t, s.InviteRepository.CreateInviteCode(ctx, models.InviteCode{Code: "multi", AvailableUses: 1, CreatedAt: time.Now().UTC()}), ErrInviteCodeAlreadyExists)

	require.NoError(t, s.InviteRepository.DisableInviteCodes(ctx, []string{"multi", "unknown"}))

	code, err := s.InviteRepository.FindInviteCode(ctx, "multi")
	require.NoError(t, err)
	assert.True(t, code.Disabled)

	err = s.AccountRepository.CreateAccount(ctx, testAccount(), "multi")
	assert.ErrorIs(t, err, ErrInviteCodeUnavailable)
}

func TestStorages_CloseNil(t *testing.T) {
	var s *Storages
	assert.NoError(t, s.Close())
}
