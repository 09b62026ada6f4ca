package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{
		DB:                 conn,
		dialect:            "postgres",
		placeholder:        sq.Dollar,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func newTestAccountRepo(t *testing.T) (AccountRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return NewAccountRepository(db, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testAccount() models.Account {
	return models.Account{
		DID:          "did:plc:alice",
		Handle:       "alice.test",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAccountRepository_CreateAccount(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	account := testAccount()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(account.DID, account.Handle, account.Email, account.PasswordHash, account.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateAccount(context.Background(), account, "")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateAccount_WithInviteCode(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	account := testAccount()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invite_codes SET available_uses").
		WithArgs("invite-1", false, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(account.DID, account.Handle, account.Email, account.PasswordHash, account.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateAccount(context.Background(), account, "invite-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateAccount_InviteUnavailable(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invite_codes SET available_uses").
		WithArgs("used-up", false, 0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateAccount(context.Background(), testAccount(), "used-up")

	require.ErrorIs(t, err, ErrInviteCodeUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateAccount_UniqueViolation(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	err := repo.CreateAccount(context.Background(), testAccount(), "")

	require.ErrorIs(t, err, ErrAccountAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateAccount_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(errors.New("db network error"))
	mock.ExpectRollback()

	err := repo.CreateAccount(context.Background(), testAccount(), "")

	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.Contains(t, err.Error(), "db network error")
}

func TestAccountRepository_CreateAccount_BeginError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := repo.CreateAccount(context.Background(), testAccount(), "")

	require.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestAccountRepository_CreateAccount_CommitError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := repo.CreateAccount(context.Background(), testAccount(), "")

	require.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestAccountRepository_FindAccount(t *testing.T) {
	account := testAccount()

	tests := []struct {
		name string
		find func(AccountRepository) (models.Account, error)
		arg  string
	}{
		{name: "by did", arg: account.DID, find: func(r AccountRepository) (models.Account, error) {
			return r.FindAccountByDID(context.Background(), account.DID)
		}},
		{name: "by handle", arg: account.Handle, find: func(r AccountRepository) (models.Account, error) {
			return r.FindAccountByHandle(context.Background(), account.Handle)
		}},
		{name: "by email", arg: account.Email, find: func(r AccountRepository) (models.Account, error) {
			return r.FindAccountByEmail(context.Background(), account.Email)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)
			rows := sqlmock.NewRows(accountColumns).
				AddRow(account.DID, account.Handle, account.Email, account.PasswordHash, account.CreatedAt)
			mock.ExpectQuery("SELECT (.+) FROM accounts WHERE").WithArgs(tt.arg).WillReturnRows(rows)

			found, err := tt.find(repo)

			require.NoError(t, err)
			assert.Equal(t, account, found)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_FindAccount_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindAccountByHandle(context.Background(), "nobody.test")

	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRepository_FindAccount_RetriesTransientErrors(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	account := testAccount()

	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnRows(
		sqlmock.NewRows(accountColumns).
			AddRow(account.DID, account.Handle, account.Email, account.PasswordHash, account.CreatedAt))

	found, err := repo.FindAccountByDID(context.Background(), account.DID)

	require.NoError(t, err)
	assert.Equal(t, account.DID, found.DID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindAccount_NonRetryableError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.FindAccountByDID(context.Background(), "did:plc:alice")

	require.ErrorIs(t, err, ErrScanningRow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdatePasswordHash(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectExec("UPDATE accounts SET password_hash").
		WithArgs("new-hash", "did:plc:alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePasswordHash(context.Background(), "did:plc:alice", "new-hash")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdatePasswordHash_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectExec("UPDATE accounts SET password_hash").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePasswordHash(context.Background(), "did:plc:nobody", "new-hash")

	require.ErrorIs(t, err, ErrAccountNotFound)
}
