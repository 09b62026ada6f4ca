package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/models"
)

// accountRepository is the SQL implementation of [AccountRepository]. The
// same code serves PostgreSQL and SQLite; the dialect only changes the
// placeholder format and the error classifier held by [DB].
type accountRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount inserts the account and, when inviteCode is set, consumes
// one use of it inside the same transaction.
//
// Error handling:
//   - unique violation on did, handle or email → [ErrAccountAlreadyExists].
//   - invite code disabled, exhausted or missing → [ErrInviteCodeUnavailable].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account, inviteCode string) error {
	log := logger.FromContext(ctx)

	insertQuery, insertArgs, err := buildInsertAccountQuery(r.db.builder(), account)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if inviteCode != "" {
		if err = useInviteCode(ctx, r.db, tx, inviteCode); err != nil {
			log.Err(err).Str("func", "*accountRepository.CreateAccount").Str("invite_code", inviteCode).Msg("error using invite code")
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error inserting account")
		if r.db.isUniqueViolation(err) {
			return ErrAccountAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func useInviteCode(ctx context.Context, db *DB, tx *sql.Tx, code string) error {
	query, args, err := buildUseInviteCodeQuery(db.builder(), code)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrInviteCodeUnavailable
	}

	return nil
}

func (r *accountRepository) FindAccountByDID(ctx context.Context, did string) (models.Account, error) {
	return r.findAccount(ctx, accountByDID, did)
}

func (r *accountRepository) FindAccountByHandle(ctx context.Context, handle string) (models.Account, error) {
	return r.findAccount(ctx, accountByHandle, handle)
}

func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findAccount(ctx, accountByEmail, email)
}

func (r *accountRepository) findAccount(ctx context.Context, column, value string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAccountQuery(r.db.builder(), column, value)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.findAccount").Msg("error building select query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&account.DID, &account.Handle, &account.Email, &account.PasswordHash, &account.CreatedAt)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Account{}, ErrAccountNotFound
	case err != nil:
		log.Err(err).Str("func", "*accountRepository.findAccount").Str("by", column).Msg("error selecting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return account, nil
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, did, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePasswordHashQuery(r.db.builder(), did, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdatePasswordHash").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdatePasswordHash").Msg("error updating password hash")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
