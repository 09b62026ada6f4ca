package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/models"
)

type inviteRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewInviteRepository(db *DB, logger *logger.Logger) InviteRepository {
	logger.Debug().Msg("creating invite repository")
	return &inviteRepository{
		db:     db,
		logger: logger,
	}
}

func (r *inviteRepository) CreateInviteCode(ctx context.Context, code models.InviteCode) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertInviteCodeQuery(r.db.builder(), code)
	if err != nil {
		log.Err(err).Str("func", "*inviteRepository.CreateInviteCode").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*inviteRepository.CreateInviteCode").Msg("error inserting invite code")
		if r.db.isUniqueViolation(err) {
			return ErrInviteCodeAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *inviteRepository) FindInviteCode(ctx context.Context, code string) (models.InviteCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectInviteCodeQuery(r.db.builder(), code)
	if err != nil {
		log.Err(err).Str("func", "*inviteRepository.FindInviteCode").Msg("error building select query")
		return models.InviteCode{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var invite models.InviteCode
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&invite.Code, &invite.AvailableUses, &invite.Disabled, &invite.ForAccount, &invite.CreatedBy, &invite.CreatedAt)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.InviteCode{}, ErrInviteCodeNotFound
	case err != nil:
		log.Err(err).Str("func", "*inviteRepository.FindInviteCode").Msg("error selecting invite code")
		return models.InviteCode{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return invite, nil
}

// DisableInviteCodes marks the given codes as disabled. Unknown codes are
// ignored.
func (r *inviteRepository) DisableInviteCodes(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	query, args, err := buildDisableInviteCodesQuery(r.db.builder(), codes)
	if err != nil {
		log.Err(err).Str("func", "*inviteRepository.DisableInviteCodes").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*inviteRepository.DisableInviteCodes").Msg("error disabling invite codes")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
