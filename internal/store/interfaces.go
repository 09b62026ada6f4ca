package store

import (
	"context"

	"github.com/MKhiriev/go-pds/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists hosted accounts.
type AccountRepository interface {
	// CreateAccount stores a new account. When inviteCode is not empty one
	// use of it is consumed in the same transaction; an unusable code fails
	// with [ErrInviteCodeUnavailable] and nothing is stored.
	CreateAccount(ctx context.Context, account models.Account, inviteCode string) error

	FindAccountByDID(ctx context.Context, did string) (models.Account, error)
	FindAccountByHandle(ctx context.Context, handle string) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)

	// UpdatePasswordHash replaces the password hash of the account.
	UpdatePasswordHash(ctx context.Context, did, passwordHash string) error
}

// InviteRepository persists invite codes.
type InviteRepository interface {
	CreateInviteCode(ctx context.Context, code models.InviteCode) error
	FindInviteCode(ctx context.Context, code string) (models.InviteCode, error)
	DisableInviteCodes(ctx context.Context, codes []string) error
}

// BlockStore keeps content-addressed blocks, either in memory or on disk.
type BlockStore interface {
	PutBlock(ctx context.Context, ref string, data []byte) error
	GetBlock(ctx context.Context, ref string) ([]byte, error)
	HasBlock(ctx context.Context, ref string) (bool, error)
}

// ErrorClassificator tells repositories how to react to driver errors.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique or primary key
	// constraint violation.
	IsUniqueViolation(err error) bool
}
