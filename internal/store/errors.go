package store

import "errors"

// Sentinel errors returned by repositories and block stores. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrAccountAlreadyExists is returned when the DID, handle or email of a
	// new account is already taken.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrInviteCodeAlreadyExists is returned when a generated invite code
	// collides with an existing one.
	ErrInviteCodeAlreadyExists = errors.New("invite code already exists")

	// ErrInviteCodeNotFound is returned when an invite code does not exist.
	ErrInviteCodeNotFound = errors.New("invite code was not found")

	// ErrInviteCodeUnavailable is returned when an invite code exists but is
	// disabled or has no uses left.
	ErrInviteCodeUnavailable = errors.New("invite code is not available")

	// ErrBlockNotFound is returned when the block store has no block under
	// the requested ref.
	ErrBlockNotFound = errors.New("block was not found")

	// ErrInvalidBlockRef is returned for refs that are not lower-case
	// base32 strings.
	ErrInvalidBlockRef = errors.New("invalid block ref")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot be started.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("failed to scan row")
)
