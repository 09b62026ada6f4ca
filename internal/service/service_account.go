package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/metrics"
	"github.com/MKhiriev/go-pds/internal/store"
	"github.com/MKhiriev/go-pds/models"
)

// accountService implements [AccountService] on top of the account
// repository, delegating credentials to [AuthService] and identities to
// [IdentityService].
type accountService struct {
	accounts store.AccountRepository
	auth     AuthService
	identity IdentityService
	mail     MailService
	urls     *URLBuilder

	inviteRequired bool
	debugMode      bool
	now            func() time.Time

	logger *logger.Logger
}

func NewAccountService(
	accounts store.AccountRepository,
	auth AuthService,
	identity IdentityService,
	mail MailService,
	urls *URLBuilder,
	cfg *config.ServerConfig,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		accounts:       accounts,
		auth:           auth,
		identity:       identity,
		mail:           mail,
		urls:           urls,
		inviteRequired: cfg.InviteRequired(),
		debugMode:      cfg.DebugMode(),
		now:            time.Now,
		logger:         logger,
	}
}

// CreateAccount validates the request, assigns a DID, stores the account and
// opens a session for it.
//
// When invites are required the invite code is mandatory and one use of it
// is consumed together with the account insert. When they are not, any
// supplied code is ignored.
func (s *accountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	handle := normalizeHandle(req.Handle)
	if err := validateHandle(handle, s.urls.AvailableUserDomains()); err != nil {
		return models.Session{}, err
	}
	if err := validateEmail(req.Email); err != nil {
		return models.Session{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return models.Session{}, err
	}

	inviteCode := ""
	if s.inviteRequired {
		if req.InviteCode == "" {
			return models.Session{}, ErrInviteCodeRequired
		}
		inviteCode = req.InviteCode
	}

	did, err := s.identity.AssignDID(ctx, req.DID, handle)
	if err != nil {
		return models.Session{}, err
	}

	passwordHash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return models.Session{}, err
	}

	account := models.Account{
		DID:          did,
		Handle:       handle,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}

	err = s.accounts.CreateAccount(ctx, account, inviteCode)
	switch {
	case errors.Is(err, store.ErrAccountAlreadyExists):
		return models.Session{}, ErrAccountAlreadyExists
	case errors.Is(err, store.ErrInviteCodeUnavailable):
		return models.Session{}, ErrInvalidInviteCode
	case err != nil:
		log.Err(err).Str("func", "*accountService.CreateAccount").Str("handle", handle).Msg("error creating account")
		return models.Session{}, fmt.Errorf("error creating account: %w", err)
	}

	if s.debugMode {
		if err = s.identity.RegisterTestHandle(handle, did); err != nil {
			log.Warn().Err(err).Str("handle", handle).Msg("handle was not added to the test registry")
		}
	}
	metrics.AccountsCreatedTotal.Inc()
	log.Info().Str("did", did).Str("handle", handle).Msg("account created")

	return s.newSession(ctx, account)
}

// CreateSession authenticates by handle or email. Unknown identifiers and
// wrong passwords are indistinguishable to the caller.
func (s *accountService) CreateSession(ctx context.Context, req models.CreateSessionRequest) (models.Session, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	if identifier == "" || req.Password == "" {
		return models.Session{}, fmt.Errorf("%w: identifier and password are required", ErrInvalidDataProvided)
	}

	var (
		account models.Account
		err     error
	)
	if strings.Contains(identifier, "@") {
		account, err = s.accounts.FindAccountByEmail(ctx, identifier)
	} else {
		account, err = s.accounts.FindAccountByHandle(ctx, identifier)
	}
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("error loading account: %w", err)
	}

	if err = s.auth.VerifyPassword(account.PasswordHash, req.Password); err != nil {
		logger.FromContext(ctx).Info().Str("did", account.DID).Msg("wrong password")
		return models.Session{}, err
	}

	session, err := s.newSession(ctx, account)
	if err != nil {
		return models.Session{}, err
	}
	metrics.SessionsCreatedTotal.Inc()

	return session, nil
}

// GetSession describes the account of an already authenticated DID. No
// new token is issued.
func (s *accountService) GetSession(ctx context.Context, did string) (models.Session, error) {
	account, err := s.accounts.FindAccountByDID(ctx, did)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Session{}, ErrAccountNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("error loading account: %w", err)
	}

	return models.Session{DID: account.DID, Handle: account.Handle, Email: account.Email}, nil
}

func (s *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}

	account, err := s.accounts.FindAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrAccountNotFound) {
		log.Info().Msg("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error loading account: %w", err)
	}

	token, err := s.auth.CreatePasswordResetToken(ctx, account.DID)
	if err != nil {
		return err
	}

	link, err := s.urls.PasswordResetLink(token.String())
	if err != nil {
		log.Err(err).Str("func", "*accountService.RequestPasswordReset").Msg("error building reset link")
		return err
	}

	return s.mail.SendPasswordReset(ctx, account.Email, account.Handle, link)
}

func (s *accountService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	token, err := s.auth.ParsePasswordResetToken(ctx, req.Token)
	if err != nil {
		return err
	}

	passwordHash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	err = s.accounts.UpdatePasswordHash(ctx, token.DID, passwordHash)
	if errors.Is(err, store.ErrAccountNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	logger.FromContext(ctx).Info().Str("did", token.DID).Msg("password reset")
	return nil
}

func (s *accountService) newSession(ctx context.Context, account models.Account) (models.Session, error) {
	token, err := s.auth.CreateAccessToken(ctx, account.DID)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{
		AccessJwt: token.String(),
		DID:       account.DID,
		Handle:    account.Handle,
		Email:     account.Email,
	}, nil
}
