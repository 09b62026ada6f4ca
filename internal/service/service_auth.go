package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/utils"
	"github.com/MKhiriev/go-pds/models"
)

const (
	accessTokenDuration        = 2 * time.Hour
	passwordResetTokenDuration = 15 * time.Minute
)

// authService implements [AuthService].
//
// Access and password-reset tokens are signed with different keys, both
// derived from the configured JWT secret, so one kind can never be replayed
// as the other. The issuer of every token is the public URL of the server.
type authService struct {
	accessKey []byte
	resetKey  []byte
	issuer    string

	adminPassword string
	bcryptCost    int

	logger *logger.Logger
}

func NewAuthService(cfg *config.ServerConfig, logger *logger.Logger) (AuthService, error) {
	accessKey, err := utils.DeriveKey(cfg.JWTSecret(), utils.KeyPurposeAccessToken)
	if err != nil {
		return nil, err
	}
	resetKey, err := utils.DeriveKey(cfg.JWTSecret(), utils.KeyPurposePasswordReset)
	if err != nil {
		return nil, err
	}

	return &authService{
		accessKey:     accessKey,
		resetKey:      resetKey,
		issuer:        cfg.PublicURL(),
		adminPassword: cfg.AdminPassword(),
		bcryptCost:    bcrypt.DefaultCost,
		logger:        logger,
	}, nil
}

func (a *authService) HashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

func (a *authService) VerifyPassword(passwordHash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	default:
		a.logger.Err(err).Str("func", "*authService.VerifyPassword").Msg("stored password hash is unusable")
		return ErrInvalidCredentials
	}
}

func (a *authService) CreateAccessToken(ctx context.Context, did string) (models.Token, error) {
	return a.createToken(ctx, did, models.ScopeAccess, accessTokenDuration, a.accessKey)
}

func (a *authService) ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	return a.parseToken(ctx, tokenString, models.ScopeAccess, a.accessKey)
}

func (a *authService) CreatePasswordResetToken(ctx context.Context, did string) (models.Token, error) {
	return a.createToken(ctx, did, models.ScopePasswordReset, passwordResetTokenDuration, a.resetKey)
}

func (a *authService) ParsePasswordResetToken(ctx context.Context, tokenString string) (models.Token, error) {
	return a.parseToken(ctx, tokenString, models.ScopePasswordReset, a.resetKey)
}

func (a *authService) CheckAdminPassword(password string) bool {
	return utils.SecureCompare(password, a.adminPassword)
}

func (a *authService) createToken(ctx context.Context, did, scope string, duration time.Duration, key []byte) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.issuer, did, scope, duration, key)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.createToken").Str("scope", scope).Msg("error creating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// parseToken normalises every validation failure to
// [ErrTokenIsExpiredOrInvalid].
func (a *authService) parseToken(ctx context.Context, tokenString, scope string, key []byte) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, key, a.issuer, scope)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.parseToken").Str("scope", scope).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
