package service

import (
	"context"

	"github.com/MKhiriev/go-pds/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ServerInfoService describes the server to clients.
type ServerInfoService interface {
	Health(ctx context.Context) models.HealthResponse
	DescribeServer(ctx context.Context) models.DescribeServerResponse
}

// AuthService hashes passwords and issues and verifies tokens.
type AuthService interface {
	HashPassword(password string) (string, error)
	// VerifyPassword returns [ErrInvalidCredentials] on mismatch.
	VerifyPassword(passwordHash, password string) error

	CreateAccessToken(ctx context.Context, did string) (models.Token, error)
	ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error)

	CreatePasswordResetToken(ctx context.Context, did string) (models.Token, error)
	ParsePasswordResetToken(ctx context.Context, tokenString string) (models.Token, error)

	// CheckAdminPassword compares password with the configured admin
	// password in constant time.
	CheckAdminPassword(password string) bool
}

// AccountService manages hosted accounts and their sessions.
type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (models.Session, error)
	CreateSession(ctx context.Context, req models.CreateSessionRequest) (models.Session, error)
	GetSession(ctx context.Context, did string) (models.Session, error)

	// RequestPasswordReset mails a reset link when an account with the
	// given email exists. Unknown addresses are not reported to the caller.
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

// IdentityService resolves handles and DIDs.
type IdentityService interface {
	ResolveHandle(ctx context.Context, handle string) (string, error)

	// RegisterTestHandle adds a handle to the debug-mode name registry.
	RegisterTestHandle(handle, did string) error

	// AssignDID returns the DID for a new account: supplied DIDs must
	// resolve to a document pointing at this server, otherwise a new did:plc
	// is derived.
	AssignDID(ctx context.Context, suppliedDID, handle string) (string, error)

	RecommendedDIDCredentials(ctx context.Context, did string) (models.RecommendedDIDCredentials, error)
}

// InviteService manages invite codes.
type InviteService interface {
	CreateInviteCode(ctx context.Context, req models.CreateInviteCodeRequest) (models.CreateInviteCodeResponse, error)
	DisableInviteCodes(ctx context.Context, codes []string) error
}

// BlobService stores and serves content-addressed blobs.
type BlobService interface {
	UploadBlob(ctx context.Context, mimeType string, data []byte) (models.BlobRef, error)
	GetBlob(ctx context.Context, ref string) ([]byte, error)
}

// MailService sends the mails of the server.
type MailService interface {
	SendPasswordReset(ctx context.Context, to, handle, link string) error
}

// MailSender delivers a single mail.
type MailSender interface {
	Send(ctx context.Context, mail models.Mail) error
}
