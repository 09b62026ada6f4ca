package models

import "time"

// Account is a repository hosted on this server.
type Account struct {
	// DID is the decentralized identifier of the account (did:plc:... or did:web:...).
	DID string `json:"did"`

	// Handle is the human readable, domain-like name of the account.
	Handle string `json:"handle"`

	// Email is used for password resets. Never exposed to other accounts.
	Email string `json:"email,omitempty"`

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string `json:"-"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table backing [Account].
func (a Account) TableName() string {
	return "accounts"
}

// CreateAccountRequest is the input of com.atproto.server.createAccount.
type CreateAccountRequest struct {
	Handle     string `json:"handle"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"inviteCode,omitempty"`
	// DID is an existing did:plc to migrate in. When empty a new one is assigned.
	DID string `json:"did,omitempty"`
}

// CreateSessionRequest is the input of com.atproto.server.createSession.
// Identifier is either a handle or an email address.
type CreateSessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Session is returned by createAccount, createSession and getSession.
type Session struct {
	AccessJwt string `json:"accessJwt,omitempty"`
	DID       string `json:"did"`
	Handle    string `json:"handle"`
	Email     string `json:"email,omitempty"`
}

// RequestPasswordResetRequest is the input of com.atproto.server.requestPasswordReset.
type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the input of com.atproto.server.resetPassword.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResolveHandleResponse is the output of com.atproto.identity.resolveHandle.
type ResolveHandleResponse struct {
	DID string `json:"did"`
}
