package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token scopes. A token is only accepted where its scope is expected.
const (
	ScopeAccess        = "com.atproto.access"
	ScopePasswordReset = "com.atproto.passwordReset"
)

// Claims is the claim set of every token issued by the server.
type Claims struct {
	jwt.RegisteredClaims

	// Scope restricts what the token may be used for.
	Scope string `json:"scope"`
}

// Token wraps a parsed or freshly signed JWT.
type Token struct {
	// Token is the underlying JWT.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS serialization.
	SignedString string `json:"-"`

	// DID is the account the token was issued for (the "sub" claim).
	DID string `json:"-"`

	// Scope is a copy of the "scope" claim.
	Scope string `json:"-"`
}

// String returns the compact serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
