package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-pds/models"
)

// GenerateJWTToken creates an HMAC-SHA256 signed token for did.
//
// The token carries iss, sub (the DID), iat, exp and the custom scope claim.
// All parameters are required.
func GenerateJWTToken(issuer, did, scope string, tokenDuration time.Duration, signKey []byte) (models.Token, error) {
	if issuer == "" || did == "" || scope == "" || tokenDuration <= 0 || len(signKey) == 0 {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   did,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, DID: did, Scope: scope}, nil
}

// ValidateAndParseJWTToken verifies the signature, issuer, expiry and scope
// of tokenString and returns the parsed token.
func ValidateAndParseJWTToken(tokenString string, signKey []byte, issuer, scope string) (models.Token, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return signKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}
	if claims.Scope != scope {
		return models.Token{}, fmt.Errorf("unexpected token scope %q", claims.Scope)
	}

	return models.Token{Token: token, SignedString: tokenString, DID: claims.Subject, Scope: claims.Scope}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
