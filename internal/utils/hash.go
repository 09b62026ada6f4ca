package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// Key derivation purposes. Every purpose yields an independent key from the
// same secret, so a token signed for one purpose never verifies for another.
const (
	KeyPurposeAccessToken   = "pds access token"
	KeyPurposePasswordReset = "pds password reset"
)

var refEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// DeriveKey expands secret into a 32 byte key bound to purpose using
// HKDF-SHA256.
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("empty secret for %q", purpose)
	}

	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("error deriving key for %q: %w", purpose, err)
	}

	return key, nil
}

// ContentRef returns the content address of data: the lower-case, unpadded
// base32 encoding of its SHA-256 digest, prefixed with "b".
func ContentRef(data []byte) string {
	sum := sha256.Sum256(data)
	return "b" + strings.ToLower(refEncoding.EncodeToString(sum[:]))
}

// SecureCompare reports whether a and b are equal in constant time. Both
// inputs are hashed first so that their lengths do not leak either.
func SecureCompare(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return hmac.Equal(ha[:], hb[:])
}
