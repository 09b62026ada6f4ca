// Package utils provides helpers shared across the server: context keys,
// key derivation and content hashing, JWT handling, identifier generation
// and JSON response writing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// DIDCtxKey stores the DID of the authenticated account in the context.
var DIDCtxKey = contextKey("did")

// WithDID returns a copy of ctx carrying the authenticated account DID.
func WithDID(ctx context.Context, did string) context.Context {
	return context.WithValue(ctx, DIDCtxKey, did)
}

// GetDIDFromContext returns the authenticated account DID. ok is false when
// the value is missing, empty or of an unexpected type.
func GetDIDFromContext(ctx context.Context) (string, bool) {
	did, ok := ctx.Value(DIDCtxKey).(string)
	return did, ok && did != ""
}
