package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator produces random identifiers.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time ordered UUIDv7, falling back to a random v4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// InviteCode returns a new invite code in the form
// "<hostname with dots replaced by dashes>-xxxxx-xxxxx".
func (g *UUIDGenerator) InviteCode(hostname string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ReplaceAll(hostname, ".", "-") + "-" + random[:5] + "-" + random[5:10]
}
