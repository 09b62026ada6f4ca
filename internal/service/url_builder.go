// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-pds/internal/config"
)

// testUserDomain is served in addition to the host name in debug mode.
const testUserDomain = ".test"

// URLBuilder derives the externally visible names of the server from its
// configuration.
type URLBuilder struct {
	cfg *config.ServerConfig
}

func NewURLBuilder(cfg *config.ServerConfig) *URLBuilder {
	return &URLBuilder{cfg: cfg}
}

func (b *URLBuilder) Origin() string {
	return b.cfg.Origin()
}

func (b *URLBuilder) PublicURL() string {
	return b.cfg.PublicURL()
}

// ServiceDID is the did:web identity of the server.
func (b *URLBuilder) ServiceDID() string {
	return "did:web:" + url.PathEscape(b.cfg.Hostname())
}

// AvailableUserDomains lists the handle suffixes accounts may register
// under, each with a leading dot.
func (b *URLBuilder) AvailableUserDomains() []string {
	domains := []string{"." + b.cfg.Hostname()}
	if b.cfg.DebugMode() {
		domains = append(domains, testUserDomain)
	}
	return domains
}

// PasswordResetLink appends token as the "token" query parameter of the
// configured password reset deep link.
func (b *URLBuilder) PasswordResetLink(token string) (string, error) {
	u, err := url.Parse(b.cfg.AppURLPasswordReset())
	if err != nil {
		return "", fmt.Errorf("invalid password reset url: %w", err)
	}

	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
