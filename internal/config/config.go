// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"maps"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Schemes accepted for [ServerConfig.Scheme].
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// Literal defaults applied when neither an override nor the environment
// supplies a value.
const (
	DefaultHostname            = "localhost"
	DefaultPort                = 2583
	DefaultJWTSecret           = "jwt_secret"
	DefaultDIDPlcURL           = "http://localhost:2582"
	DefaultAdminPassword       = "admin"
	DefaultAppURLPasswordReset = "app://password-reset"
	DefaultEmailNoReplyAddress = "noreply@blueskyweb.xyz"
)

// Values is the set of primary configuration values of the server. An empty
// string stands for an absent optional value. Overrides are passed to
// [ReadEnv] as [Overrides].
type Values struct {
	// DebugMode enables non-production helpers such as the test name registry.
	// Env: DEBUG_MODE ("1" enables)
	DebugMode bool

	// PublicURL is the externally visible URL of the server. When empty the
	// origin derived from Scheme, Hostname and Port is used.
	// Env: PUBLIC_URL
	PublicURL string

	// Scheme is either "http" or "https"; [ReadEnv] rejects anything else.
	// Env: TLS ("1" selects https, any other value http)
	Scheme string

	// Port is the TCP port the server listens on.
	// Env: PORT
	Port int

	// Hostname is the host name the server is reachable under.
	// Env: HOSTNAME
	Hostname string

	// DBPostgresURL is the PostgreSQL connection string. When empty the
	// embedded SQLite storage is used.
	// Env: DB_POSTGRES_URL
	DBPostgresURL string

	// DBPostgresSchema is the PostgreSQL schema used as search_path.
	// Env: DB_POSTGRES_SCHEMA
	DBPostgresSchema string

	// JWTSecret signs access and password-reset tokens.
	// Env: JWT_SECRET
	JWTSecret string

	// DIDPlcURL is the base URL of the PLC directory.
	// Env: DID_PLC_URL
	DIDPlcURL string

	// RecoveryKey is the rotation key registered with every new DID. Required.
	// Env: RECOVERY_KEY
	RecoveryKey string

	// AdminPassword protects the admin endpoints (basic auth).
	// Env: ADMIN_PASSWORD
	AdminPassword string

	// InviteRequired makes account creation require an invite code.
	// Env: INVITE_REQUIRED ("true" enables)
	InviteRequired bool

	// BlockstoreLocation is the directory of the on-disk blockstore.
	// Env: BLOCKSTORE_LOC
	BlockstoreLocation string

	// DatabaseLocation is the path of the SQLite database file.
	// Env: DATABASE_LOC
	DatabaseLocation string

	// TestNameRegistry maps handles to DIDs in debug mode. Nil when absent.
	TestNameRegistry map[string]string

	// AppURLPasswordReset is the deep link embedded in password-reset mails.
	// Env: APP_URL_PASSWORD_RESET
	AppURLPasswordReset string

	// EmailSMTPURL is the smtp:// or smtps:// URL of the outgoing mail relay.
	// Env: EMAIL_SMTP_URL
	EmailSMTPURL string

	// EmailNoReplyAddress is the sender address of outgoing mail.
	// Env: EMAIL_NO_REPLY_ADDRESS
	EmailNoReplyAddress string
}

// ServerConfig is the resolved, immutable server configuration.
//
// A *ServerConfig is created once by [ReadEnv] and then shared read-only by
// every component of the server. None of its methods mutate it, so it is safe
// for concurrent use without synchronisation.
type ServerConfig struct {
	cfg Values
}

func (c *ServerConfig) DebugMode() bool { return c.cfg.DebugMode }

func (c *ServerConfig) Scheme() string { return c.cfg.Scheme }

func (c *ServerConfig) Port() int { return c.cfg.Port }

func (c *ServerConfig) Hostname() string { return c.cfg.Hostname }

// Origin returns the normalized origin (scheme, host and port, no path and no
// trailing slash) built from Scheme, Hostname and Port.
//
// Normalization follows URL origin rules: scheme and host are lower-cased and
// the port is omitted when it is the default port of the scheme.
func (c *ServerConfig) Origin() string {
	scheme := strings.ToLower(c.cfg.Scheme)
	host := unbracket(strings.ToLower(c.cfg.Hostname))

	u := url.URL{Scheme: scheme, Host: host}
	switch {
	case c.cfg.Port != defaultPortForScheme(scheme):
		u.Host = net.JoinHostPort(host, strconv.Itoa(c.cfg.Port))
	case strings.Contains(host, ":"):
		// bare IPv6 literal
		u.Host = "[" + host + "]"
	}

	return u.String()
}

// PublicURL returns the explicitly configured public URL or, if none was
// supplied, [ServerConfig.Origin].
func (c *ServerConfig) PublicURL() string {
	if c.cfg.PublicURL != "" {
		return c.cfg.PublicURL
	}
	return c.Origin()
}

func (c *ServerConfig) DBPostgresURL() string { return c.cfg.DBPostgresURL }

func (c *ServerConfig) DBPostgresSchema() string { return c.cfg.DBPostgresSchema }

func (c *ServerConfig) JWTSecret() string { return c.cfg.JWTSecret }

func (c *ServerConfig) DIDPlcURL() string { return c.cfg.DIDPlcURL }

func (c *ServerConfig) RecoveryKey() string { return c.cfg.RecoveryKey }

func (c *ServerConfig) AdminPassword() string { return c.cfg.AdminPassword }

func (c *ServerConfig) InviteRequired() bool { return c.cfg.InviteRequired }

func (c *ServerConfig) BlockstoreLocation() string { return c.cfg.BlockstoreLocation }

// UseMemoryBlockstore reports whether blocks are kept in memory, which is the
// case iff no blockstore location is configured.
func (c *ServerConfig) UseMemoryBlockstore() bool { return c.cfg.BlockstoreLocation == "" }

func (c *ServerConfig) DatabaseLocation() string { return c.cfg.DatabaseLocation }

// UseMemoryDatabase reports whether the embedded database is in-memory, which
// is the case iff no database location is configured.
func (c *ServerConfig) UseMemoryDatabase() bool { return c.cfg.DatabaseLocation == "" }

// TestNameRegistry returns a copy of the handle to DID registry seeded for
// debug mode, or nil when the registry is absent.
func (c *ServerConfig) TestNameRegistry() map[string]string {
	if c.cfg.TestNameRegistry == nil {
		return nil
	}
	return maps.Clone(c.cfg.TestNameRegistry)
}

func (c *ServerConfig) AppURLPasswordReset() string { return c.cfg.AppURLPasswordReset }

func (c *ServerConfig) EmailSMTPURL() string { return c.cfg.EmailSMTPURL }

func (c *ServerConfig) EmailNoReplyAddress() string { return c.cfg.EmailNoReplyAddress }

// Values returns a copy of the primary values.
func (c *ServerConfig) Values() Values {
	v := c.cfg
	v.TestNameRegistry = c.TestNameRegistry()
	return v
}

// InsecureDefaults lists the environment keys of secrets that were left at
// their built-in development defaults.
func (c *ServerConfig) InsecureDefaults() []string {
	var keys []string
	if c.cfg.JWTSecret == DefaultJWTSecret {
		keys = append(keys, "JWT_SECRET")
	}
	if c.cfg.AdminPassword == DefaultAdminPassword {
		keys = append(keys, "ADMIN_PASSWORD")
	}
	return keys
}

// MarshalZerologObject implements [zerolog.LogObjectMarshaler]. Secrets are
// never written to the log.
func (c *ServerConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("debug_mode", c.cfg.DebugMode).
		Str("public_url", c.PublicURL()).
		Str("origin", c.Origin()).
		Str("did_plc_url", c.cfg.DIDPlcURL).
		Bool("invite_required", c.cfg.InviteRequired).
		Bool("memory_blockstore", c.UseMemoryBlockstore()).
		Bool("memory_database", c.UseMemoryDatabase()).
		Bool("postgres", c.cfg.DBPostgresURL != "").
		Str("postgres_schema", c.cfg.DBPostgresSchema).
		Bool("smtp", c.cfg.EmailSMTPURL != "").
		Str("email_no_reply_address", c.cfg.EmailNoReplyAddress)
}

// unbracket strips the brackets of an IPv6 literal written in URL form, so
// that it is bracketed exactly once when the origin is built.
func unbracket(host string) string {
	if len(host) > 1 && host[0] == '[' && host[len(host)-1] == ']' {
		return host[1 : len(host)-1]
	}
	return host
}

func defaultPortForScheme(scheme string) int {
	switch scheme {
	case SchemeHTTP:
		return 80
	case SchemeHTTPS:
		return 443
	}
	return -1
}
