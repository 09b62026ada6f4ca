// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// tlsEnvKey is the only key whose presence, not its value, changes the
// resolution outcome.
const tlsEnvKey = "TLS"

// rawEnv mirrors the environment keys read by the server. Values are kept as
// strings; flag comparison and numeric parsing happen in the builder so that
// malformed input never turns into an error.
type rawEnv struct {
	DebugMode           string `env:"DEBUG_MODE"`
	PublicURL           string `env:"PUBLIC_URL"`
	Hostname            string `env:"HOSTNAME" envDefault:"localhost"`
	Port                string `env:"PORT"`
	DBPostgresURL       string `env:"DB_POSTGRES_URL"`
	DBPostgresSchema    string `env:"DB_POSTGRES_SCHEMA"`
	JWTSecret           string `env:"JWT_SECRET" envDefault:"jwt_secret"`
	DIDPlcURL           string `env:"DID_PLC_URL" envDefault:"http://localhost:2582"`
	RecoveryKey         string `env:"RECOVERY_KEY"`
	AdminPassword       string `env:"ADMIN_PASSWORD" envDefault:"admin"`
	InviteRequired      string `env:"INVITE_REQUIRED"`
	BlockstoreLocation  string `env:"BLOCKSTORE_LOC"`
	DatabaseLocation    string `env:"DATABASE_LOC"`
	AppURLPasswordReset string `env:"APP_URL_PASSWORD_RESET" envDefault:"app://password-reset"`
	EmailSMTPURL        string `env:"EMAIL_SMTP_URL"`
	EmailNoReplyAddress string `env:"EMAIL_NO_REPLY_ADDRESS" envDefault:"noreply@blueskyweb.xyz"`
}

// parseEnv populates a [rawEnv] from the given environment mapping using the
// caarlos0/env library. Empty values are treated as absent, so literal
// defaults apply to them as well.
//
// The process environment is never consulted here; callers pass the mapping
// explicitly.
func parseEnv(environment map[string]string) (rawEnv, error) {
	present := make(map[string]string, len(environment))
	for k, v := range environment {
		if v != "" {
			present[k] = v
		}
	}

	var raw rawEnv
	if err := env.ParseWithOptions(&raw, env.Options{Environment: present}); err != nil {
		return rawEnv{}, fmt.Errorf("error getting env configs: %w", err)
	}

	return raw, nil
}

// parsePort reads a base-10 port number the way a lenient integer parser
// does: leading whitespace and an optional sign are skipped and the leading
// run of digits is used. Input without digits, or outside the TCP port range,
// yields [DefaultPort].
func parsePort(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return DefaultPort
	}

	port, err := strconv.Atoi(s[:end])
	if err != nil || port < 0 || port > 65535 {
		return DefaultPort
	}

	return port
}

// ProcessEnv returns a snapshot of the process environment.
func ProcessEnv() map[string]string {
	return env.ToMap(os.Environ())
}

// ReadProcessEnv snapshots the process environment once and resolves the
// server configuration from it. See [ReadEnv].
func ReadProcessEnv(overrides *Overrides) (*ServerConfig, error) {
	return ReadEnv(ProcessEnv(), overrides)
}

// LoadDotEnv reads a dotenv file and returns its entries merged under
// environment: keys already present in environment keep their value.
// The input mapping is not modified.
func LoadDotEnv(path string, environment map[string]string) (map[string]string, error) {
	fileEnv, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("error reading dotenv file %q: %w", path, err)
	}

	merged := maps.Clone(fileEnv)
	if err = mergo.Merge(&merged, environment, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging dotenv file %q: %w", path, err)
	}

	return merged, nil
}
