// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// ReadEnv resolves the server configuration from an environment mapping and
// optional overrides.
//
// Precedence, per field: override > environment > literal default. Fields
// are resolved in this order:
//  1. debug mode, host name, scheme and port;
//  2. the remaining independent fields;
//  3. the recovery key (override first, then environment);
//  4. the test name registry, present only in debug mode;
//  5. overrides, applied last; every present override field wins, zero
//     values included.
//
// A missing recovery key is reported as a [*MissingRequiredConfigError]; a
// scheme other than http or https as an [*InvalidConfigError]. ReadEnv does
// not modify environment or overrides.
func ReadEnv(environment map[string]string, overrides *Overrides) (*ServerConfig, error) {
	return newConfigBuilder(environment).
		withEnv().
		withRecoveryKey(overrides).
		withTestNameRegistry().
		withOverrides(overrides).
		build()
}

type configBuilder struct {
	environment map[string]string
	values      Values
	err         error
}

func newConfigBuilder(environment map[string]string) *configBuilder {
	return &configBuilder{
		environment: environment,
	}
}

func (b *configBuilder) build() (*ServerConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	cfg := &ServerConfig{cfg: b.values}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	raw, err := parseEnv(b.environment)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	v := &b.values
	v.DebugMode = raw.DebugMode == "1"
	v.Hostname = raw.Hostname
	v.Scheme = b.scheme(v.Hostname)
	v.Port = parsePort(raw.Port)

	v.PublicURL = raw.PublicURL
	v.JWTSecret = raw.JWTSecret
	v.DIDPlcURL = raw.DIDPlcURL
	v.AdminPassword = raw.AdminPassword
	v.InviteRequired = raw.InviteRequired == "true"
	v.BlockstoreLocation = raw.BlockstoreLocation
	v.DatabaseLocation = raw.DatabaseLocation
	v.AppURLPasswordReset = raw.AppURLPasswordReset
	v.EmailSMTPURL = raw.EmailSMTPURL
	v.EmailNoReplyAddress = raw.EmailNoReplyAddress
	v.DBPostgresURL = raw.DBPostgresURL
	v.DBPostgresSchema = raw.DBPostgresSchema
	v.RecoveryKey = raw.RecoveryKey

	return b
}

// scheme picks https for an explicit TLS=1, http for any other explicit TLS
// value, and otherwise infers it from the host name.
func (b *configBuilder) scheme(hostname string) string {
	if tls, ok := b.environment[tlsEnvKey]; ok {
		if tls == "1" {
			return SchemeHTTPS
		}
		return SchemeHTTP
	}

	if hostname == DefaultHostname {
		return SchemeHTTP
	}
	return SchemeHTTPS
}

func (b *configBuilder) withRecoveryKey(overrides *Overrides) *configBuilder {
	if overrides != nil && overrides.RecoveryKey != nil && *overrides.RecoveryKey != "" {
		b.values.RecoveryKey = *overrides.RecoveryKey
	}
	return b
}

func (b *configBuilder) withTestNameRegistry() *configBuilder {
	if b.values.DebugMode {
		b.values.TestNameRegistry = map[string]string{}
	}
	return b
}

func (b *configBuilder) withOverrides(overrides *Overrides) *configBuilder {
	if overrides != nil {
		overrides.applyTo(&b.values)
	}
	return b
}
