// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks the invariants of a resolved [ServerConfig]: the recovery
// key has no default and must be set, and the scheme is http or https. Only
// an override can produce another scheme.
func (cfg *ServerConfig) validate() error {
	if cfg.cfg.RecoveryKey == "" {
		return &MissingRequiredConfigError{Key: "RECOVERY_KEY"}
	}

	switch cfg.cfg.Scheme {
	case SchemeHTTP, SchemeHTTPS:
	default:
		return &InvalidConfigError{Field: "scheme", Value: cfg.cfg.Scheme}
	}

	return nil
}
