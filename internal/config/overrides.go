// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "maps"

// Overrides is the set of programmatic overrides accepted by [ReadEnv].
//
// A nil field is absent and leaves the resolved value alone. A non-nil field
// wins unconditionally, zero values included: InviteRequired set to false
// disables invites even when INVITE_REQUIRED=true, and BlockstoreLocation
// set to "" selects the memory blockstore.
type Overrides struct {
	DebugMode           *bool
	PublicURL           *string
	Scheme              *string
	Port                *int
	Hostname            *string
	DBPostgresURL       *string
	DBPostgresSchema    *string
	JWTSecret           *string
	DIDPlcURL           *string
	RecoveryKey         *string
	AdminPassword       *string
	InviteRequired      *bool
	BlockstoreLocation  *string
	DatabaseLocation    *string
	AppURLPasswordReset *string
	EmailSMTPURL        *string
	EmailNoReplyAddress *string

	// TestNameRegistry replaces the registry when non-nil. Pointing it at a
	// nil map removes the registry.
	TestNameRegistry *map[string]string
}

// applyTo writes every present override into v. The registry is cloned so
// the caller keeps ownership of its map.
func (o *Overrides) applyTo(v *Values) {
	set(&v.DebugMode, o.DebugMode)
	set(&v.PublicURL, o.PublicURL)
	set(&v.Scheme, o.Scheme)
	set(&v.Port, o.Port)
	set(&v.Hostname, o.Hostname)
	set(&v.DBPostgresURL, o.DBPostgresURL)
	set(&v.DBPostgresSchema, o.DBPostgresSchema)
	set(&v.JWTSecret, o.JWTSecret)
	set(&v.DIDPlcURL, o.DIDPlcURL)
	set(&v.RecoveryKey, o.RecoveryKey)
	set(&v.AdminPassword, o.AdminPassword)
	set(&v.InviteRequired, o.InviteRequired)
	set(&v.BlockstoreLocation, o.BlockstoreLocation)
	set(&v.DatabaseLocation, o.DatabaseLocation)
	set(&v.AppURLPasswordReset, o.AppURLPasswordReset)
	set(&v.EmailSMTPURL, o.EmailSMTPURL)
	set(&v.EmailNoReplyAddress, o.EmailNoReplyAddress)

	if o.TestNameRegistry != nil {
		v.TestNameRegistry = maps.Clone(*o.TestNameRegistry)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
