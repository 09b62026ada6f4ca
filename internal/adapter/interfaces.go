// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter contains the outbound HTTP clients of the server: the PLC
// directory client used to resolve did:plc identities and the XRPC client
// used to call other atproto services.
//
// Transport failures are mapped to [*XRPCError] values that unwrap to the
// sentinel errors of this package, so callers can use [errors.Is] without
// knowing the status code (e.g. [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pds/internal/lexicon/tools/ozone/signature"
	"github.com/MKhiriev/go-pds/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// PLCClient reads DID documents from the PLC directory.
type PLCClient interface {
	// ResolveDID fetches the DID document of a did:plc identity. Unknown or
	// tombstoned identities yield [ErrDIDNotFound].
	ResolveDID(ctx context.Context, did string) (models.DIDDocument, error)
}

// XRPCClient calls XRPC methods on a remote atproto service.
type XRPCClient interface {
	FindCorrelation(ctx context.Context, params signature.FindCorrelationQueryParams, opts signature.FindCorrelationCallOptions) (signature.FindCorrelationResponse, error)
}
