package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/models"
)

type plcClient struct {
	client *resty.Client
	logger *logger.Logger
}

// NewPLCClient returns a [PLCClient] talking to the PLC directory configured
// in cfg.
func NewPLCClient(cfg *config.ServerConfig, timeout time.Duration, log *logger.Logger) (PLCClient, error) {
	client, err := newRestyClient(cfg.DIDPlcURL(), timeout, log)
	if err != nil {
		return nil, fmt.Errorf("invalid plc directory url: %w", err)
	}

	return &plcClient{client: client, logger: log}, nil
}

// ResolveDID implements [PLCClient]. It GETs {didPlcUrl}/{did}.
func (p *plcClient) ResolveDID(ctx context.Context, did string) (models.DIDDocument, error) {
	log := logger.FromContext(ctx)

	if !strings.HasPrefix(did, "did:plc:") || len(did) == len("did:plc:") {
		return models.DIDDocument{}, fmt.Errorf("%w: %q", ErrInvalidDID, did)
	}

	var doc models.DIDDocument
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("did", did).
		SetResult(&doc).
		Get("/{did}")
	if err != nil {
		log.Err(err).Str("func", "*plcClient.ResolveDID").Str("did", did).Msg("plc directory request failed")
		return models.DIDDocument{}, fmt.Errorf("resolve did request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.DIDDocument{}, fmt.Errorf("%w: %w", ErrDIDNotFound, err)
		}
		log.Err(err).Str("func", "*plcClient.ResolveDID").Str("did", did).Msg("plc directory returned an error")
		return models.DIDDocument{}, err
	}

	if doc.ID != did {
		return models.DIDDocument{}, fmt.Errorf("%w: directory returned document for %q", ErrInvalidDID, doc.ID)
	}

	return doc, nil
}
