package adapter

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pds/internal/lexicon/tools/ozone/signature"
	"github.com/MKhiriev/go-pds/internal/logger"
)

type xrpcClient struct {
	client *resty.Client
	logger *logger.Logger
}

// NewXRPCClient returns an [XRPCClient] calling the service at serviceURL.
func NewXRPCClient(serviceURL string, timeout time.Duration, log *logger.Logger) (XRPCClient, error) {
	client, err := newRestyClient(serviceURL, timeout, log)
	if err != nil {
		return nil, fmt.Errorf("invalid xrpc service url: %w", err)
	}

	return &xrpcClient{client: client, logger: log}, nil
}

// FindCorrelation implements [XRPCClient]. Errors are passed through
// [signature.FindCorrelationToKnownErr].
func (x *xrpcClient) FindCorrelation(ctx context.Context, params signature.FindCorrelationQueryParams, opts signature.FindCorrelationCallOptions) (signature.FindCorrelationResponse, error) {
	var out signature.FindCorrelationOutputSchema

	req := x.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(url.Values{"dids": params.DIDs}).
		SetResult(&out)
	for key, values := range opts.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := req.Get("/xrpc/" + signature.FindCorrelationID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*xrpcClient.FindCorrelation").Msg("xrpc request failed")
		return signature.FindCorrelationResponse{}, signature.FindCorrelationToKnownErr(fmt.Errorf("find correlation request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return signature.FindCorrelationResponse{}, signature.FindCorrelationToKnownErr(err)
	}

	return signature.FindCorrelationResponse{
		Success: true,
		Headers: resp.Header(),
		Data:    out,
	}, nil
}
