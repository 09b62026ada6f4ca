package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pds/models"
)

// mapHTTPError returns nil for 2xx responses and an [*XRPCError] otherwise.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	xrpcErr := &XRPCError{StatusCode: resp.StatusCode(), kind: errorKind(resp.StatusCode())}

	var body models.XRPCError
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		xrpcErr.Name = body.Error
		xrpcErr.Message = body.Message
	} else {
		xrpcErr.Message = strings.TrimSpace(string(resp.Body()))
	}

	return xrpcErr
}

func errorKind(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound, http.StatusGone:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusInternalServerError:
		return ErrInternalServerError
	case http.StatusBadGateway:
		return ErrBadGateway
	}
	return ErrUnexpectedStatus
}
