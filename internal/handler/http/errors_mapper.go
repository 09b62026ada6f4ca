package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/service"
	"github.com/MKhiriev/go-pds/internal/utils"
)

// XRPC error names.
const (
	errNameInvalidRequest       = "InvalidRequest"
	errNameAuthRequired         = "AuthRequired"
	errNameInvalidToken         = "InvalidToken"
	errNameMethodNotImplemented = "MethodNotImplemented"
	errNameInternalServerError  = "InternalServerError"
	errNameNotFound             = "NotFound"
)

const xrpcPrefix = "/xrpc/"

type xrpcStatus struct {
	status int
	name   string
}

var errorStatusMap = map[error]xrpcStatus{
	service.ErrInvalidDataProvided: {http.StatusBadRequest, errNameInvalidRequest},
	service.ErrInvalidHandle:       {http.StatusBadRequest, "InvalidHandle"},
	service.ErrUnsupportedDomain:   {http.StatusBadRequest, "UnsupportedDomain"},
	service.ErrInvalidEmail:        {http.StatusBadRequest, "InvalidEmail"},
	service.ErrInvalidPassword:     {http.StatusBadRequest, "InvalidPassword"},
	service.ErrInvalidDID:          {http.StatusBadRequest, errNameInvalidRequest},
	service.ErrIncompatibleDIDDoc:  {http.StatusBadRequest, "IncompatibleDidDoc"},
	service.ErrInviteCodeRequired:  {http.StatusBadRequest, "InvalidInviteCode"},
	service.ErrInvalidInviteCode:   {http.StatusBadRequest, "InvalidInviteCode"},
	service.ErrHandleNotFound:      {http.StatusBadRequest, "HandleNotFound"},

	service.ErrInvalidCredentials:      {http.StatusUnauthorized, "AuthenticationRequired"},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, "ExpiredToken"},

	service.ErrAccountAlreadyExists: {http.StatusConflict, "AccountAlreadyExists"},
	service.ErrAccountNotFound:      {http.StatusNotFound, "AccountNotFound"},
	service.ErrBlobNotFound:         {http.StatusNotFound, "BlobNotFound"},
	service.ErrBlobTooLarge:         {http.StatusRequestEntityTooLarge, "BlobTooLarge"},
	service.ErrMailRateLimited:      {http.StatusTooManyRequests, "RateLimitExceeded"},
	service.ErrDIDResolutionFailed:  {http.StatusBadGateway, "UpstreamFailure"},

	ErrInvalidJSON: {http.StatusBadRequest, errNameInvalidRequest},
}

func statusFromError(err error) xrpcStatus {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return xrpcStatus{http.StatusInternalServerError, errNameInternalServerError}
}

// writeError answers with the XRPC error mapped from err. Messages of
// server side failures are not exposed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	s := statusFromError(err)

	message := err.Error()
	if s.status >= http.StatusInternalServerError && s.status != http.StatusBadGateway {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
		message = http.StatusText(s.status)
	} else {
		log.Info().Err(err).Str("path", r.URL.Path).Int("status", s.status).Msg("request rejected")
	}

	utils.WriteXRPCError(w, s.status, s.name, message)
}

// methodNotImplemented answers unknown XRPC methods with 501 and any other
// unknown path with 404.
func methodNotImplemented(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, xrpcPrefix) {
		utils.WriteXRPCError(w, http.StatusNotFound, errNameNotFound, "")
		return
	}
	utils.WriteXRPCError(w, http.StatusNotImplemented, errNameMethodNotImplemented, "method not implemented: "+strings.TrimPrefix(r.URL.Path, xrpcPrefix))
}
