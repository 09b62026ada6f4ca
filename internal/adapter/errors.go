package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrRateLimited         = errors.New("rate limited")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrDIDNotFound = errors.New("did was not found")
	ErrInvalidDID  = errors.New("invalid did")
)

// XRPCError is a failed XRPC or directory call. Name and Message come from
// the standard {"error", "message"} body when the remote sent one.
type XRPCError struct {
	StatusCode int
	Name       string
	Message    string

	kind error
}

func (e *XRPCError) Error() string {
	switch {
	case e.Name != "" && e.Message != "":
		return fmt.Sprintf("%s: %s (%s)", e.kind, e.Name, e.Message)
	case e.Name != "":
		return fmt.Sprintf("%s: %s", e.kind, e.Name)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.kind, e.Message)
	}
	return fmt.Sprintf("%s: http %d", e.kind, e.StatusCode)
}

// Unwrap returns the sentinel error matching the status code.
func (e *XRPCError) Unwrap() error {
	return e.kind
}
