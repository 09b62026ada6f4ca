package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrInvalidHandle      = errors.New("invalid handle")
	ErrUnsupportedDomain  = errors.New("handle domain is not served by this server")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid identifier or password")

	ErrAccountAlreadyExists = errors.New("handle or email already taken")
	ErrAccountNotFound      = errors.New("account not found")

	ErrInviteCodeRequired = errors.New("invite code required")
	ErrInvalidInviteCode  = errors.New("invite code is invalid or used up")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrHandleNotFound       = errors.New("unable to resolve handle")
	ErrIncompatibleDIDDoc   = errors.New("did document does not point to this server")
	ErrTestRegistryDisabled = errors.New("test name registry is only available in debug mode")
	ErrDIDResolutionFailed  = errors.New("did resolution failed")
	ErrInvalidDID           = errors.New("invalid did")

	ErrBlobTooLarge = errors.New("blob is too large")
	ErrBlobNotFound = errors.New("blob not found")

	ErrInvalidMail     = errors.New("invalid mail")
	ErrMailRateLimited = errors.New("too many mails sent, try again later")
	ErrInvalidSMTPURL  = errors.New("invalid smtp url")
)
