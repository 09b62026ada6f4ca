package service

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// maxPasswordLength is the bcrypt input limit.
const maxPasswordLength = 72

var handleRegexp = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]([a-z0-9-]{0,61}[a-z0-9])?$`)

func normalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

// validateHandle checks the handle syntax and that it is exactly one label
// below one of domains.
func validateHandle(handle string, domains []string) error {
	if len(handle) > 253 || !handleRegexp.MatchString(handle) {
		return fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}

	for _, domain := range domains {
		label, ok := strings.CutSuffix(handle, domain)
		if !ok || label == "" {
			continue
		}
		if strings.Contains(label, ".") {
			return fmt.Errorf("%w: %q has more than one label before %q", ErrInvalidHandle, handle, domain)
		}
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnsupportedDomain, handle)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: must be between 1 and %d bytes", ErrInvalidPassword, maxPasswordLength)
	}
	return nil
}
