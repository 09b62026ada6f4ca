package config

import (
	"errors"
	"fmt"
)

// ErrMissingRequiredConfig is matched (via [errors.Is]) by every
// [*MissingRequiredConfigError]. A configuration that fails with it cannot be
// used and the process should abort startup.
var ErrMissingRequiredConfig = errors.New("missing required config")

// ErrInvalidConfig is matched by every [*InvalidConfigError].
var ErrInvalidConfig = errors.New("invalid config")

// MissingRequiredConfigError reports a required value that neither the
// overrides nor the environment supplied.
type MissingRequiredConfigError struct {
	// Key is the environment key of the missing value (e.g. "RECOVERY_KEY").
	Key string
}

func (e *MissingRequiredConfigError) Error() string {
	return fmt.Sprintf("no value provided for %s", e.Key)
}

func (e *MissingRequiredConfigError) Unwrap() error {
	return ErrMissingRequiredConfig
}

// InvalidConfigError reports a value outside the accepted set of its field.
type InvalidConfigError struct {
	Field string
	Value string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}
