package policy

import (
	"errors"
	"fmt"
)

var ErrInvalidPolicy = errors.New("invalid policy")

// ConfigError reports a malformed or incomplete policy document.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("policy %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidPolicy
}
