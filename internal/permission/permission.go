// Package permission validates permission-mode tokens against the token
// set registered for each provider family. Validation is family-aware: a
// token valid for one family passed to another is an error, not a silent
// pass-through.
package permission

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"agentrelay/internal/wire"
)

// ErrUnknownProvider is returned for a provider outside the registered
// discriminant set.
var ErrUnknownProvider = errors.New("unknown provider")

// InvalidTokenError reports a permission-mode token outside the set valid
// for its provider family.
type InvalidTokenError struct {
	Provider wire.Provider
	Token    string
	Allowed  []string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("permission mode %q not valid for %s (allowed: %s)",
		e.Token, e.Provider, strings.Join(e.Allowed, ", "))
}

// Modes returns the closed token set for a provider family.
func Modes(provider wire.Provider) ([]string, error) {
	family, ok := wire.Lookup(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return slices.Clone(family.PermissionModes), nil
}

// Validate checks a token against the provider family's set.
func Validate(provider wire.Provider, token string) error {
	modes, err := Modes(provider)
	if err != nil {
		return err
	}
	if slices.Contains(modes, token) {
		return nil
	}
	return &InvalidTokenError{Provider: provider, Token: token, Allowed: modes}
}
