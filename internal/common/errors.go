// Package common defines shared constants and sentinel errors used across
// client layers of moviecat. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Local validation errors. Concrete failures wrap ErrValidation.
	ErrValidation       = errors.New("validation error")
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrNoUser           = fmt.Errorf("%w: no user id in session", ErrValidation)
	ErrEmptyComment     = fmt.Errorf("%w: comment is empty", ErrValidation)

	// Role gate for mutation controls. The remote service re-checks roles.
	ErrForbidden = errors.New("admin role required")
)
