package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidInput         = errors.New("invalid input")
	ErrForbidden            = errors.New("forbidden")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidRefreshToken  = errors.New("invalid or revoked refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrInvalidActivationKey = errors.New("invalid, expired or already used activation key")
	// ErrOperationFailed marks an add or edit the store refused.
	ErrOperationFailed = errors.New("operation failed")
)

// mutationFailed wraps a store error from an add or edit. Both the sentinel
// and the cause stay reachable through errors.Is.
func mutationFailed(action, entity string, err error) error {
	return fmt.Errorf("%w: failed to %s %s: %w", ErrOperationFailed, action, entity, err)
}
