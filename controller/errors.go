package controller

import (
	"errors"
	"fmt"

	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/model"
)

var (
	ErrNotConfigured         = db.ErrNotConfigured
	ErrUsernameRequired      = errors.New("sleeper username is required")
	ErrUserIDRequired        = errors.New("sleeper user id is required")
	ErrAccountNotFound       = errors.New("sleeper account not found")
	ErrNotInLeague           = errors.New("sleeper account is not a member of this league")
	ErrNoPendingVerification = errors.New("no pending verification")
	ErrVerificationExpired   = errors.New("verification code has expired")
	ErrCodeNotFound          = errors.New("verification code not found")
	ErrUpstreamFetchFailed   = errors.New("failed to fetch sleeper data")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrPersistenceFailure    = errors.New("persistence failure")
	ErrInvalidProfile        = model.ErrInvalidProfileField
	ErrManagerNotFound       = errors.New("manager not found")
)

// CodeNotFoundError is returned when the expected code is not in the user's
// Sleeper profile. It matches ErrCodeNotFound with errors.Is.
type CodeNotFoundError struct {
	Code string
}

func (e *CodeNotFoundError) Error() string {
	return fmt.Sprintf("verification code %s not found in sleeper profile", e.Code)
}

func (e *CodeNotFoundError) Is(target error) bool {
	return target == ErrCodeNotFound
}

// storeError classifies an error from the db layer. A missing configuration
// stays ErrNotConfigured, everything else is a persistence failure.
func storeError(op string, err error) error {
	if errors.Is(err, db.ErrNotConfigured) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistenceFailure, err)
}
