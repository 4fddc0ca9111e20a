package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pdag/league-page/controller"
	"github.com/unrolled/render"
)

// ErrBadRequest is returned for request bodies that cannot be decoded.
var ErrBadRequest = errors.New("invalid request body")

type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{controller.ErrNotConfigured, http.StatusInternalServerError, "Database not configured"},
	{controller.ErrUsernameRequired, http.StatusBadRequest, "Sleeper username is required"},
	{controller.ErrUserIDRequired, http.StatusBadRequest, "Sleeper user ID is required"},
	{controller.ErrAccountNotFound, http.StatusNotFound, "Sleeper user not found"},
	{controller.ErrNotInLeague, http.StatusForbidden, "This Sleeper account is not a member of this league"},
	{controller.ErrNoPendingVerification, http.StatusNotFound, "No pending verification found. Please start verification again."},
	{controller.ErrVerificationExpired, http.StatusBadRequest, "Verification code has expired. Please start again."},
	{controller.ErrUpstreamFetchFailed, http.StatusInternalServerError, "Failed to fetch Sleeper user data"},
	{controller.ErrNotAuthenticated, http.StatusUnauthorized, "Not authenticated"},
	{controller.ErrManagerNotFound, http.StatusNotFound, "Manager not found"},
	{ErrBadRequest, http.StatusBadRequest, "Invalid request body"},
}

// statusForError maps a controller error to the status code and the message
// shown to the client. fallback is used for persistence and unknown errors so
// that internal details stay in the server log.
func statusForError(err error, fallback string) (int, string) {
	var codeErr *controller.CodeNotFoundError
	if errors.As(err, &codeErr) {
		return http.StatusBadRequest, fmt.Sprintf(
			"Verification code not found. Please add %q to your Sleeper team name or display name, then try again.", codeErr.Code)
	}
	if errors.Is(err, controller.ErrInvalidProfile) {
		return http.StatusBadRequest, err.Error()
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, fallback
}

func writeError(w http.ResponseWriter, render *render.Render, err error, fallback string) {
	status, msg := statusForError(err, fallback)
	if status >= http.StatusInternalServerError {
		log.Printf("%s: %v", fallback, err)
	}
	render.JSON(w, status, map[string]string{"error": msg})
}
