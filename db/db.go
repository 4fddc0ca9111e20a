package db

import (
	"context"

	"github.com/pdag/league-page/model"
)

// DB stores manager profiles keyed by Sleeper user id.
type DB interface {
	GetProfile(ctx context.Context, sleeperUserID string) (*model.ManagerProfile, error)

	// Creates the profile if needed and stores a new pending verification code,
	// replacing any previous code. The profile is marked as not verified and any
	// session it had is dropped.
	UpsertPendingVerification(ctx context.Context, v *model.PendingVerification) error

	// Marks the profile as verified with the given session and clears the
	// pending verification code.
	SaveVerifiedSession(ctx context.Context, s *model.Session) error

	// Writes the editable fields in u and returns the updated profile.
	UpdateProfileFields(ctx context.Context, sleeperUserID string, u model.ProfileUpdate) (*model.ManagerProfile, error)

	// Lists all verified profiles, oldest first.
	ListVerifiedProfiles(ctx context.Context) ([]model.ManagerProfile, error)
}
