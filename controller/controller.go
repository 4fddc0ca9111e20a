package controller

import (
	"context"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/league"
	"github.com/pdag/league-page/model"
	"github.com/pdag/league-page/sleeper"
	"github.com/pdag/league-page/token"
)

const (
	DefaultVerificationTTL = 30 * time.Minute
	DefaultSessionTTL      = 30 * 24 * time.Hour
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Looks the Sleeper user up, checks they belong to the league and issues a
	// verification code that the user has to add to their Sleeper profile.
	StartVerification(ctx context.Context, username string) (*model.PendingVerification, error)
	// Checks that the pending code shows up in the user's Sleeper profile and
	// issues a session on success.
	CompleteVerification(ctx context.Context, sleeperUserID string) (*model.Session, error)
	// Returns the Sleeper user id of a valid session cookie value.
	ValidateSession(ctx context.Context, cookieValue string) (string, bool)

	GetProfile(ctx context.Context, sleeperUserID string) (*model.OwnProfile, error)
	// Applies the allow-listed fields of a decoded JSON body. Anything else in
	// the body is ignored.
	UpdateProfile(ctx context.Context, sleeperUserID string, fields map[string]any) (*model.ManagerProfile, error)

	// Lists the public profiles of verified managers. Never fails, an
	// unavailable database results in an empty list.
	ListProfiles(ctx context.Context) []model.ManagerProfile
	// The static managers merged with the verified profiles. Never fails, an
	// unavailable database results in the static list.
	ListManagers(ctx context.Context) []model.Manager
	GetManager(ctx context.Context, managerID string) (*model.Manager, error)
}

type Options struct {
	VerificationTTL time.Duration
	SessionTTL      time.Duration
}

type controller struct {
	clock   clock.Clock
	dbs     db.Provider
	sleeper sleeper.Client
	roster  league.Roster
	static  *league.Static
	tokens  token.Generator

	verificationTTL time.Duration
	sessionTTL      time.Duration
}

func New(clock clock.Clock, dbs db.Provider, sleeper sleeper.Client, roster league.Roster, static *league.Static, tokens token.Generator, opts Options) (C, error) {
	if static == nil {
		static = &league.Static{}
	}
	if tokens == nil {
		tokens = token.New()
	}

	c := &controller{
		clock:           clock,
		dbs:             dbs,
		sleeper:         sleeper,
		roster:          roster,
		static:          static,
		tokens:          tokens,
		verificationTTL: opts.VerificationTTL,
		sessionTTL:      opts.SessionTTL,
	}
	if c.verificationTTL <= 0 {
		c.verificationTTL = DefaultVerificationTTL
	}
	if c.sessionTTL <= 0 {
		c.sessionTTL = DefaultSessionTTL
	}
	return c, nil
}

func (c *controller) now() time.Time {
	return c.clock.Now().UTC()
}
