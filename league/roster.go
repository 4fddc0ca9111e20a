package league

import (
	"context"
	"errors"

	"github.com/pdag/league-page/model"
	"github.com/pdag/league-page/sleeper"
)

var ErrNoLeague = errors.New("no sleeper league configured")

// Roster answers who is a member of the league.
type Roster interface {
	// Members returns the league's users keyed by Sleeper user id.
	Members(ctx context.Context) (map[string]model.SleeperUser, error)
}

type sleeperRoster struct {
	client   sleeper.Client
	leagueID string
}

// NewSleeperRoster looks league members up through the Sleeper league users
// API on every call.
func NewSleeperRoster(client sleeper.Client, leagueID string) Roster {
	return &sleeperRoster{client: client, leagueID: leagueID}
}

func (r *sleeperRoster) Members(ctx context.Context) (map[string]model.SleeperUser, error) {
	if r.leagueID == "" {
		return nil, ErrNoLeague
	}
	users, err := r.client.GetLeagueUsers(ctx, r.leagueID)
	if err != nil {
		return nil, err
	}
	return byUserID(users), nil
}

type fixedRoster map[string]model.SleeperUser

// FixedRoster is a Roster with a fixed set of members.
func FixedRoster(users ...model.SleeperUser) Roster {
	return fixedRoster(byUserID(users))
}

func (r fixedRoster) Members(_ context.Context) (map[string]model.SleeperUser, error) {
	return r, nil
}

func byUserID(users []model.SleeperUser) map[string]model.SleeperUser {
	m := make(map[string]model.SleeperUser, len(users))
	for _, u := range users {
		m[u.UserID] = u
	}
	return m
}
