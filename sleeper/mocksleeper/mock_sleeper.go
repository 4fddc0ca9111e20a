package mocksleeper

import (
	"context"

	"github.com/pdag/league-page/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetUser(ctx context.Context, usernameOrID string) (*model.SleeperUser, error) {
	args := c.Called(ctx, usernameOrID)

	var u *model.SleeperUser
	if args.Get(0) != nil {
		u = args.Get(0).(*model.SleeperUser)
	}

	return u, args.Error(1)
}

func (c *Client) GetLeagueUsers(ctx context.Context, leagueID string) ([]model.SleeperUser, error) {
	args := c.Called(ctx, leagueID)

	var res []model.SleeperUser
	if args.Get(0) != nil {
		res = args.Get(0).([]model.SleeperUser)
	}

	return res, args.Error(1)
}
