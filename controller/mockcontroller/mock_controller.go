package mockcontroller

import (
	"context"

	"github.com/pdag/league-page/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) StartVerification(ctx context.Context, username string) (*model.PendingVerification, error) {
	args := c.Called(ctx, username)

	var v *model.PendingVerification
	if args.Get(0) != nil {
		v = args.Get(0).(*model.PendingVerification)
	}

	return v, args.Error(1)
}

func (c *C) CompleteVerification(ctx context.Context, sleeperUserID string) (*model.Session, error) {
	args := c.Called(ctx, sleeperUserID)

	var s *model.Session
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Session)
	}

	return s, args.Error(1)
}

func (c *C) ValidateSession(ctx context.Context, cookieValue string) (string, bool) {
	args := c.Called(ctx, cookieValue)
	return args.String(0), args.Bool(1)
}

func (c *C) GetProfile(ctx context.Context, sleeperUserID string) (*model.OwnProfile, error) {
	args := c.Called(ctx, sleeperUserID)

	var p *model.OwnProfile
	if args.Get(0) != nil {
		p = args.Get(0).(*model.OwnProfile)
	}

	return p, args.Error(1)
}

func (c *C) UpdateProfile(ctx context.Context, sleeperUserID string, fields map[string]any) (*model.ManagerProfile, error) {
	args := c.Called(ctx, sleeperUserID, fields)

	var p *model.ManagerProfile
	if args.Get(0) != nil {
		p = args.Get(0).(*model.ManagerProfile)
	}

	return p, args.Error(1)
}

func (c *C) ListProfiles(ctx context.Context) []model.ManagerProfile {
	args := c.Called(ctx)

	var res []model.ManagerProfile
	if args.Get(0) != nil {
		res = args.Get(0).([]model.ManagerProfile)
	}

	return res
}

func (c *C) ListManagers(ctx context.Context) []model.Manager {
	args := c.Called(ctx)

	var res []model.Manager
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Manager)
	}

	return res
}

func (c *C) GetManager(ctx context.Context, managerID string) (*model.Manager, error) {
	args := c.Called(ctx, managerID)

	var m *model.Manager
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Manager)
	}

	return m, args.Error(1)
}
