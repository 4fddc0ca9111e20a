package mockdb

import (
	"context"

	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (d *DB) GetProfile(ctx context.Context, sleeperUserID string) (*model.ManagerProfile, error) {
	args := d.Called(ctx, sleeperUserID)

	var p *model.ManagerProfile
	if args.Get(0) != nil {
		p = args.Get(0).(*model.ManagerProfile)
	}

	return p, args.Error(1)
}

func (d *DB) UpsertPendingVerification(ctx context.Context, v *model.PendingVerification) error {
	args := d.Called(ctx, v)
	return args.Error(0)
}

func (d *DB) SaveVerifiedSession(ctx context.Context, s *model.Session) error {
	args := d.Called(ctx, s)
	return args.Error(0)
}

func (d *DB) UpdateProfileFields(ctx context.Context, sleeperUserID string, u model.ProfileUpdate) (*model.ManagerProfile, error) {
	args := d.Called(ctx, sleeperUserID, u)

	var p *model.ManagerProfile
	if args.Get(0) != nil {
		p = args.Get(0).(*model.ManagerProfile)
	}

	return p, args.Error(1)
}

func (d *DB) ListVerifiedProfiles(ctx context.Context) ([]model.ManagerProfile, error) {
	args := d.Called(ctx)

	var res []model.ManagerProfile
	if args.Get(0) != nil {
		res = args.Get(0).([]model.ManagerProfile)
	}

	return res, args.Error(1)
}

// Provider is a db.Provider that returns the mock, or Err when it is set.
type Provider struct {
	DB  *DB
	Err error
}

func (p *Provider) Get(_ context.Context) (db.DB, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.DB, nil
}
