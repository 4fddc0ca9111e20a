package controller

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/model"
)

func (c *controller) ValidateSession(ctx context.Context, cookieValue string) (string, bool) {
	id, tkn, ok := model.ParseSessionCookie(cookieValue)
	if !ok {
		return "", false
	}

	store, err := c.dbs.Get(ctx)
	if err != nil {
		if !errors.Is(err, db.ErrNotConfigured) {
			log.Printf("error validating session for %s: %v", id, err)
		}
		return "", false
	}

	p, err := store.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, db.ErrProfileNotFound) {
			log.Printf("error validating session for %s: %v", id, err)
		}
		return "", false
	}

	if !p.SessionValid(tkn, c.now()) {
		return "", false
	}
	return id, true
}

func (c *controller) GetProfile(ctx context.Context, sleeperUserID string) (*model.OwnProfile, error) {
	store, err := c.dbs.Get(ctx)
	if err != nil {
		return nil, storeError("get profile", err)
	}

	p, err := store.GetProfile(ctx, sleeperUserID)
	if err != nil {
		if errors.Is(err, db.ErrProfileNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, storeError("get profile", err)
	}

	return &model.OwnProfile{
		ManagerProfile:     *p,
		SleeperDisplayName: c.sleeperDisplayName(ctx, p),
	}, nil
}

// sleeperDisplayName prefers the display name the league knows the manager by.
func (c *controller) sleeperDisplayName(ctx context.Context, p *model.ManagerProfile) string {
	members, err := c.roster.Members(ctx)
	if err != nil {
		log.Printf("error loading league members for display name of %s: %v", p.SleeperUserID, err)
		return p.SleeperUsername
	}
	if u, ok := members[p.SleeperUserID]; ok {
		if u.DisplayName != "" {
			return u.DisplayName
		}
		if u.Username != "" {
			return u.Username
		}
	}
	return p.SleeperUsername
}

func (c *controller) UpdateProfile(ctx context.Context, sleeperUserID string, fields map[string]any) (*model.ManagerProfile, error) {
	u, err := model.SanitizeProfileUpdate(fields)
	if err != nil {
		return nil, err
	}

	store, err := c.dbs.Get(ctx)
	if err != nil {
		return nil, storeError("update profile", err)
	}

	p, err := store.UpdateProfileFields(ctx, sleeperUserID, u)
	if err != nil {
		if errors.Is(err, db.ErrProfileNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, storeError("update profile", err)
	}
	return p, nil
}

func (c *controller) ListProfiles(ctx context.Context) []model.ManagerProfile {
	store, err := c.dbs.Get(ctx)
	if err != nil {
		if !errors.Is(err, db.ErrNotConfigured) {
			log.Printf("error listing profiles: %v", err)
		}
		return []model.ManagerProfile{}
	}

	profiles, err := store.ListVerifiedProfiles(ctx)
	if err != nil {
		log.Printf("error listing profiles: %v", err)
		return []model.ManagerProfile{}
	}
	if profiles == nil {
		profiles = []model.ManagerProfile{}
	}
	return profiles
}

func (c *controller) ListManagers(ctx context.Context) []model.Manager {
	return model.MergeManagers(c.static.ManagerList(), c.ListProfiles(ctx))
}

func (c *controller) GetManager(ctx context.Context, managerID string) (*model.Manager, error) {
	for _, m := range c.ListManagers(ctx) {
		if m.ManagerID == managerID {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrManagerNotFound, managerID)
}
