package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/model"
	"github.com/pdag/league-page/sleeper"
)

func (c *controller) StartVerification(ctx context.Context, username string) (*model.PendingVerification, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	store, err := c.dbs.Get(ctx)
	if err != nil {
		return nil, storeError("start verification", err)
	}

	user, err := c.sleeper.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, sleeper.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, username)
		}
		return nil, fmt.Errorf("%w: looking up %s: %w", ErrUpstreamFetchFailed, username, err)
	}

	members, err := c.roster.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading league members: %w", ErrUpstreamFetchFailed, err)
	}
	if _, ok := members[user.UserID]; !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotInLeague, username, user.UserID)
	}

	v := &model.PendingVerification{
		SleeperUserID:   user.UserID,
		SleeperUsername: user.Handle(),
		Code:            c.tokens.GenerateCode(),
		ExpiresAt:       c.now().Add(c.verificationTTL),
	}
	if err := store.UpsertPendingVerification(ctx, v); err != nil {
		return nil, storeError("start verification", err)
	}

	log.Printf("verification started for sleeper user %s (%s)", v.SleeperUserID, v.SleeperUsername)
	return v, nil
}

func (c *controller) CompleteVerification(ctx context.Context, sleeperUserID string) (*model.Session, error) {
	sleeperUserID = strings.TrimSpace(sleeperUserID)
	if sleeperUserID == "" {
		return nil, ErrUserIDRequired
	}

	store, err := c.dbs.Get(ctx)
	if err != nil {
		return nil, storeError("complete verification", err)
	}

	p, err := store.GetProfile(ctx, sleeperUserID)
	if err != nil {
		if errors.Is(err, db.ErrProfileNotFound) {
			return nil, ErrNoPendingVerification
		}
		return nil, storeError("complete verification", err)
	}
	if !p.HasPendingVerification() {
		return nil, ErrNoPendingVerification
	}

	now := c.now()
	if p.VerificationExpired(now) {
		return nil, ErrVerificationExpired
	}

	user, err := c.sleeper.GetUser(ctx, sleeperUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetchFailed, err)
	}

	if !strings.Contains(verificationCorpus(user), p.VerificationCode) {
		return nil, &CodeNotFoundError{Code: p.VerificationCode}
	}

	s := &model.Session{
		SleeperUserID: sleeperUserID,
		Token:         c.tokens.GenerateSessionToken(),
		IssuedAt:      now,
		ExpiresAt:     now.Add(c.sessionTTL),
	}
	if err := store.SaveVerifiedSession(ctx, s); err != nil {
		return nil, storeError("complete verification", err)
	}

	log.Printf("sleeper user %s verified", sleeperUserID)
	return s, nil
}

// verificationCorpus joins every place a user could have put the code: the
// bio-like metadata field, the display name, the team name and, as a catch
// all, the whole metadata object serialized as JSON.
func verificationCorpus(u *model.SleeperUser) string {
	bio := u.MetadataString("team_name")
	if bio == "" {
		bio = u.MetadataString("mention_pn")
	}

	var metadata string
	if u.Metadata != nil {
		if b, err := json.Marshal(u.Metadata); err == nil {
			metadata = string(b)
		}
	}

	return strings.Join([]string{
		bio,
		u.DisplayName,
		u.MetadataString("team_name"),
		metadata,
	}, " ")
}
