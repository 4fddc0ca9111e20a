package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/pdag/league-page/containers"
	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/model"
)

// TestNow is the time the TestDB clock starts at.
var TestNow = time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()

	clock := clock.NewMock()
	clock.Set(TestNow)

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		container.Shutdown()
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// Reset empties the profile table.
func (db *TestDB) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.container.Reset(ctx)
}

// InsertVerifiedProfile stores a verified profile with the given session
// token, as if the manager had gone through verification.
func InsertVerifiedProfile(d db.DB, id, username, token string, sessionExpires time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := d.UpsertPendingVerification(ctx, &model.PendingVerification{
		SleeperUserID:   id,
		SleeperUsername: username,
		Code:            SleeperUserCode,
		ExpiresAt:       sessionExpires,
	})
	if err != nil {
		return err
	}

	return d.SaveVerifiedSession(ctx, &model.Session{
		SleeperUserID: id,
		Token:         token,
		IssuedAt:      TestNow,
		ExpiresAt:     sessionExpires,
	})
}
