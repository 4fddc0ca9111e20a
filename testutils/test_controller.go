package testutils

import (
	"log"

	"github.com/itbasis/go-clock"
	"github.com/pdag/league-page/controller"
	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/league"
	"github.com/pdag/league-page/sleeper"
	"github.com/pdag/league-page/token"
)

// TestSessionToken is the session token issued by controllers built with
// NewTestController.
const TestSessionToken = "TestSessionTokenTestSessionTokenTestSessionTokenTestSessionToken"

// TestController wires a real controller to the test database and a fake
// Sleeper server. Codes and session tokens are fixed.
type TestController struct {
	Clock       *clock.Mock
	Controller  controller.C
	fakeSleeper *FakeSleeperServer
}

func (c *TestController) Close() {
	c.fakeSleeper.Close()
}

func NewTestController(testDB *TestDB, static *league.Static) *TestController {
	fakeSleeper := NewFakeSleeperServer()
	client := sleeper.NewForTest(fakeSleeper.URL())

	ctrl, err := controller.New(
		testDB.Clock,
		db.Ready(testDB.DB),
		client,
		league.NewSleeperRoster(client, TestLeagueID),
		static,
		token.Fixed{Code: SleeperUserCode, SessionToken: TestSessionToken},
		controller.Options{},
	)
	if err != nil {
		fakeSleeper.Close()
		log.Fatalf("error creating test controller: %v", err)
	}

	return &TestController{
		Clock:       testDB.Clock,
		Controller:  ctrl,
		fakeSleeper: fakeSleeper,
	}
}
