package controller

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/db/mockdb"
	"github.com/pdag/league-page/league"
	"github.com/pdag/league-page/model"
	"github.com/pdag/league-page/sleeper"
	"github.com/pdag/league-page/sleeper/mocksleeper"
	"github.com/pdag/league-page/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)

const (
	testUserID  = "12345678"
	testCode    = "QX7K2M"
	testSession = "SessionTokenSessionTokenSessionTokenSessionTokenSessionToken1234"
)

var leagueMember = model.SleeperUser{UserID: testUserID, Username: "sleeperuser", DisplayName: "SleeperUser"}

type fixture struct {
	clock    *clock.Mock
	db       *mockdb.DB
	provider *mockdb.Provider
	sleeper  *mocksleeper.Client
	ctrl     C
}

func newFixture(t *testing.T, static *league.Static) *fixture {
	t.Helper()

	f := &fixture{
		clock:   clock.NewMock(),
		db:      &mockdb.DB{},
		sleeper: &mocksleeper.Client{},
	}
	f.clock.Set(testNow)
	f.provider = &mockdb.Provider{DB: f.db}

	ctrl, err := New(f.clock, f.provider, f.sleeper, league.FixedRoster(leagueMember), static,
		token.Fixed{Code: testCode, SessionToken: testSession}, Options{})
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	f.ctrl = ctrl
	return f
}

func pendingProfile(code string, expires time.Time) *model.ManagerProfile {
	return &model.ManagerProfile{
		SleeperUserID:         testUserID,
		SleeperUsername:       "sleeperuser",
		VerificationCode:      code,
		VerificationExpiresAt: expires,
	}
}

func TestStartVerification_success(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.sleeper.On("GetUser", ctx, "sleeperuser").Return(&model.SleeperUser{
		UserID:      testUserID,
		Username:    "sleeperuser",
		DisplayName: "SleeperUser",
	}, nil)
	f.db.On("UpsertPendingVerification", ctx, mock.MatchedBy(func(v *model.PendingVerification) bool {
		return v.SleeperUserID == testUserID &&
			v.SleeperUsername == "sleeperuser" &&
			v.Code == testCode &&
			v.ExpiresAt.Equal(testNow.Add(30*time.Minute))
	})).Return(nil)

	v, err := f.ctrl.StartVerification(ctx, "  sleeperuser ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, testCode, v.Code)
	assert.Equal(t, testUserID, v.SleeperUserID)
	assert.Equal(t, "sleeperuser", v.SleeperUsername)
	assert.True(t, v.ExpiresAt.Equal(testNow.Add(30*time.Minute)))

	f.db.AssertExpectations(t)
	f.sleeper.AssertExpectations(t)
}

func TestStartVerification_usernameFallsBackToDisplayName(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.sleeper.On("GetUser", ctx, "SleeperUser").Return(&model.SleeperUser{
		UserID:      testUserID,
		DisplayName: "SleeperUser",
	}, nil)
	f.db.On("UpsertPendingVerification", ctx, mock.MatchedBy(func(v *model.PendingVerification) bool {
		return v.SleeperUsername == "SleeperUser"
	})).Return(nil)

	v, err := f.ctrl.StartVerification(ctx, "SleeperUser")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "SleeperUser", v.SleeperUsername)
	f.db.AssertExpectations(t)
}

func TestStartVerification_notInLeague(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.sleeper.On("GetUser", ctx, "coach42").Return(&model.SleeperUser{
		UserID:   "42424242",
		Username: "coach42",
	}, nil)

	v, err := f.ctrl.StartVerification(ctx, "coach42")
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrNotInLeague)
	f.db.AssertNotCalled(t, "UpsertPendingVerification", mock.Anything, mock.Anything)
}

func TestStartVerification_errors(t *testing.T) {
	transport := errors.New("connection reset")
	persist := errors.New("disk full")

	tests := map[string]struct {
		username    string
		sleeperRes  *model.SleeperUser
		sleeperErr  error
		providerErr error
		upsertErr   error
		want        error
	}{
		"empty username":    {username: "  ", want: ErrUsernameRequired},
		"not configured":    {username: "sleeperuser", providerErr: db.ErrNotConfigured, want: ErrNotConfigured},
		"db unreachable":    {username: "sleeperuser", providerErr: errors.New("dial tcp"), want: ErrPersistenceFailure},
		"account not found": {username: "nobody", sleeperErr: sleeper.ErrUserNotFound, want: ErrAccountNotFound},
		"transport error":   {username: "sleeperuser", sleeperErr: transport, want: ErrUpstreamFetchFailed},
		"upsert fails":      {username: "sleeperuser", sleeperRes: &leagueMember, upsertErr: persist, want: ErrPersistenceFailure},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.provider.Err = tc.providerErr
			f.sleeper.On("GetUser", mock.Anything, strings.TrimSpace(tc.username)).Return(tc.sleeperRes, tc.sleeperErr)
			f.db.On("UpsertPendingVerification", mock.Anything, mock.Anything).Return(tc.upsertErr)

			v, err := f.ctrl.StartVerification(context.Background(), tc.username)
			assert.Nil(t, v)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCompleteVerification_codeInDisplayName(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	// Code issued at T, completed 29 minutes later.
	f.db.On("GetProfile", ctx, testUserID).Return(pendingProfile(testCode, testNow.Add(30*time.Minute)), nil)
	f.clock.Add(29 * time.Minute)
	completedAt := testNow.Add(29 * time.Minute)

	f.sleeper.On("GetUser", ctx, testUserID).Return(&model.SleeperUser{
		UserID:      testUserID,
		Username:    "sleeperuser",
		DisplayName: "Sleeper " + testCode,
		Metadata:    map[string]any{},
	}, nil)
	f.db.On("SaveVerifiedSession", ctx, mock.MatchedBy(func(s *model.Session) bool {
		return s.SleeperUserID == testUserID &&
			s.Token == testSession &&
			s.IssuedAt.Equal(completedAt) &&
			s.ExpiresAt.Equal(completedAt.Add(30*24*time.Hour))
	})).Return(nil)

	s, err := f.ctrl.CompleteVerification(ctx, testUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, testSession, s.Token)
	assert.Equal(t, testUserID+":"+testSession, s.CookieValue())
	f.db.AssertExpectations(t)
	f.sleeper.AssertExpectations(t)
}

func TestCompleteVerification_codeLocations(t *testing.T) {
	tests := map[string]struct {
		code string
		user model.SleeperUser
	}{
		"team name": {
			code: testCode,
			user: model.SleeperUser{UserID: testUserID, Metadata: map[string]any{"team_name": "Puk Nukem " + testCode}},
		},
		"mention metadata": {
			code: testCode,
			user: model.SleeperUser{UserID: testUserID, Metadata: map[string]any{"mention_pn": testCode}},
		},
		"unnamed metadata field": {
			code: testCode,
			user: model.SleeperUser{UserID: testUserID, Metadata: map[string]any{"avatar_caption": "verify " + testCode}},
		},
		"nested metadata value": {
			code: "AB12CD",
			user: model.SleeperUser{UserID: testUserID, Metadata: map[string]any{
				"profile": map[string]any{"about": map[string]any{"text": "xxAB12CDxx"}},
			}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			user := tc.user
			f.db.On("GetProfile", mock.Anything, testUserID).Return(pendingProfile(tc.code, testNow.Add(time.Minute)), nil)
			f.sleeper.On("GetUser", mock.Anything, testUserID).Return(&user, nil)
			f.db.On("SaveVerifiedSession", mock.Anything, mock.Anything).Return(nil)

			s, err := f.ctrl.CompleteVerification(context.Background(), testUserID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assert.Equal(t, testSession, s.Token)
			f.db.AssertCalled(t, "SaveVerifiedSession", mock.Anything, mock.Anything)
		})
	}
}

func TestCompleteVerification_expired(t *testing.T) {
	f := newFixture(t, nil)
	expires := testNow.Add(30 * time.Minute)
	f.db.On("GetProfile", mock.Anything, testUserID).Return(pendingProfile(testCode, expires), nil)
	f.sleeper.On("GetUser", mock.Anything, testUserID).Return(&model.SleeperUser{UserID: testUserID, DisplayName: testCode}, nil)

	f.clock.Set(expires.Add(time.Second))

	s, err := f.ctrl.CompleteVerification(context.Background(), testUserID)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrVerificationExpired)
	f.sleeper.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	f.db.AssertNotCalled(t, "SaveVerifiedSession", mock.Anything, mock.Anything)
}

func TestCompleteVerification_atExpiry(t *testing.T) {
	f := newFixture(t, nil)
	expires := testNow.Add(30 * time.Minute)
	f.db.On("GetProfile", mock.Anything, testUserID).Return(pendingProfile(testCode, expires), nil)
	f.sleeper.On("GetUser", mock.Anything, testUserID).Return(&model.SleeperUser{UserID: testUserID, DisplayName: testCode}, nil)
	f.db.On("SaveVerifiedSession", mock.Anything, mock.Anything).Return(nil)

	f.clock.Set(expires)

	_, err := f.ctrl.CompleteVerification(context.Background(), testUserID)
	assert.NoError(t, err)
}

func TestCompleteVerification_codeNotFound(t *testing.T) {
	tests := map[string]model.SleeperUser{
		"absent":         {UserID: testUserID, DisplayName: "SleeperUser", Metadata: map[string]any{"team_name": "Puk Nukem"}},
		"wrong case":     {UserID: testUserID, DisplayName: strings.ToLower(testCode)},
		"split by space": {UserID: testUserID, DisplayName: "QX7 K2M"},
		"nil metadata":   {UserID: testUserID},
	}

	for name, user := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			u := user
			f.db.On("GetProfile", mock.Anything, testUserID).Return(pendingProfile(testCode, testNow.Add(time.Minute)), nil)
			f.sleeper.On("GetUser", mock.Anything, testUserID).Return(&u, nil)

			s, err := f.ctrl.CompleteVerification(context.Background(), testUserID)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrCodeNotFound)

			var notFound *CodeNotFoundError
			if assert.ErrorAs(t, err, &notFound) {
				assert.Equal(t, testCode, notFound.Code)
			}
			assert.Contains(t, err.Error(), testCode)
			f.db.AssertNotCalled(t, "SaveVerifiedSession", mock.Anything, mock.Anything)
		})
	}
}

func TestCompleteVerification_errors(t *testing.T) {
	tests := map[string]struct {
		userID      string
		providerErr error
		profile     *model.ManagerProfile
		profileErr  error
		sleeperErr  error
		saveErr     error
		want        error
	}{
		"empty id":            {userID: "", want: ErrUserIDRequired},
		"not configured":      {userID: testUserID, providerErr: db.ErrNotConfigured, want: ErrNotConfigured},
		"no row":              {userID: testUserID, profileErr: db.ErrProfileNotFound, want: ErrNoPendingVerification},
		"no pending code":     {userID: testUserID, profile: &model.ManagerProfile{SleeperUserID: testUserID, IsVerified: true}, want: ErrNoPendingVerification},
		"db read error":       {userID: testUserID, profileErr: errors.New("timeout"), want: ErrPersistenceFailure},
		"sleeper user gone":   {userID: testUserID, profile: pendingProfile(testCode, testNow.Add(time.Minute)), sleeperErr: sleeper.ErrUserNotFound, want: ErrUpstreamFetchFailed},
		"sleeper unreachable": {userID: testUserID, profile: pendingProfile(testCode, testNow.Add(time.Minute)), sleeperErr: errors.New("EOF"), want: ErrUpstreamFetchFailed},
		"save fails":          {userID: testUserID, profile: pendingProfile(testCode, testNow.Add(time.Minute)), saveErr: errors.New("deadlock"), want: ErrPersistenceFailure},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.provider.Err = tc.providerErr
			f.db.On("GetProfile", mock.Anything, tc.userID).Return(tc.profile, tc.profileErr)

			var u *model.SleeperUser
			if tc.sleeperErr == nil {
				u = &model.SleeperUser{UserID: testUserID, DisplayName: testCode}
			}
			f.sleeper.On("GetUser", mock.Anything, tc.userID).Return(u, tc.sleeperErr)
			f.db.On("SaveVerifiedSession", mock.Anything, mock.Anything).Return(tc.saveErr)

			s, err := f.ctrl.CompleteVerification(context.Background(), tc.userID)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestVerificationCorpus(t *testing.T) {
	u := &model.SleeperUser{
		DisplayName: "Display",
		Metadata:    map[string]any{"team_name": "Team", "extra": "Hidden"},
	}
	corpus := verificationCorpus(u)
	assert.True(t, strings.HasPrefix(corpus, "Team Display Team "))
	assert.Contains(t, corpus, `"extra":"Hidden"`)

	u = &model.SleeperUser{DisplayName: "Display", Metadata: map[string]any{"mention_pn": "Mention"}}
	assert.True(t, strings.HasPrefix(verificationCorpus(u), "Mention Display  "))
}
