package model

import (
	"strings"
	"time"
)

// SessionCookieName is the cookie that carries "{sleeper_user_id}:{session_token}".
const SessionCookieName = "manager_session"

// ManagerProfile is a row of the manager_profiles table. It is keyed by the
// manager's Sleeper user id. Empty strings and zero times are stored as NULL.
type ManagerProfile struct {
	SleeperUserID    string `json:"sleeper_user_id"`
	SleeperUsername  string `json:"sleeper_username"`
	Name             string `json:"name"`
	Location         string `json:"location"`
	Bio              string `json:"bio"`
	PhotoURL         string `json:"photo_url"`
	FantasyStartYear int    `json:"fantasy_start_year,omitempty"`
	FavoriteTeam     string `json:"favorite_team"`
	Mode             string `json:"mode"`
	RivalName        string `json:"rival_name"`
	RivalManagerID   string `json:"rival_manager_id"`
	FavoritePlayerID string `json:"favorite_player_id"`
	ValuePosition    string `json:"value_position"`
	RookieOrVets     string `json:"rookie_or_vets"`
	Philosophy       string `json:"philosophy"`
	TradingScale     int    `json:"trading_scale,omitempty"`
	PreferredContact string `json:"preferred_contact"`

	// Verification and session state never leaves the server.
	IsVerified            bool      `json:"-"`
	VerificationCode      string    `json:"-"`
	VerificationExpiresAt time.Time `json:"-"`
	SessionToken          string    `json:"-"`
	SessionExpiresAt      time.Time `json:"-"`
	LastVerifiedAt        time.Time `json:"-"`
	Created               time.Time `json:"-"`
	Updated               time.Time `json:"-"`
}

// HasPendingVerification reports whether a verification code has been issued
// and not yet consumed.
func (p *ManagerProfile) HasPendingVerification() bool {
	return p.VerificationCode != ""
}

// VerificationExpired reports whether the pending code is past its expiry at
// time now. A code expires strictly after VerificationExpiresAt.
func (p *ManagerProfile) VerificationExpired(now time.Time) bool {
	return now.After(p.VerificationExpiresAt)
}

// SessionValid reports whether token is the profile's current, unexpired
// session token.
func (p *ManagerProfile) SessionValid(token string, now time.Time) bool {
	if !p.IsVerified || p.SessionToken == "" {
		return false
	}
	if p.SessionToken != token {
		return false
	}
	return !now.After(p.SessionExpiresAt)
}

// SleeperUser is an account as returned by the Sleeper user API.
type SleeperUser struct {
	UserID      string
	Username    string
	DisplayName string
	Avatar      string
	Metadata    map[string]any
}

// Handle is the name stored as sleeper_username: the username, or the display
// name when Sleeper has no username for the account.
func (u *SleeperUser) Handle() string {
	if u.Username != "" {
		return u.Username
	}
	return u.DisplayName
}

// MetadataString returns metadata[key] if it is a string, "" otherwise.
func (u *SleeperUser) MetadataString(key string) string {
	if u.Metadata == nil {
		return ""
	}
	s, _ := u.Metadata[key].(string)
	return s
}

// PendingVerification is the result of starting a verification: the code the
// manager has to place in their Sleeper profile.
type PendingVerification struct {
	SleeperUserID   string
	SleeperUsername string
	Code            string
	ExpiresAt       time.Time
}

// Session is an issued manager session.
type Session struct {
	SleeperUserID string
	Token         string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

func (s *Session) CookieValue() string {
	return s.SleeperUserID + ":" + s.Token
}

// ParseSessionCookie splits a cookie value of the form "{id}:{token}". ok is
// false when the separator is missing or either part is empty.
func ParseSessionCookie(v string) (id, token string, ok bool) {
	id, token, found := strings.Cut(v, ":")
	if !found || id == "" || token == "" {
		return "", "", false
	}
	return id, token, true
}

// OwnProfile is what a signed in manager sees of their own profile.
type OwnProfile struct {
	ManagerProfile
	SleeperDisplayName string `json:"sleeper_display_name"`
}
