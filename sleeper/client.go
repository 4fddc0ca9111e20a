package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdag/league-page/model"
)

const SleeperURL = "https://api.sleeper.app"

var (
	ErrUserNotFound    = errors.New("sleeper user not found")
	ErrLeagueNotFound  = errors.New("sleeper league not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Client is the subset of the Sleeper API used to verify and describe
// league managers.
type Client interface {
	// GetUser looks a user up by username or by user id. Sleeper accepts
	// both on the same endpoint.
	GetUser(ctx context.Context, usernameOrID string) (*model.SleeperUser, error)
	// GetLeagueUsers lists the users that own a team in the league.
	GetLeagueUsers(ctx context.Context, leagueID string) ([]model.SleeperUser, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	return NewWithURL(SleeperURL)
}

// NewWithURL creates a client for a Sleeper compatible API at baseURL.
func NewWithURL(baseURL string) (Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid sleeper url %q: %w", baseURL, err)
	}
	c := &client{
		url: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *client) GetUser(ctx context.Context, usernameOrID string) (*model.SleeperUser, error) {
	usernameOrID = strings.TrimSpace(usernameOrID)
	if usernameOrID == "" {
		return nil, fmt.Errorf("%w: username or id must not be empty", ErrInvalidArgument)
	}

	var u *sleeperUser
	found, err := c.get(ctx, fmt.Sprintf("%s/v1/user/%s", c.url, url.PathEscape(usernameOrID)), &u)
	if err != nil {
		return nil, err
	}
	// Sleeper answers unknown users with either a 404 or a 200 and a "null" body.
	if !found || u == nil || u.UserID == "" {
		return nil, ErrUserNotFound
	}

	return u.toSleeperUser(), nil
}

func (c *client) GetLeagueUsers(ctx context.Context, leagueID string) ([]model.SleeperUser, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id must not be empty", ErrInvalidArgument)
	}

	var users []sleeperUser
	found, err := c.get(ctx, fmt.Sprintf("%s/v1/league/%s/users", c.url, url.PathEscape(leagueID)), &users)
	if err != nil {
		return nil, err
	}
	if !found || users == nil {
		return nil, ErrLeagueNotFound
	}

	result := make([]model.SleeperUser, 0, len(users))
	for _, u := range users {
		if u.UserID == "" {
			continue
		}
		result = append(result, *u.toSleeperUser())
	}
	return result, nil
}

// get decodes the JSON body of a GET request into v. found is false when
// Sleeper responds with a non-success status.
func (c *client) get(ctx context.Context, u string, v any) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return true, nil
}
