package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

const (
	// TestLeagueID is the only league the fake server knows about.
	TestLeagueID = "1005178517580746753"

	SleeperUserID       = "12345678"
	SleeperUsername     = "sleeperuser"
	SleeperDisplayName  = "SleeperUser"
	SleeperUserCode     = "QX7K2M"
	NotInLeagueUsername = "coach42"
	NotInLeagueUserID   = "42424242"
	// BrokenUsername makes the fake server fail with a 500.
	BrokenUsername = "broken"
)

type FakeSleeperServer struct {
	s *httptest.Server
}

func NewFakeSleeperServer() *FakeSleeperServer {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/league/{leagueID}/users", leagueUsersHandler)
		r.Get("/user/{usernameOrID}", sleeperUserHandler)
	})

	return &FakeSleeperServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

func leagueUsersHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") == TestLeagueID {
		serveFile(w, "league_users.json")
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func sleeperUserHandler(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "usernameOrID") {
	case SleeperUsername, SleeperUserID:
		serveFile(w, "sleeperuser.json")
	case NotInLeagueUsername, NotInLeagueUserID:
		serveFile(w, "coach42.json")
	case BrokenUsername:
		w.WriteHeader(http.StatusInternalServerError)
	default:
		// requesting a user that doesn't exist seems to return a 200 with "null" as the response body as of 2024-08-12
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
