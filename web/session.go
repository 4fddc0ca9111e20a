package web

import (
	"net/http"
	"time"

	"github.com/pdag/league-page/controller"
	"github.com/pdag/league-page/model"
)

// sessionUser returns the Sleeper user id of the request's session cookie,
// if it holds a valid session.
func sessionUser(r *http.Request, ctrl controller.C) (string, bool) {
	c, err := r.Cookie(model.SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return ctrl.ValidateSession(r.Context(), c.Value)
}

func sessionCookie(s *model.Session) *http.Cookie {
	maxAge := int(s.ExpiresAt.Sub(s.IssuedAt) / time.Second)
	if maxAge <= 0 {
		maxAge = int(controller.DefaultSessionTTL / time.Second)
	}

	return &http.Cookie{
		Name:     model.SessionCookieName,
		Value:    s.CookieValue(),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

func clearedSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     model.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
