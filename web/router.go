package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pdag/league-page/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, timeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped. Sleeper and Postgres calls use it.
	r.Use(middleware.Timeout(timeout))

	r.Route("/manager", func(r chi.Router) {
		r.Get("/profile", getOwnProfileHandler(ctrl, render))
		r.Put("/profile", updateOwnProfileHandler(ctrl, render))
		r.Get("/profiles", listProfilesHandler(ctrl, render))

		r.Post("/verify", startVerificationHandler(ctrl, render))
		r.Put("/verify", completeVerificationHandler(ctrl, render))
		r.Delete("/verify", logoutHandler(render))
	})

	r.Route("/managers", func(r chi.Router) {
		r.Get("/", listManagersHandler(ctrl, render))
		r.Get("/{managerID}", getManagerHandler(ctrl, render))
	})

	return r
}
