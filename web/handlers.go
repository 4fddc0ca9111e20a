package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pdag/league-page/controller"
	"github.com/pdag/league-page/model"
	"github.com/unrolled/render"
)

const maxBodyBytes = 1 << 20

func getOwnProfileHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionUser(r, ctrl)
		if !ok {
			render.JSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}

		p, err := ctrl.GetProfile(r.Context(), id)
		if err != nil {
			writeError(w, render, err, "Failed to fetch profile")
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"profile":       p,
		})
	}
}

func updateOwnProfileHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionUser(r, ctrl)
		if !ok {
			writeError(w, render, controller.ErrNotAuthenticated, "")
			return
		}

		var fields map[string]any
		if err := decodeBody(w, r, &fields); err != nil {
			writeError(w, render, err, "")
			return
		}

		p, err := ctrl.UpdateProfile(r.Context(), id, fields)
		if err != nil {
			writeError(w, render, err, "Failed to update profile")
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"profile": p,
		})
	}
}

func listProfilesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles := ctrl.ListProfiles(r.Context())
		if profiles == nil {
			profiles = []model.ManagerProfile{}
		}
		render.JSON(w, http.StatusOK, map[string]any{"profiles": profiles})
	}
}

type startVerificationRequest struct {
	SleeperUsername string `json:"sleeper_username"`
}

func startVerificationHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startVerificationRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, render, err, "")
			return
		}

		v, err := ctrl.StartVerification(r.Context(), req.SleeperUsername)
		if err != nil {
			writeError(w, render, err, "Failed to start verification")
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"success":           true,
			"verification_code": v.Code,
			"sleeper_user_id":   v.SleeperUserID,
			"sleeper_username":  v.SleeperUsername,
			"message":           fmt.Sprintf("Add this code to your Sleeper bio: %s", v.Code),
		})
	}
}

type completeVerificationRequest struct {
	SleeperUserID string `json:"sleeper_user_id"`
}

func completeVerificationHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req completeVerificationRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, render, err, "")
			return
		}

		s, err := ctrl.CompleteVerification(r.Context(), req.SleeperUserID)
		if err != nil {
			writeError(w, render, err, "Failed to complete verification")
			return
		}

		http.SetCookie(w, sessionCookie(s))
		render.JSON(w, http.StatusOK, map[string]any{
			"success":         true,
			"message":         "Verification successful! You can now edit your profile.",
			"sleeper_user_id": s.SleeperUserID,
		})
	}
}

func logoutHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, clearedSessionCookie())
		render.JSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func listManagersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		managers := ctrl.ListManagers(r.Context())
		if managers == nil {
			managers = []model.Manager{}
		}
		render.JSON(w, http.StatusOK, map[string]any{"managers": managers})
	}
}

func getManagerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		managerID := chi.URLParam(r, "managerID")
		m, err := ctrl.GetManager(r.Context(), managerID)
		if err != nil {
			writeError(w, render, err, "Failed to fetch manager")
			return
		}
		render.JSON(w, http.StatusOK, map[string]any{"manager": m})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
