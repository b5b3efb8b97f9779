package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tkarvinen/liftpulse/internal/contexthelpers"
	"github.com/tkarvinen/liftpulse/internal/progress"
)

type loginRequest struct {
	DisplayName string `json:"display_name"`
}

// loginPOST resolves a display name to a user and binds the session to it.
// Authentication proper happens upstream; this service only needs a stable
// user identity to key its data on.
func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		app.clientError(w, r, http.StatusBadRequest, "display_name is required")
		return
	}

	userID, err := app.progressService.EnsureUser(r.Context(), req.DisplayName)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("ensure user: %w", err))
		return
	}

	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("renew session token: %w", err))
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserID, userID)

	app.writeJSON(w, r, http.StatusOK, map[string]int64{"user_id": userID})
}

func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("destroy session: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// workoutsPOST logs a workout session for the authenticated user.
func (app *application) workoutsPOST(w http.ResponseWriter, r *http.Request) {
	var session progress.WorkoutSession
	if err := decodeJSON(w, r, &session); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	session.ID = 0
	session.UserID = contexthelpers.AuthenticatedUserID(r.Context())

	id, err := app.progressService.LogSession(r.Context(), session)
	if err != nil {
		if errors.Is(err, progress.ErrEmptySession) {
			app.clientError(w, r, http.StatusUnprocessableEntity, "session has no exercises")
			return
		}
		app.serverError(w, r, fmt.Errorf("log session: %w", err))
		return
	}

	app.writeJSON(w, r, http.StatusCreated, map[string]any{
		"session_id":   id,
		"distribution": progress.DistributeSession(session.Exercises),
	})
}

// statsGET recomputes the user's snapshot from all stored sessions.
func (app *application) statsGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	snapshot, err := app.progressService.ComputeStats(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("compute stats: %w", err))
		return
	}
	app.writeJSON(w, r, http.StatusOK, snapshot)
}

// statsLatestGET returns the persisted snapshot without recomputing.
func (app *application) statsLatestGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	snapshot, err := app.progressService.LatestSnapshot(r.Context(), userID)
	if err != nil {
		if errors.Is(err, progress.ErrNotFound) {
			app.clientError(w, r, http.StatusNotFound, "no stats computed yet")
			return
		}
		app.serverError(w, r, fmt.Errorf("latest snapshot: %w", err))
		return
	}
	app.writeJSON(w, r, http.StatusOK, snapshot)
}

// adviceGET runs the advisory rules and records the run in the history.
func (app *application) adviceGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	item, err := app.progressService.Advise(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("advise: %w", err))
		return
	}
	app.writeJSON(w, r, http.StatusOK, item)
}

func (app *application) adviceLatestGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	item, err := app.progressService.LatestAdvice(r.Context(), userID)
	if err != nil {
		if errors.Is(err, progress.ErrNotFound) {
			app.clientError(w, r, http.StatusNotFound, "no advice generated yet")
			return
		}
		app.serverError(w, r, fmt.Errorf("latest advice: %w", err))
		return
	}
	app.writeJSON(w, r, http.StatusOK, item)
}

func (app *application) adviceHistoryGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	items, err := app.progressService.AdviceHistory(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("advice history: %w", err))
		return
	}
	if items == nil {
		items = []progress.AdviceItem{}
	}
	app.writeJSON(w, r, http.StatusOK, items)
}

func (app *application) reportGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())
	table, err := app.progressService.Report(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("report: %w", err))
		return
	}
	app.writeJSON(w, r, http.StatusOK, table)
}

// healthy responds with a JSON object indicating that the server is healthy.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
