package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logRequest(secureHeaders(noCache(
				app.sessionManager.LoadAndSave(app.authenticate(next))))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
	)

	mux.Handle("POST /api/login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /api/logout", session(http.HandlerFunc(app.logoutPOST)))

	mux.Handle("POST /api/workouts", mustSession(http.HandlerFunc(app.workoutsPOST)))
	mux.Handle("GET /api/stats", mustSession(http.HandlerFunc(app.statsGET)))
	mux.Handle("GET /api/stats/latest", mustSession(http.HandlerFunc(app.statsLatestGET)))
	mux.Handle("GET /api/advice", mustSession(http.HandlerFunc(app.adviceGET)))
	mux.Handle("GET /api/advice/latest", mustSession(http.HandlerFunc(app.adviceLatestGET)))
	mux.Handle("GET /api/advice/history", mustSession(http.HandlerFunc(app.adviceHistoryGET)))
	mux.Handle("GET /api/report", mustSession(http.HandlerFunc(app.reportGET)))

	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))

	return mux
}
