package main

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tkarvinen/liftpulse/internal/progress"
	"github.com/tkarvinen/liftpulse/internal/sqlite"
	"github.com/tkarvinen/liftpulse/internal/testhelpers"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := t.Context()

	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	sessionManager := initializeSessionManager(db)
	// The test server speaks plain HTTP.
	sessionManager.Cookie.Secure = false

	app := application{
		logger:          logger,
		sessionManager:  sessionManager,
		progressService: progress.NewService(db, logger),
	}

	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func login(t *testing.T, srv *httptest.Server, client *http.Client, displayName string) {
	t.Helper()
	resp, err := client.Post(srv.URL+"/api/login", "application/json",
		strings.NewReader(`{"display_name":"`+displayName+`"}`))
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login returned status %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestHealthy(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/healthy")
	if err != nil {
		t.Fatalf("Failed to get /api/healthy: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body map[string]string
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want %q", body["status"], "ok")
	}
}

func TestStatsRequiresAuthentication(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatalf("Failed to get /api/stats: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestLogWorkoutAndReadStats(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)
	login(t, srv, client, "Test User")

	workout := `{
		"created_at_ms": ` + strconv.FormatInt(time.Now().UnixMilli(), 10) + `,
		"exercises": [
			{
				"raw_name": "Press Banca",
				"sets": [{"reps": 5, "weight_kg": 100, "done": true}]
			}
		]
	}`
	resp, err := client.Post(srv.URL+"/api/workouts", "application/json", strings.NewReader(workout))
	if err != nil {
		t.Fatalf("Failed to post workout: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Post workout status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var created struct {
		SessionID    int64                            `json:"session_id"`
		Distribution map[progress.MuscleGroup]float64 `json:"distribution"`
	}
	err = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to decode workout response: %v", err)
	}
	if created.SessionID == 0 {
		t.Error("Expected a non-zero session id")
	}
	// Live distribution splits the completed bench volume three ways.
	if len(created.Distribution) != 3 {
		t.Errorf("Distribution has %d groups, want 3: %v", len(created.Distribution), created.Distribution)
	}

	resp, err = client.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Get stats status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var snapshot progress.UserStatsSnapshot
	if err = json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	if got := snapshot.PerMuscle[progress.Chest].VolumeWeekCurrent; got != 500 {
		t.Errorf("Chest current volume = %v, want 500", got)
	}
	if snapshot.Totals.SessionsLast30Days != 1 {
		t.Errorf("Sessions last 30 days = %d, want 1", snapshot.Totals.SessionsLast30Days)
	}
}

func TestEmptyWorkoutRejected(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)
	login(t, srv, client, "Test User")

	resp, err := client.Post(srv.URL+"/api/workouts", "application/json",
		strings.NewReader(`{"exercises": []}`))
	if err != nil {
		t.Fatalf("Failed to post workout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestAdviceLifecycle(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)
	login(t, srv, client, "Test User")

	resp, err := client.Get(srv.URL + "/api/advice/latest")
	if err != nil {
		t.Fatalf("Failed to get latest advice: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Latest advice before any run: status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	resp, err = client.Get(srv.URL + "/api/advice")
	if err != nil {
		t.Fatalf("Failed to get advice: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Get advice status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var item progress.AdviceItem
	err = json.NewDecoder(resp.Body).Decode(&item)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to decode advice: %v", err)
	}
	if len(item.Lines) == 0 {
		t.Error("Expected at least one advice line")
	}

	resp, err = client.Get(srv.URL + "/api/advice/history")
	if err != nil {
		t.Fatalf("Failed to get advice history: %v", err)
	}
	defer resp.Body.Close()
	var history []progress.AdviceItem
	if err = json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("Failed to decode advice history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Advice history has %d items, want 1", len(history))
	}
}

func TestReport(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)
	login(t, srv, client, "Test User")

	resp, err := client.Get(srv.URL + "/api/report")
	if err != nil {
		t.Fatalf("Failed to get report: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Get report status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var table progress.ReportTable
	if err = json.NewDecoder(resp.Body).Decode(&table); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if len(table.Rows) != len(progress.MuscleGroups) {
		t.Errorf("Report has %d rows, want %d", len(table.Rows), len(progress.MuscleGroups))
	}
}
