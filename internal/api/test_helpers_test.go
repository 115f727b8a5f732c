package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/vrisa-dev/vrisa-core/internal/auth"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/config"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/database"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/logging"
	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
	_ "github.com/vrisa-dev/vrisa-core/migrations"
)

const testJWTSecret = "test-secret-0123456789abcdef0123"

// testEnv bundles a fully-wired server and router over a temp database.
type testEnv struct {
	server     *Server
	router     http.Handler
	db         *database.DB
	users      auth.UserRepository
	alerts     monitoring.AlertRepository
	institutes monitoring.InstituteRepository
	stations   monitoring.StationRepository
	devices    monitoring.DeviceRepository
}

// newTestEnv builds an API server backed by a migrated temp-file SQLite
// database, using the real repositories and token service.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "api-test.db")
	db, err := database.Open(database.Config{Path: dbPath, WALMode: true, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	users := auth.NewUserRepository(db.DB)
	institutes := monitoring.NewInstituteRepository(db.DB)
	stations := monitoring.NewStationRepository(db.DB)
	devices := monitoring.NewDeviceRepository(db.DB)
	alerts := monitoring.NewAlertRepository(db.DB)

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read: 5, Write: 5, Idle: 10,
			},
		},
		Logger:        logging.Default(),
		DB:            db,
		Tokens:        auth.NewTokenService(testJWTSecret, time.Hour),
		Users:         users,
		Institutes:    institutes,
		Stations:      stations,
		Devices:       devices,
		Alerts:        alerts,
		Colors:        monitoring.NewColorRepository(db.DB),
		Access:        monitoring.NewAccessRepository(db.DB),
		Registrations: monitoring.NewRegistrationRepository(db.DB),
		Version:       "test",
	})
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	return &testEnv{
		server:     srv,
		router:     srv.buildRouter(),
		db:         db,
		users:      users,
		alerts:     alerts,
		institutes: institutes,
		stations:   stations,
		devices:    devices,
	}
}

// do executes a request against the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// httptestRequest builds a bare request for cases that need manual headers.
func httptestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// record serves a request through the env's router.
func record(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorder's body into dst.
func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

// createUser registers a user through the API and returns its ID.
func (e *testEnv) createUser(t *testing.T, email, password string) int64 {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/users/", "", map[string]any{
		"firstName": "Ana",
		"fLastName": "Torres",
		"email":     email,
		"phone":     "5550001",
		"role":      "citizen",
		"password":  password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating user: status %d body %s", rec.Code, rec.Body.String())
	}

	var user auth.User
	decode(t, rec, &user)
	return user.ID
}

// login authenticates through the API and returns the access token.
func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	decode(t, rec, &resp)
	return resp.Access
}

// authToken registers a user and returns a valid bearer token for it.
func (e *testEnv) authToken(t *testing.T) string {
	t.Helper()
	e.createUser(t, "operator@example.com", "operator-pass")
	return e.login(t, "operator@example.com", "operator-pass")
}

// seedStation creates an institute and station directly, returning both IDs.
func (e *testEnv) seedStation(t *testing.T) (instituteID, stationID int64) {
	t.Helper()

	inst := &monitoring.Institute{Name: "Instituto Central", Address: "Av. Central 100"}
	if err := e.institutes.Create(context.Background(), inst); err != nil {
		t.Fatalf("seeding institute: %v", err)
	}
	st := &monitoring.Station{InstituteID: inst.ID, Name: "Estación Centro", Longitude: -99.13, Latitude: 19.43}
	if err := e.stations.Create(context.Background(), st); err != nil {
		t.Fatalf("seeding station: %v", err)
	}
	return inst.ID, st.ID
}
