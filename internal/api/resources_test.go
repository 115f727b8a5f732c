package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/vrisa-dev/vrisa-core/internal/auth"
	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

func TestInstitutes_CRUDAndSearch(t *testing.T) {
	env := newTestEnv(t)
	token := env.authToken(t)

	for _, body := range []map[string]string{
		{"name": "Aire Limpio Norte", "address": "Calle Reforma 5"},
		{"name": "Centro Hidrológico", "address": "Av. Aire 22"},
		{"name": "Observatorio Sur", "address": "Camino Verde 8"},
	} {
		rec := env.do(t, http.MethodPost, "/api/institutes/", token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create institute status = %d, body %s", rec.Code, rec.Body.String())
		}
	}

	var institutes []monitoring.Institute
	rec := env.do(t, http.MethodGet, "/api/institutes/", "", nil)
	decode(t, rec, &institutes)
	if len(institutes) != 3 {
		t.Fatalf("listed %d institutes, want 3", len(institutes))
	}

	// Search matches name on one row and address on another.
	rec = env.do(t, http.MethodGet, "/api/institutes/?search=aire", "", nil)
	decode(t, rec, &institutes)
	if len(institutes) != 2 {
		t.Errorf("search=aire matched %d institutes, want 2", len(institutes))
	}

	id := institutes[0].ID
	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/institutes/%d/", id), token, map[string]string{
		"name": "Renamed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated monitoring.Institute
	decode(t, rec, &updated)
	if updated.Name != "Renamed" {
		t.Errorf("updated name = %q", updated.Name)
	}

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/institutes/%d/", id), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/institutes/%d/", id), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestStations_FilterByInstitute(t *testing.T) {
	env := newTestEnv(t)
	token := env.authToken(t)

	inst1, _ := env.seedStation(t)

	// Second institute with one more station.
	inst := &monitoring.Institute{Name: "Instituto Sur", Address: "Camino Verde 8"}
	if err := env.institutes.Create(context.Background(), inst); err != nil {
		t.Fatalf("seeding institute: %v", err)
	}
	rec := env.do(t, http.MethodPost, "/api/stations/", token, map[string]any{
		"instituteID": inst.ID,
		"name":        "Estación Sur",
		"longitude":   -99.20,
		"latitude":    19.30,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create station status = %d, body %s", rec.Code, rec.Body.String())
	}

	var stations []monitoring.Station
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/stations/?instituteID=%d", inst1), "", nil)
	decode(t, rec, &stations)
	if len(stations) != 1 {
		t.Fatalf("filtered %d stations, want 1", len(stations))
	}
	if stations[0].InstituteID != inst1 {
		t.Errorf("station institute = %d, want %d", stations[0].InstituteID, inst1)
	}
}

func TestStations_RequiresCoordinates(t *testing.T) {
	env := newTestEnv(t)
	token := env.authToken(t)
	instituteID, _ := env.seedStation(t)

	rec := env.do(t, http.MethodPost, "/api/stations/", token, map[string]any{
		"instituteID": instituteID,
		"name":        "Sin Coordenadas",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("station without coordinates status = %d, want 400", rec.Code)
	}
}

func TestAlerts_ComposedFilters(t *testing.T) {
	env := newTestEnv(t)
	token := env.authToken(t)
	_, stationID := env.seedStation(t)

	dev := &monitoring.Device{StationID: stationID, TypeName: "PM2.5"}
	if err := env.devices.Create(context.Background(), dev); err != nil {
		t.Fatalf("seeding device: %v", err)
	}

	for _, date := range []string{
		"2026-01-15T08:00:00Z",
		"2026-02-15T08:00:00Z",
		"2026-03-15T08:00:00Z",
	} {
		rec := env.do(t, http.MethodPost, "/api/alerts/", token, map[string]any{
			"deviceID":        dev.ID,
			"stationID":       stationID,
			"date":            date,
			"pollutantValue":  87.5,
			"pollutantLevels": "high",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create alert status = %d, body %s", rec.Code, rec.Body.String())
		}
	}

	var alerts []monitoring.Alert
	path := fmt.Sprintf("/api/alerts/?stationID=%d&from=2026-02-01T00:00:00Z&to=2026-02-28T00:00:00Z", stationID)
	rec := env.do(t, http.MethodGet, path, "", nil)
	decode(t, rec, &alerts)
	if len(alerts) != 1 {
		t.Fatalf("composed filter matched %d alerts, want 1", len(alerts))
	}
	if alerts[0].Date != "2026-02-15T08:00:00Z" {
		t.Errorf("matched alert date = %s", alerts[0].Date)
	}

	// Unknown query parameters are ignored.
	rec = env.do(t, http.MethodGet, "/api/alerts/?page=3", "", nil)
	decode(t, rec, &alerts)
	if len(alerts) != 3 {
		t.Errorf("unknown param matched %d alerts, want 3", len(alerts))
	}
}

func TestAlerts_OffsetDateStoredAsUTC(t *testing.T) {
	env := newTestEnv(t)
	token := env.authToken(t)
	_, stationID := env.seedStation(t)

	dev := &monitoring.Device{StationID: stationID, TypeName: "PM2.5"}
	if err := env.devices.Create(context.Background(), dev); err != nil {
		t.Fatalf("seeding device: %v", err)
	}

	// 2026-01-02T00:30:00+05:00 is 2026-01-01T19:30:00Z; stored as supplied
	// it would sort after the from bound lexically while being before it
	// chronologically.
	rec := env.do(t, http.MethodPost, "/api/alerts/", token, map[string]any{
		"deviceID":        dev.ID,
		"stationID":       stationID,
		"date":            "2026-01-02T00:30:00+05:00",
		"pollutantValue":  42.0,
		"pollutantLevels": "moderate",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create alert status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created monitoring.Alert
	decode(t, rec, &created)
	if created.Date != "2026-01-01T19:30:00Z" {
		t.Errorf("stored date = %q, want UTC-normalized 2026-01-01T19:30:00Z", created.Date)
	}

	var alerts []monitoring.Alert
	rec = env.do(t, http.MethodGet, "/api/alerts/?from=2026-01-02T00:00:00Z", "", nil)
	decode(t, rec, &alerts)
	if len(alerts) != 0 {
		t.Errorf("from filter matched %d alerts, want 0 (alert is before the bound)", len(alerts))
	}
}

func TestAlerts_UnknownParentRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.authToken(t)

	rec := env.do(t, http.MethodPost, "/api/alerts/", token, map[string]any{
		"deviceID":        9999,
		"stationID":       9999,
		"pollutantValue":  10.0,
		"pollutantLevels": "low",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("alert with unknown parents status = %d, want 400", rec.Code)
	}
}

func TestRegistrations_DuplicateConflict(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ana@example.com", "password123")
	token := env.login(t, "ana@example.com", "password123")
	instituteID, _ := env.seedStation(t)

	body := map[string]any{"userID": userID, "instituteID": instituteID}

	rec := env.do(t, http.MethodPost, "/api/user-register-institute/", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/user-register-institute/", token, body)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestCascade_InstituteDeleteRemovesChildren(t *testing.T) {
	env := newTestEnv(t)
	token := env.authToken(t)
	instituteID, stationID := env.seedStation(t)

	dev := &monitoring.Device{StationID: stationID, TypeName: "PM2.5"}
	if err := env.devices.Create(context.Background(), dev); err != nil {
		t.Fatalf("seeding device: %v", err)
	}

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/institutes/%d/", instituteID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete institute status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/stations/%d/", stationID), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("station after cascade status = %d, want 404", rec.Code)
	}
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/devices/%d/", dev.ID), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("device after cascade status = %d, want 404", rec.Code)
	}
}

func TestUsers_DuplicateEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "ana@example.com", "password123")

	rec := env.do(t, http.MethodPost, "/api/users/", "", map[string]any{
		"firstName": "Beto",
		"fLastName": "Lopez",
		"email":     "ana@example.com",
		"phone":     "5550002",
		"password":  "password123",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", rec.Code)
	}
}

func TestUsers_RejectedPasswordLeavesProfileUntouched(t *testing.T) {
	env := newTestEnv(t)
	id := env.createUser(t, "ana@example.com", "password123")

	// A mixed update carrying a too-short password must fail without
	// persisting the profile fields sent alongside it.
	rec := env.do(t, http.MethodPatch, fmt.Sprintf("/api/users/%d/", id), "", map[string]any{
		"firstName": "Renamed",
		"password":  "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("mixed update status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/", id), "", nil)
	var user auth.User
	decode(t, rec, &user)
	if user.FirstName != "Ana" {
		t.Errorf("firstName = %q after rejected update, want Ana", user.FirstName)
	}

	// The original password must still work.
	env.login(t, "ana@example.com", "password123")
}

func TestUsers_NoHashLeakage(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "ana@example.com", "password123")

	rec := env.do(t, http.MethodGet, "/api/users/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list users status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "argon2id") {
		t.Error("user listing must not include password hashes")
	}
}

func TestAccess_GrantAndDuplicate(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ana@example.com", "password123")
	token := env.login(t, "ana@example.com", "password123")

	body := map[string]any{"userID": userID}
	rec := env.do(t, http.MethodPost, "/api/access/", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("grant status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/access/", token, body)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate grant status = %d, want 409", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/access/%d/", userID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("revoke status = %d", rec.Code)
	}
}

func TestNonNumericID_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/institutes/abc/", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-numeric id status = %d, want 404", rec.Code)
	}
}

func TestTrailingSlashOptional(t *testing.T) {
	env := newTestEnv(t)

	with := env.do(t, http.MethodGet, "/api/institutes/", "", nil)
	without := env.do(t, http.MethodGet, "/api/institutes", "", nil)
	if with.Code != http.StatusOK || without.Code != http.StatusOK {
		t.Errorf("trailing slash handling: %d vs %d, want 200 both", with.Code, without.Code)
	}
}
