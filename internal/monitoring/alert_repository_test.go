package monitoring

import (
	"context"
	"errors"
	"testing"
)

func TestAlertRepository_CreateRequiresParents(t *testing.T) {
	db := testDB(t)
	repo := NewAlertRepository(db)

	a := &Alert{DeviceID: 9999, StationID: 9999, Date: "2026-03-01T10:00:00Z", PollutantValue: 50, PollutantLevels: "moderate"}
	if err := repo.Create(context.Background(), a); !errors.Is(err, ErrMissingParent) {
		t.Errorf("Create() error = %v, want ErrMissingParent", err)
	}
}

func TestAlertRepository_ListFilters(t *testing.T) {
	db := testDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	inst := seedInstitute(t, db, "Instituto Central")
	st1 := seedStation(t, db, inst.ID, "Estación Norte")
	st2 := seedStation(t, db, inst.ID, "Estación Sur")
	dev1 := seedDevice(t, db, st1.ID, "PM2.5")
	dev2 := seedDevice(t, db, st2.ID, "O3")

	seedAlert(t, db, dev1.ID, st1.ID, "2026-01-15T08:00:00Z")
	seedAlert(t, db, dev1.ID, st1.ID, "2026-02-15T08:00:00Z")
	seedAlert(t, db, dev2.ID, st2.ID, "2026-02-20T08:00:00Z")

	all, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d alerts, want 3", len(all))
	}

	byStation, err := repo.List(ctx, queryValues("stationID", "1"))
	if err != nil {
		t.Fatalf("List(stationID) error = %v", err)
	}
	if len(byStation) != 2 {
		t.Errorf("List(stationID=1) returned %d alerts, want 2", len(byStation))
	}

	byDevice, err := repo.List(ctx, queryValues("deviceID", "2"))
	if err != nil {
		t.Fatalf("List(deviceID) error = %v", err)
	}
	if len(byDevice) != 1 {
		t.Errorf("List(deviceID=2) returned %d alerts, want 1", len(byDevice))
	}

	// Filters compose conjunctively.
	composed, err := repo.List(ctx, queryValues("stationID", "1", "from", "2026-02-01T00:00:00Z"))
	if err != nil {
		t.Fatalf("List(composed) error = %v", err)
	}
	if len(composed) != 1 {
		t.Fatalf("List(stationID=1&from) returned %d alerts, want 1", len(composed))
	}
	if composed[0].Date != "2026-02-15T08:00:00Z" {
		t.Errorf("composed filter matched %s", composed[0].Date)
	}

	window, err := repo.List(ctx, queryValues(
		"from", "2026-02-01T00:00:00Z", "to", "2026-02-16T00:00:00Z"))
	if err != nil {
		t.Fatalf("List(window) error = %v", err)
	}
	if len(window) != 1 {
		t.Errorf("List(from&to) returned %d alerts, want 1", len(window))
	}

	// Unknown parameters are ignored, not rejected.
	ignored, err := repo.List(ctx, queryValues("page", "2"))
	if err != nil {
		t.Fatalf("List(unknown param) error = %v", err)
	}
	if len(ignored) != 3 {
		t.Errorf("List(page=2) returned %d alerts, want 3", len(ignored))
	}
}

func TestAlertRepository_UpdateDelete(t *testing.T) {
	db := testDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	inst := seedInstitute(t, db, "Instituto Central")
	st := seedStation(t, db, inst.ID, "Estación Centro")
	dev := seedDevice(t, db, st.ID, "PM2.5")
	a := seedAlert(t, db, dev.ID, st.ID, "2026-03-01T10:00:00Z")

	a.PollutantValue = 120.0
	a.PollutantLevels = "hazardous"
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PollutantValue != 120.0 || got.PollutantLevels != "hazardous" {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestDeviceRepository_DeleteCascadesAlerts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	inst := seedInstitute(t, db, "Instituto Central")
	st := seedStation(t, db, inst.ID, "Estación Centro")
	dev := seedDevice(t, db, st.ID, "PM2.5")
	seedAlert(t, db, dev.ID, st.ID, "2026-03-01T10:00:00Z")

	if err := NewDeviceRepository(db).Delete(ctx, dev.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	alerts, err := NewAlertRepository(db).List(ctx, nil)
	if err != nil {
		t.Fatalf("listing alerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("alerts should cascade with device, %d remain", len(alerts))
	}
}
