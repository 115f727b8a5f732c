package monitoring

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the monitoring schema
// applied and foreign key enforcement on, so cascade behavior matches
// production.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "monitoring-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			user_id       INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name    TEXT NOT NULL,
			f_last_name   TEXT NOT NULL,
			s_last_name   TEXT,
			email         TEXT NOT NULL UNIQUE,
			phone         TEXT NOT NULL,
			role          TEXT NOT NULL,
			password_hash TEXT NOT NULL
		) STRICT;

		CREATE TABLE institutes (
			institute_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL,
			address      TEXT NOT NULL,
			logo         TEXT
		) STRICT;

		CREATE TABLE colors (
			color_id     INTEGER PRIMARY KEY AUTOINCREMENT,
			institute_id INTEGER NOT NULL REFERENCES institutes(institute_id) ON DELETE CASCADE,
			color        TEXT NOT NULL
		) STRICT;

		CREATE TABLE stations (
			station_id   INTEGER PRIMARY KEY AUTOINCREMENT,
			institute_id INTEGER NOT NULL REFERENCES institutes(institute_id) ON DELETE CASCADE,
			name         TEXT NOT NULL,
			longitude    REAL NOT NULL,
			latitude     REAL NOT NULL,
			description  TEXT
		) STRICT;

		CREATE TABLE devices (
			device_id        INTEGER PRIMARY KEY AUTOINCREMENT,
			station_id       INTEGER NOT NULL REFERENCES stations(station_id) ON DELETE CASCADE,
			type_name        TEXT NOT NULL,
			type_description TEXT
		) STRICT;

		CREATE TABLE alerts (
			alert_id         INTEGER PRIMARY KEY AUTOINCREMENT,
			device_id        INTEGER NOT NULL REFERENCES devices(device_id) ON DELETE CASCADE,
			station_id       INTEGER NOT NULL REFERENCES stations(station_id) ON DELETE CASCADE,
			date             TEXT NOT NULL,
			pollutant_value  REAL NOT NULL,
			pollutant_levels TEXT NOT NULL
		) STRICT;

		CREATE TABLE access (
			user_id INTEGER PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE
		) STRICT;

		CREATE TABLE user_register_institute (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			institute_id INTEGER NOT NULL REFERENCES institutes(institute_id) ON DELETE CASCADE,
			UNIQUE (user_id, institute_id)
		) STRICT;

		CREATE TABLE user_register_station (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			station_id INTEGER NOT NULL REFERENCES stations(station_id) ON DELETE CASCADE,
			UNIQUE (user_id, station_id)
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("applying monitoring schema: %v", err)
	}

	return db
}

func seedInstitute(t *testing.T, db *sql.DB, name string) *Institute {
	t.Helper()
	inst := &Institute{Name: name, Address: "Av. Central 100"}
	if err := NewInstituteRepository(db).Create(context.Background(), inst); err != nil {
		t.Fatalf("creating institute %s: %v", name, err)
	}
	return inst
}

func seedStation(t *testing.T, db *sql.DB, instituteID int64, name string) *Station {
	t.Helper()
	st := &Station{InstituteID: instituteID, Name: name, Longitude: -99.13, Latitude: 19.43}
	if err := NewStationRepository(db).Create(context.Background(), st); err != nil {
		t.Fatalf("creating station %s: %v", name, err)
	}
	return st
}

func seedDevice(t *testing.T, db *sql.DB, stationID int64, typeName string) *Device {
	t.Helper()
	dev := &Device{StationID: stationID, TypeName: typeName}
	if err := NewDeviceRepository(db).Create(context.Background(), dev); err != nil {
		t.Fatalf("creating device %s: %v", typeName, err)
	}
	return dev
}

func seedAlert(t *testing.T, db *sql.DB, deviceID, stationID int64, date string) *Alert {
	t.Helper()
	a := &Alert{
		DeviceID:        deviceID,
		StationID:       stationID,
		Date:            date,
		PollutantValue:  87.5,
		PollutantLevels: "high",
	}
	if err := NewAlertRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("creating alert: %v", err)
	}
	return a
}

// seedMonitoringUser inserts a bare user row for registration tests.
func seedMonitoringUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	result, err := db.Exec(
		`INSERT INTO users (first_name, f_last_name, email, phone, role, password_hash)
		 VALUES ('Ana', 'Torres', ?, '5550001', 'citizen', '$argon2id$test')`, email)
	if err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("reading user id: %v", err)
	}
	return id
}

func queryValues(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}
