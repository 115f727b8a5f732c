package monitoring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
)

// StationFilters are the query parameters accepted when listing stations.
var StationFilters = FilterSpec{
	"instituteID": {Column: "institute_id", Compare: Equal},
}

// StationRepository defines persistence for measurement stations.
type StationRepository interface {
	Create(ctx context.Context, st *Station) error
	GetByID(ctx context.Context, id int64) (*Station, error)
	List(ctx context.Context, filters url.Values) ([]Station, error)
	Update(ctx context.Context, st *Station) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteStationRepository implements StationRepository using SQLite.
type SQLiteStationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new SQLite-backed station repository.
func NewStationRepository(db *sql.DB) *SQLiteStationRepository {
	return &SQLiteStationRepository{db: db}
}

const stationColumns = "station_id, institute_id, name, longitude, latitude, description"

// Create inserts a new station and fills in the generated ID.
// An unknown institute surfaces as ErrMissingParent.
func (r *SQLiteStationRepository) Create(ctx context.Context, st *Station) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO stations (institute_id, name, longitude, latitude, description)
		 VALUES (?, ?, ?, ?, ?)`,
		st.InstituteID, st.Name, st.Longitude, st.Latitude, nullString(st.Description),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("creating station: %w", err)
	}

	st.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading station id: %w", err)
	}
	return nil
}

// GetByID retrieves a station by its ID.
func (r *SQLiteStationRepository) GetByID(ctx context.Context, id int64) (*Station, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+stationColumns+" FROM stations WHERE station_id = ?", id)
	return scanStation(row)
}

// List returns stations matching the given filters, ordered by primary key.
func (r *SQLiteStationRepository) List(ctx context.Context, filters url.Values) ([]Station, error) {
	clause, args := StationFilters.Clause(filters)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+stationColumns+" FROM stations"+clause+" ORDER BY station_id ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("listing stations: %w", err)
	}
	defer rows.Close()

	stations := []Station{}
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stations: %w", err)
	}

	return stations, nil
}

// Update modifies a station's fields, including reassignment to another
// institute.
func (r *SQLiteStationRepository) Update(ctx context.Context, st *Station) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE stations SET institute_id = ?, name = ?, longitude = ?, latitude = ?, description = ?
		 WHERE station_id = ?`,
		st.InstituteID, st.Name, st.Longitude, st.Latitude, nullString(st.Description), st.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("updating station: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a station. Its devices, alerts, and registrations are
// removed by cascade.
func (r *SQLiteStationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM stations WHERE station_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting station: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStation(s scanner) (*Station, error) {
	var st Station
	var description sql.NullString

	err := s.Scan(&st.ID, &st.InstituteID, &st.Name, &st.Longitude, &st.Latitude, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning station: %w", err)
	}

	if description.Valid {
		st.Description = description.String
	}
	return &st, nil
}
