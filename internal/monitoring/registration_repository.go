package monitoring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
)

// InstituteRegistrationFilters are the query parameters accepted when
// listing institute registrations.
var InstituteRegistrationFilters = FilterSpec{
	"userID":      {Column: "user_id", Compare: Equal},
	"instituteID": {Column: "institute_id", Compare: Equal},
}

// StationRegistrationFilters are the query parameters accepted when
// listing station registrations.
var StationRegistrationFilters = FilterSpec{
	"userID":    {Column: "user_id", Compare: Equal},
	"stationID": {Column: "station_id", Compare: Equal},
}

// RegistrationRepository defines persistence for alert subscriptions,
// both institute-wide and per-station.
type RegistrationRepository interface {
	CreateInstitute(ctx context.Context, reg *UserInstituteRegistration) error
	GetInstituteByID(ctx context.Context, id int64) (*UserInstituteRegistration, error)
	ListInstitute(ctx context.Context, filters url.Values) ([]UserInstituteRegistration, error)
	DeleteInstitute(ctx context.Context, id int64) error

	CreateStation(ctx context.Context, reg *UserStationRegistration) error
	GetStationByID(ctx context.Context, id int64) (*UserStationRegistration, error)
	ListStation(ctx context.Context, filters url.Values) ([]UserStationRegistration, error)
	DeleteStation(ctx context.Context, id int64) error
}

// SQLiteRegistrationRepository implements RegistrationRepository using SQLite.
type SQLiteRegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new SQLite-backed registration repository.
func NewRegistrationRepository(db *sql.DB) *SQLiteRegistrationRepository {
	return &SQLiteRegistrationRepository{db: db}
}

// CreateInstitute subscribes a user to an institute. A repeat registration
// for the same pair surfaces as ErrDuplicateEntry, an unknown user or
// institute as ErrMissingParent.
func (r *SQLiteRegistrationRepository) CreateInstitute(ctx context.Context, reg *UserInstituteRegistration) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO user_register_institute (user_id, institute_id) VALUES (?, ?)`,
		reg.UserID, reg.InstituteID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("creating institute registration: %w", err)
	}

	reg.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading registration id: %w", err)
	}
	return nil
}

// GetInstituteByID retrieves an institute registration by its ID.
func (r *SQLiteRegistrationRepository) GetInstituteByID(ctx context.Context, id int64) (*UserInstituteRegistration, error) {
	var reg UserInstituteRegistration
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, institute_id FROM user_register_institute WHERE id = ?", id).
		Scan(&reg.ID, &reg.UserID, &reg.InstituteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning institute registration: %w", err)
	}
	return &reg, nil
}

// ListInstitute returns institute registrations matching the given filters.
func (r *SQLiteRegistrationRepository) ListInstitute(ctx context.Context, filters url.Values) ([]UserInstituteRegistration, error) {
	clause, args := InstituteRegistrationFilters.Clause(filters)

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, institute_id FROM user_register_institute"+clause+" ORDER BY id ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("listing institute registrations: %w", err)
	}
	defer rows.Close()

	regs := []UserInstituteRegistration{}
	for rows.Next() {
		var reg UserInstituteRegistration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.InstituteID); err != nil {
			return nil, fmt.Errorf("scanning institute registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating institute registrations: %w", err)
	}

	return regs, nil
}

// DeleteInstitute removes an institute registration by ID.
func (r *SQLiteRegistrationRepository) DeleteInstitute(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM user_register_institute WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting institute registration: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateStation subscribes a user to a station. A repeat registration for
// the same pair surfaces as ErrDuplicateEntry, an unknown user or station
// as ErrMissingParent.
func (r *SQLiteRegistrationRepository) CreateStation(ctx context.Context, reg *UserStationRegistration) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO user_register_station (user_id, station_id) VALUES (?, ?)`,
		reg.UserID, reg.StationID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("creating station registration: %w", err)
	}

	reg.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading registration id: %w", err)
	}
	return nil
}

// GetStationByID retrieves a station registration by its ID.
func (r *SQLiteRegistrationRepository) GetStationByID(ctx context.Context, id int64) (*UserStationRegistration, error) {
	var reg UserStationRegistration
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, station_id FROM user_register_station WHERE id = ?", id).
		Scan(&reg.ID, &reg.UserID, &reg.StationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning station registration: %w", err)
	}
	return &reg, nil
}

// ListStation returns station registrations matching the given filters.
func (r *SQLiteRegistrationRepository) ListStation(ctx context.Context, filters url.Values) ([]UserStationRegistration, error) {
	clause, args := StationRegistrationFilters.Clause(filters)

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, station_id FROM user_register_station"+clause+" ORDER BY id ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("listing station registrations: %w", err)
	}
	defer rows.Close()

	regs := []UserStationRegistration{}
	for rows.Next() {
		var reg UserStationRegistration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.StationID); err != nil {
			return nil, fmt.Errorf("scanning station registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating station registrations: %w", err)
	}

	return regs, nil
}

// DeleteStation removes a station registration by ID.
func (r *SQLiteRegistrationRepository) DeleteStation(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM user_register_station WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting station registration: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
