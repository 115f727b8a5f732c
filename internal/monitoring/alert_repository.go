package monitoring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
)

// AlertFilters are the query parameters accepted when listing alerts.
// The from/to bounds compare against the measurement timestamp, which
// RFC 3339 text ordering makes equivalent to chronological order.
var AlertFilters = FilterSpec{
	"stationID": {Column: "station_id", Compare: Equal},
	"deviceID":  {Column: "device_id", Compare: Equal},
	"from":      {Column: "date", Compare: AtLeast},
	"to":        {Column: "date", Compare: AtMost},
}

// AlertRepository defines persistence for pollution alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	GetByID(ctx context.Context, id int64) (*Alert, error)
	List(ctx context.Context, filters url.Values) ([]Alert, error)
	Update(ctx context.Context, alert *Alert) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteAlertRepository implements AlertRepository using SQLite.
type SQLiteAlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new SQLite-backed alert repository.
func NewAlertRepository(db *sql.DB) *SQLiteAlertRepository {
	return &SQLiteAlertRepository{db: db}
}

const alertColumns = "alert_id, device_id, station_id, date, pollutant_value, pollutant_levels"

// Create inserts a new alert and fills in the generated ID.
// An unknown device or station surfaces as ErrMissingParent.
func (r *SQLiteAlertRepository) Create(ctx context.Context, alert *Alert) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (device_id, station_id, date, pollutant_value, pollutant_levels)
		 VALUES (?, ?, ?, ?, ?)`,
		alert.DeviceID, alert.StationID, alert.Date, alert.PollutantValue, alert.PollutantLevels,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("creating alert: %w", err)
	}

	alert.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading alert id: %w", err)
	}
	return nil
}

// GetByID retrieves an alert by its ID.
func (r *SQLiteAlertRepository) GetByID(ctx context.Context, id int64) (*Alert, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+alertColumns+" FROM alerts WHERE alert_id = ?", id)
	return scanAlert(row)
}

// List returns alerts matching the given filters, ordered by primary key.
func (r *SQLiteAlertRepository) List(ctx context.Context, filters url.Values) ([]Alert, error) {
	clause, args := AlertFilters.Clause(filters)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+alertColumns+" FROM alerts"+clause+" ORDER BY alert_id ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	alerts := []Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}

	return alerts, nil
}

// Update modifies an alert's fields.
func (r *SQLiteAlertRepository) Update(ctx context.Context, alert *Alert) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET device_id = ?, station_id = ?, date = ?, pollutant_value = ?, pollutant_levels = ?
		 WHERE alert_id = ?`,
		alert.DeviceID, alert.StationID, alert.Date, alert.PollutantValue, alert.PollutantLevels, alert.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("updating alert: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an alert by ID.
func (r *SQLiteAlertRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM alerts WHERE alert_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting alert: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAlert(s scanner) (*Alert, error) {
	var a Alert

	err := s.Scan(&a.ID, &a.DeviceID, &a.StationID, &a.Date, &a.PollutantValue, &a.PollutantLevels)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning alert: %w", err)
	}

	return &a, nil
}
