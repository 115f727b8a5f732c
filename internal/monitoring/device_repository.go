package monitoring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
)

// DeviceFilters are the query parameters accepted when listing devices.
var DeviceFilters = FilterSpec{
	"stationID": {Column: "station_id", Compare: Equal},
}

// DeviceRepository defines persistence for station sensors.
type DeviceRepository interface {
	Create(ctx context.Context, dev *Device) error
	GetByID(ctx context.Context, id int64) (*Device, error)
	List(ctx context.Context, filters url.Values) ([]Device, error)
	Update(ctx context.Context, dev *Device) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteDeviceRepository implements DeviceRepository using SQLite.
type SQLiteDeviceRepository struct {
	db *sql.DB
}

// NewDeviceRepository creates a new SQLite-backed device repository.
func NewDeviceRepository(db *sql.DB) *SQLiteDeviceRepository {
	return &SQLiteDeviceRepository{db: db}
}

const deviceColumns = "device_id, station_id, type_name, type_description"

// Create inserts a new device and fills in the generated ID.
// An unknown station surfaces as ErrMissingParent.
func (r *SQLiteDeviceRepository) Create(ctx context.Context, dev *Device) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO devices (station_id, type_name, type_description) VALUES (?, ?, ?)`,
		dev.StationID, dev.TypeName, nullString(dev.TypeDescription),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("creating device: %w", err)
	}

	dev.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading device id: %w", err)
	}
	return nil
}

// GetByID retrieves a device by its ID.
func (r *SQLiteDeviceRepository) GetByID(ctx context.Context, id int64) (*Device, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+deviceColumns+" FROM devices WHERE device_id = ?", id)
	return scanDevice(row)
}

// List returns devices matching the given filters, ordered by primary key.
func (r *SQLiteDeviceRepository) List(ctx context.Context, filters url.Values) ([]Device, error) {
	clause, args := DeviceFilters.Clause(filters)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+deviceColumns+" FROM devices"+clause+" ORDER BY device_id ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	defer rows.Close()

	devices := []Device{}
	for rows.Next() {
		dev, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *dev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}

	return devices, nil
}

// Update modifies a device's fields, including reassignment to another
// station.
func (r *SQLiteDeviceRepository) Update(ctx context.Context, dev *Device) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE devices SET station_id = ?, type_name = ?, type_description = ? WHERE device_id = ?`,
		dev.StationID, dev.TypeName, nullString(dev.TypeDescription), dev.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("updating device: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a device. Its alerts are removed by cascade.
func (r *SQLiteDeviceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM devices WHERE device_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting device: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDevice(s scanner) (*Device, error) {
	var dev Device
	var typeDescription sql.NullString

	err := s.Scan(&dev.ID, &dev.StationID, &dev.TypeName, &typeDescription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning device: %w", err)
	}

	if typeDescription.Valid {
		dev.TypeDescription = typeDescription.String
	}
	return &dev, nil
}
