package monitoring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InstituteRepository defines persistence for monitoring institutes.
type InstituteRepository interface {
	Create(ctx context.Context, inst *Institute) error
	GetByID(ctx context.Context, id int64) (*Institute, error)
	List(ctx context.Context, search string) ([]Institute, error)
	Update(ctx context.Context, inst *Institute) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteInstituteRepository implements InstituteRepository using SQLite.
type SQLiteInstituteRepository struct {
	db *sql.DB
}

// NewInstituteRepository creates a new SQLite-backed institute repository.
func NewInstituteRepository(db *sql.DB) *SQLiteInstituteRepository {
	return &SQLiteInstituteRepository{db: db}
}

const instituteColumns = "institute_id, name, address, logo"

// Create inserts a new institute and fills in the generated ID.
func (r *SQLiteInstituteRepository) Create(ctx context.Context, inst *Institute) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO institutes (name, address, logo) VALUES (?, ?, ?)`,
		inst.Name, inst.Address, nullString(inst.Logo),
	)
	if err != nil {
		return fmt.Errorf("creating institute: %w", err)
	}

	inst.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading institute id: %w", err)
	}
	return nil
}

// GetByID retrieves an institute by its ID.
func (r *SQLiteInstituteRepository) GetByID(ctx context.Context, id int64) (*Institute, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+instituteColumns+" FROM institutes WHERE institute_id = ?", id)
	return scanInstitute(row)
}

// List returns all institutes ordered by primary key. A non-empty search
// term narrows the result to institutes whose name or address contains it,
// case-insensitively.
func (r *SQLiteInstituteRepository) List(ctx context.Context, search string) ([]Institute, error) {
	query := "SELECT " + instituteColumns + " FROM institutes"
	var args []any
	if search != "" {
		query += " WHERE name LIKE ? OR address LIKE ?"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY institute_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing institutes: %w", err)
	}
	defer rows.Close()

	institutes := []Institute{}
	for rows.Next() {
		inst, err := scanInstitute(rows)
		if err != nil {
			return nil, err
		}
		institutes = append(institutes, *inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating institutes: %w", err)
	}

	return institutes, nil
}

// Update modifies an institute's fields.
func (r *SQLiteInstituteRepository) Update(ctx context.Context, inst *Institute) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE institutes SET name = ?, address = ?, logo = ? WHERE institute_id = ?`,
		inst.Name, inst.Address, nullString(inst.Logo), inst.ID,
	)
	if err != nil {
		return fmt.Errorf("updating institute: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an institute. Its colors, stations, and registrations
// are removed by cascade.
func (r *SQLiteInstituteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM institutes WHERE institute_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting institute: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInstitute(s scanner) (*Institute, error) {
	var inst Institute
	var logo sql.NullString

	if err := s.Scan(&inst.ID, &inst.Name, &inst.Address, &logo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning institute: %w", err)
	}

	if logo.Valid {
		inst.Logo = logo.String
	}
	return &inst, nil
}
