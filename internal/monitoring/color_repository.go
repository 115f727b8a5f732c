package monitoring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
)

// ColorFilters are the query parameters accepted when listing colors.
var ColorFilters = FilterSpec{
	"instituteID": {Column: "institute_id", Compare: Equal},
}

// ColorRepository defines persistence for institute palette colors.
type ColorRepository interface {
	Create(ctx context.Context, c *Color) error
	GetByID(ctx context.Context, id int64) (*Color, error)
	List(ctx context.Context, filters url.Values) ([]Color, error)
	Update(ctx context.Context, c *Color) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteColorRepository implements ColorRepository using SQLite.
type SQLiteColorRepository struct {
	db *sql.DB
}

// NewColorRepository creates a new SQLite-backed color repository.
func NewColorRepository(db *sql.DB) *SQLiteColorRepository {
	return &SQLiteColorRepository{db: db}
}

const colorColumns = "color_id, institute_id, color"

// Create inserts a new color and fills in the generated ID.
// An unknown institute surfaces as ErrMissingParent.
func (r *SQLiteColorRepository) Create(ctx context.Context, c *Color) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO colors (institute_id, color) VALUES (?, ?)`,
		c.InstituteID, c.Color,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("creating color: %w", err)
	}

	c.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading color id: %w", err)
	}
	return nil
}

// GetByID retrieves a color by its ID.
func (r *SQLiteColorRepository) GetByID(ctx context.Context, id int64) (*Color, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+colorColumns+" FROM colors WHERE color_id = ?", id)
	return scanColor(row)
}

// List returns colors matching the given filters, ordered by primary key.
func (r *SQLiteColorRepository) List(ctx context.Context, filters url.Values) ([]Color, error) {
	clause, args := ColorFilters.Clause(filters)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+colorColumns+" FROM colors"+clause+" ORDER BY color_id ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("listing colors: %w", err)
	}
	defer rows.Close()

	colors := []Color{}
	for rows.Next() {
		c, err := scanColor(rows)
		if err != nil {
			return nil, err
		}
		colors = append(colors, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating colors: %w", err)
	}

	return colors, nil
}

// Update modifies a color's fields.
func (r *SQLiteColorRepository) Update(ctx context.Context, c *Color) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE colors SET institute_id = ?, color = ? WHERE color_id = ?`,
		c.InstituteID, c.Color, c.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("updating color: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a color by ID.
func (r *SQLiteColorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM colors WHERE color_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting color: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanColor(s scanner) (*Color, error) {
	var c Color

	if err := s.Scan(&c.ID, &c.InstituteID, &c.Color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning color: %w", err)
	}

	return &c, nil
}
