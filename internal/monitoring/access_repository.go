package monitoring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AccessRepository defines persistence for elevated access grants.
type AccessRepository interface {
	Grant(ctx context.Context, userID int64) error
	Has(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context) ([]Access, error)
	Revoke(ctx context.Context, userID int64) error
}

// SQLiteAccessRepository implements AccessRepository using SQLite.
type SQLiteAccessRepository struct {
	db *sql.DB
}

// NewAccessRepository creates a new SQLite-backed access repository.
func NewAccessRepository(db *sql.DB) *SQLiteAccessRepository {
	return &SQLiteAccessRepository{db: db}
}

// Grant marks a user as having elevated access. Granting twice surfaces
// as ErrDuplicateEntry, an unknown user as ErrMissingParent.
func (r *SQLiteAccessRepository) Grant(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access (user_id) VALUES (?)`, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return fmt.Errorf("granting access: %w", err)
	}
	return nil
}

// Has reports whether a user holds an elevated access grant.
func (r *SQLiteAccessRepository) Has(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM access WHERE user_id = ?", userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking access: %w", err)
	}
	return true, nil
}

// List returns all access grants ordered by user ID.
func (r *SQLiteAccessRepository) List(ctx context.Context) ([]Access, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id FROM access ORDER BY user_id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing access grants: %w", err)
	}
	defer rows.Close()

	grants := []Access{}
	for rows.Next() {
		var a Access
		if err := rows.Scan(&a.UserID); err != nil {
			return nil, fmt.Errorf("scanning access grant: %w", err)
		}
		grants = append(grants, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating access grants: %w", err)
	}

	return grants, nil
}

// Revoke removes a user's elevated access grant.
func (r *SQLiteAccessRepository) Revoke(ctx context.Context, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM access WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("revoking access: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
