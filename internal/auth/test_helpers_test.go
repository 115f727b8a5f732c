package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the users schema applied.
// The database file is cleaned up when the test completes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "auth-test-*.db")
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

		CREATE INDEX idx_users_email ON users(email);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("applying users schema: %v", err)
	}

	return db
}

// seedTestUser inserts a user with a hashed password and returns it.
func seedTestUser(t *testing.T, db *sql.DB, email, password string) *User {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	repo := NewUserRepository(db)
	user := &User{
		FirstName:    "Ana",
		FLastName:    "Torres",
		Email:        email,
		Phone:        "5550001",
		Role:         "citizen",
		PasswordHash: hash,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}
