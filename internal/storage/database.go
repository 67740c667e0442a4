package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// ErrValidation is returned when user-supplied input is rejected before any
// write happens: empty question or answer, or a category outside the seeded
// set. It is the one failure the UI is expected to explain to the user.
var ErrValidation = errors.New("invalid flashcard input")

// DB represents a wrapper around the SQL database connection. It is the sole
// owner of the flashcard schema; construct one at startup and pass it to
// consumers rather than sharing a package-level handle.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to
// date. Applying the schema is idempotent, so Open is safe to call against
// an already-initialized database file.
func Open(dsn string) (*DB, error) {
	// foreign_keys enforces the category reference; case_sensitive_like
	// keeps question prefix search case-sensitive.
	db, err := sql.Open("sqlite", dsn+"?_pragma=foreign_keys(1)&_pragma=case_sensitive_like(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One logical handle: the app is single-user and every operation is
	// serialized through this connection. Also keeps ":memory:" databases
	// coherent, since each pooled connection would otherwise get its own.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables and seed categories if absent.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
