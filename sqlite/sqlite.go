// Package sqlite implements restaurant.Store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS restaurants (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	city TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	cuisine TEXT NOT NULL,
	seating_capacity INTEGER NOT NULL,
	available_capacity INTEGER NOT NULL,
	available_slots TEXT NOT NULL DEFAULT '[]',
	mood TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_restaurants_city ON restaurants(city);
CREATE INDEX IF NOT EXISTS idx_restaurants_cuisine ON restaurants(cuisine);

CREATE TABLE IF NOT EXISTS reservations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
	customer_name TEXT NOT NULL,
	contact_number TEXT NOT NULL,
	party_size INTEGER NOT NULL,
	reservation_time TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// DB wraps *sql.DB for concierge storage. The schema is owned by the app; the
// agent never issues raw SQL.
type DB struct {
	*sql.DB
}

// Open opens the SQLite database at path, creating the file and applying the
// schema if needed. Use ":memory:" for an ephemeral database.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &DB{db}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.DB.Close()
}
