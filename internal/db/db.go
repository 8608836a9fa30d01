// Package db manages the SQLite trip store used for aggregations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes the schema. Use
// MemoryPath for a store that disappears with the process.
func New(path string) (*DB, error) {
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// configure sets up database pragmas. The store is rebuilt on every session
// iteration, so durability is traded for load speed.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=OFF",
		"PRAGMA synchronous=OFF",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS trips (
		id INTEGER PRIMARY KEY,
		start_time TEXT NOT NULL,
		duration REAL,
		start_station TEXT,
		end_station TEXT,
		user_type TEXT,
		gender TEXT,
		birth_year INTEGER,
		month INTEGER NOT NULL,
		day_of_week INTEGER NOT NULL,
		hour INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trips_route ON trips(start_station, end_station);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
