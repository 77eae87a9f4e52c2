package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"wordgate/internal/structures"
)

// NewConnection opens the sqlite database and initializes the schema.
// sqlite has a single writer, so the pool is capped at one connection.
func NewConnection(conf *structures.Config) (*sqlx.DB, error) {
	dir := filepath.Dir(conf.Storage.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", conf.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err = initializeSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			word TEXT NOT NULL COLLATE NOCASE UNIQUE,
			translation TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			last_shown_at TIMESTAMP,
			correct_count INTEGER NOT NULL DEFAULT 0,
			incorrect_count INTEGER NOT NULL DEFAULT 0,
			scheduling_state BLOB NOT NULL,
			due_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create cards table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_cards_due_at ON cards(due_at)`)
	if err != nil {
		return fmt.Errorf("failed to create due index: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS day_counters (
			day_key INTEGER PRIMARY KEY,
			new_shown INTEGER NOT NULL DEFAULT 0,
			review_shown INTEGER NOT NULL DEFAULT 0,
			reviews_since_last_new INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create day_counters table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS gate_sessions (
			app_id TEXT PRIMARY KEY,
			unlocked_at TIMESTAMP NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			attempts_used INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create gate_sessions table: %w", err)
	}

	return nil
}
