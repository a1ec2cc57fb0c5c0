package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// Foreign keys are enabled on every pooled connection through the DSN.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
// Timestamps are stored as unix milliseconds and embeddings as JSON arrays.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS commitments (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			source TEXT NOT NULL,
			recipient TEXT NOT NULL DEFAULT '',
			due_date INTEGER,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			urgency_score REAL NOT NULL DEFAULT 0,
			context TEXT NOT NULL DEFAULT '',
			related_messages TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			embedding TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_commitments_status ON commitments (status);`,
		`CREATE TABLE IF NOT EXISTS meetings (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			start_time INTEGER NOT NULL,
			end_time INTEGER,
			participants TEXT NOT NULL DEFAULT '[]',
			transcript TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			action_item_ids TEXT NOT NULL DEFAULT '[]',
			audio_path TEXT,
			audio_format TEXT,
			audio_duration_ms INTEGER,
			embedding TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS action_items (
			id TEXT PRIMARY KEY,
			meeting_id TEXT NOT NULL,
			description TEXT NOT NULL,
			assignee TEXT NOT NULL DEFAULT '',
			due_date INTEGER,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			embedding TEXT NOT NULL DEFAULT '[]',
			FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_action_items_meeting ON action_items (meeting_id);`,
		`CREATE TABLE IF NOT EXISTS clipboard_items (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			content_type TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			source_application TEXT NOT NULL DEFAULT '',
			embedding TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS screen_captures (
			id TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			image_data BLOB,
			content_hash TEXT NOT NULL,
			ocr_text TEXT NOT NULL DEFAULT '',
			application TEXT NOT NULL DEFAULT '',
			context TEXT NOT NULL DEFAULT '{}',
			embedding TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_screen_captures_timestamp ON screen_captures (timestamp);`,
		`CREATE TABLE IF NOT EXISTS ai_contexts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			content TEXT NOT NULL,
			relevance REAL NOT NULL DEFAULT 0,
			metadata TEXT NOT NULL DEFAULT '{}',
			timestamp INTEGER NOT NULL,
			embedding TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ai_contexts_type_ts ON ai_contexts (type, timestamp);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
