// Package store is the local SQLite telemetry database. It records LLM
// request events only; learner sessions are never written to disk.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle.
type Store struct {
	drv *entsql.Driver
}

var pragmas = []string{
	"journal_mode = WAL",
	"busy_timeout = 5000",
	"foreign_keys = ON",
	"synchronous = NORMAL",
}

// Columns and indexes mirror ent/schema.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS ` + llmEventsTable + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON ` + llmEventsTable + ` (purpose)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_model ON ` + llmEventsTable + ` (model)`,
}

// Open opens (or creates) the database at dsn and brings its tables up to date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := prepare(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{drv: entsql.OpenDB(dialect.SQLite, db)}, nil
}

func prepare(ctx context.Context, db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, "PRAGMA "+p); err != nil {
			return fmt.Errorf("pragma %s: %w", p, err)
		}
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// DB exposes the raw handle for ad hoc queries.
func (s *Store) DB() *sql.DB {
	return s.drv.DB()
}

func (s *Store) Close() error {
	return s.drv.Close()
}

// EventRepo returns the LLM event repository.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.drv.DB()}
}

// DefaultPath picks the database file: $WORDWHIZ_DB, then
// $XDG_DATA_HOME/wordwhiz/wordwhiz.db, then ~/.local/share/wordwhiz/wordwhiz.db.
// The parent directory is created.
func DefaultPath() (string, error) {
	if p := os.Getenv("WORDWHIZ_DB"); p != "" {
		return p, EnsureParent(p)
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(base, "wordwhiz", "wordwhiz.db")
	return p, EnsureParent(p)
}

// EnsureParent creates the directory that will hold path.
func EnsureParent(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
