// Package storage persists ledger snapshot slots in SQLite. The ledger
// writes whole-collection documents, not rows, so the schema is a single
// key-to-payload table rather than one table per record type.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteSlots struct {
	db *sql.DB
}

// NewSQLiteSlots opens (creating if needed) the database at dbPath and runs
// the embedded migrations.
func NewSQLiteSlots(dbPath string) (*SQLiteSlots, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteSlots{db: db}, nil
}

func (s *SQLiteSlots) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements ledger.Snapshotter.
func (s *SQLiteSlots) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load slot %s: %w", key, err)
	}
	return payload, true, nil
}

// Save implements ledger.Snapshotter, overwriting the slot's payload.
func (s *SQLiteSlots) Save(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save slot %s: %w", key, err)
	}

	slog.DebugContext(ctx, "Slot saved", "slot", key, "bytes", len(payload))
	return nil
}

// UpdatedAt reports when a slot was last written, for the readiness probe
// and operational curiosity.
func (s *SQLiteSlots) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM slots WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("slot updated_at %s: %w", key, err)
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse slot updated_at %s: %w", key, err)
	}
	return ts, true, nil
}
