// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store.go
// Summary: SQLite-backed carousel items and session state.
//
// Provides:
//   - An ordered item table the CLI can browse instead of a directory
//   - Per-carousel session rows remembering the centre item between runs

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelcarousel/internal/preview"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT '',
    language TEXT NOT NULL DEFAULT '',
    path TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);

CREATE TABLE IF NOT EXISTS session (
    name TEXT PRIMARY KEY,
    centre INTEGER NOT NULL,
    updated INTEGER NOT NULL
);
`

// Store persists carousel items and sessions.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec("INSERT INTO schema_version(version) VALUES (?)", schemaVersion)
		return err
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version > schemaVersion:
		return fmt.Errorf("store: database schema %d is newer than supported %d", version, schemaVersion)
	}
	return nil
}

// Items returns every item in position order.
func (s *Store) Items(ctx context.Context) ([]preview.Item, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title, body, language, path FROM items ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []preview.Item
	for rows.Next() {
		var it preview.Item
		if err := rows.Scan(&it.Title, &it.Body, &it.Language, &it.Path); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Add appends items after the current last position.
func (s *Store) Add(ctx context.Context, items ...preview.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), -1) + 1 FROM items").Scan(&next); err != nil {
		return fmt.Errorf("next position: %w", err)
	}
	if err := insertItems(ctx, tx, next, items); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace swaps the whole item table for items.
func (s *Store) Replace(ctx context.Context, items []preview.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	if err := insertItems(ctx, tx, 0, items); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("Store: Replaced items with %d entries", len(items))
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, start int, items []preview.Item) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO items(position, title, body, language, path) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, it := range items {
		if _, err := stmt.ExecContext(ctx, start+i, it.Title, it.Body, it.Language, it.Path); err != nil {
			return fmt.Errorf("insert item %q: %w", it.Title, err)
		}
	}
	return nil
}

// SaveCentre remembers the centre item of the named carousel.
func (s *Store) SaveCentre(ctx context.Context, name string, centre int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session(name, centre, updated) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET centre = excluded.centre, updated = excluded.updated`,
		name, centre, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("save session %q: %w", name, err)
	}
	return nil
}

// LoadCentre returns the saved centre item, reporting false when none exists.
func (s *Store) LoadCentre(ctx context.Context, name string) (int, bool, error) {
	var centre int
	err := s.db.QueryRowContext(ctx, "SELECT centre FROM session WHERE name = ?", name).Scan(&centre)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load session %q: %w", name, err)
	}
	return centre, true, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
