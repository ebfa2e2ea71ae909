// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/sqlite.go
// Summary: SQLite-backed batch source. Serves row batches from a local
// database file via the modernc.org/sqlite driver, plus a seeder for the
// demo dataset.

package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"texeltable/grid"
)

const schema = `
CREATE TABLE IF NOT EXISTS people (
	id    INTEGER PRIMARY KEY,
	name  TEXT NOT NULL,
	email TEXT NOT NULL
);`

// SQLite serves batches from the people table of a SQLite database,
// ordered by id.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// Count returns the number of rows in the dataset.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("source: count: %w", err)
	}
	return n, nil
}

// FetchRows returns count rows starting at startIndex in id order.
func (s *SQLite) FetchRows(ctx context.Context, startIndex, count int) ([]grid.Row, error) {
	if startIndex < 0 || count < 0 {
		return nil, fmt.Errorf("source: invalid range [%d,%d)", startIndex, startIndex+count)
	}
	rs, err := s.db.QueryContext(ctx,
		`SELECT id, name, email FROM people ORDER BY id LIMIT ? OFFSET ?`,
		count, startIndex)
	if err != nil {
		return nil, fmt.Errorf("source: query batch [%d,%d): %w", startIndex, startIndex+count, err)
	}
	defer rs.Close()

	rows := make([]grid.Row, 0, count)
	for rs.Next() {
		var r grid.Row
		if err := rs.Scan(&r.ID, &r.Name, &r.Email); err != nil {
			return nil, fmt.Errorf("source: scan row: %w", err)
		}
		rows = append(rows, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("source: iterate batch: %w", err)
	}
	return rows, nil
}

// Seed creates the people table at path and fills it with n generated rows,
// replacing any existing contents. Row identity matches the simulated
// source so the two backends are interchangeable.
func Seed(ctx context.Context, path string, n int) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("source: open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("source: create schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM people`); err != nil {
		return fmt.Errorf("source: clear table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("source: begin seed tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO people (id, name, email) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("source: prepare insert: %w", err)
	}
	for id := 1; id <= n; id++ {
		name := fmt.Sprintf("User %d", id)
		email := fmt.Sprintf("user%d@example.com", id)
		if _, err := stmt.ExecContext(ctx, id, name, email); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("source: insert row %d: %w", id, err)
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("source: commit seed: %w", err)
	}
	return nil
}
