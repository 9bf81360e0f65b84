//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package db provides access to the normalized SQLite store for salesdash.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"

	"github.com/salesdash/salesdash/internal/logging"
)

// Open opens the SQLite database at path with foreign-key enforcement
// enabled and verifies the connection. Callers must check the error before
// using the handle; there is no degraded nil-connection mode.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}

	dsn := "file:" + url.PathEscape(path) + "?_pragma=foreign_keys(1)"
	store, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The pipeline is single-writer and every stage runs one transaction
	// at a time; a single connection also guarantees the foreign_keys
	// pragma applies to every statement.
	store.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.PingContext(pingCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := store.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	logging.Debug().
		Str("path", path).
		Msg("Opened database")

	return store, nil
}

// CheckIntegrity runs SQLite's foreign-key check over the whole schema and
// returns an error naming the first violating table, if any.
func CheckIntegrity(ctx context.Context, store *sql.DB) error {
	rows, err := store.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return fmt.Errorf("foreign key check failed: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		var table string
		var rowid sql.NullInt64
		var parent string
		var fkid int
		if err := rows.Scan(&table, &rowid, &parent, &fkid); err != nil {
			return fmt.Errorf("foreign key check scan: %w", err)
		}
		return fmt.Errorf("foreign key violation in %s referencing %s", table, parent)
	}
	return rows.Err()
}
