//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/pkg/version"
)

const metadataTable = "build_info"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS build_info (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// FingerprintFile returns the xxh3 hash of the file contents as a hex
// string. The fingerprint recorded at build time lets consumers tell
// whether the database matches a given source extract.
func FingerprintFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open source for fingerprint: %w", err)
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash source: %w", err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// SaveMetadata records build metadata after a successful pipeline run.
func SaveMetadata(ctx context.Context, store *sql.DB, source, fingerprint string, rowCounts map[string]int) error {
	if _, err := store.ExecContext(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"source":             source,
		"source_fingerprint": fingerprint,
		"version":            version.Short(),
		"built_at":           time.Now().UTC().Format(time.RFC3339),
	}
	for table, n := range rowCounts {
		metadata["rows_"+table] = fmt.Sprintf("%d", n)
	}

	for key, value := range metadata {
		_, err := store.ExecContext(ctx, `
            INSERT INTO build_info (key, value) VALUES (?, ?)
            ON CONFLICT (key) DO UPDATE SET value = excluded.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Str("source", source).
		Str("fingerprint", fingerprint).
		Msg("Saved build metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, store *sql.DB, key string) (string, error) {
	var value string
	err := store.QueryRowContext(ctx, `
        SELECT value FROM build_info WHERE key = ?
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all build metadata as a map.
func GetAllMetadata(ctx context.Context, store *sql.DB) (map[string]string, error) {
	rows, err := store.QueryContext(ctx, `SELECT key, value FROM build_info`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, store *sql.DB) error {
	_, err := store.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}
