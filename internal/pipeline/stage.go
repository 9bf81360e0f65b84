//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline implements the ETL stages that normalize the
// denormalized sales extract into the relational schema.
//
// Stages run in strict dependency order: Region, Country, Customer,
// ProductCategory, Product, OrderDetail. Each stage reads the full source,
// computes its rows in memory, drops and recreates its table, and inserts
// every row in one transaction. Rebuilds are deterministic: surrogate keys
// are assigned 1..N in sorted natural-key order, so rerunning a stage on
// the same source produces identical table contents.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// replaceTable drops the named table if present and recreates it from ddl.
// Each stage exclusively owns its table, so a destructive replace is safe.
func replaceTable(ctx context.Context, tx *sql.Tx, table, ddl string) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("failed to drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create %s: %w", table, err)
	}
	return nil
}

// insertAll replaces the table and bulk-inserts rows inside a single
// transaction: all rows become visible together or not at all.
func insertAll(ctx context.Context, store *sql.DB, table, ddl string, columns []string, rows [][]any) (int, error) {
	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction for %s: %w", table, err)
	}
	defer tx.Rollback()

	if err := replaceTable(ctx, tx, table, ddl); err != nil {
		return 0, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders,
	))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return len(rows), nil
}

// queryIDs loads a name-to-surrogate-key lookup dictionary. The query must
// select (name, id) pairs. Where the name column is not declared unique,
// duplicates resolve last-write-wins.
func queryIDs(ctx context.Context, store *sql.DB, query string) (map[string]int64, error) {
	rows, err := store.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var name string
		var id int64
		if err := rows.Scan(&name, &id); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, rows.Err()
}
