//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/salesdash/salesdash/internal/db"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/source"
)

// Result summarizes a full pipeline run.
type Result struct {
	// RowCounts maps table name to the number of rows inserted.
	RowCounts map[string]int

	// SourceFingerprint is the xxh3 hash of the source file contents.
	SourceFingerprint string
}

// Run executes the full normalization pipeline against the store. Any
// previous build is torn down first: all six tables and the build
// metadata are dropped in reverse dependency order, so foreign-key
// enforcement never blocks a rebuild. Stages then run strictly in
// dependency order; a later stage only starts after the earlier stage's
// transaction has committed, since it resolves foreign keys against the
// earlier table. The first store error aborts the run — a partial build
// is recovered by rerunning, as every stage rebuilds its table from
// scratch.
func Run(ctx context.Context, store *sql.DB, src *source.Reader) (*Result, error) {
	stages := []struct {
		table string
		build func(context.Context, *sql.DB, *source.Reader) (int, error)
	}{
		{"Region", BuildRegion},
		{"Country", BuildCountry},
		{"Customer", BuildCustomer},
		{"ProductCategory", BuildProductCategory},
		{"Product", BuildProduct},
		{"OrderDetail", BuildOrderDetail},
	}

	// Child tables drop first: the foreign_keys pragma refuses to drop a
	// parent table while rows still reference it.
	for i := len(stages) - 1; i >= 0; i-- {
		if _, err := store.ExecContext(ctx, "DROP TABLE IF EXISTS "+stages[i].table); err != nil {
			return nil, fmt.Errorf("failed to drop %s: %w", stages[i].table, err)
		}
	}
	if err := db.DropMetadata(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to drop build metadata: %w", err)
	}

	res := &Result{RowCounts: make(map[string]int, len(stages))}
	for _, stage := range stages {
		n, err := stage.build(ctx, store, src)
		if err != nil {
			return nil, fmt.Errorf("%s stage failed: %w", stage.table, err)
		}
		res.RowCounts[stage.table] = n
	}

	if err := db.CheckIntegrity(ctx, store); err != nil {
		return nil, err
	}

	fingerprint, err := db.FingerprintFile(src.Path())
	if err != nil {
		return nil, err
	}
	res.SourceFingerprint = fingerprint

	if err := db.SaveMetadata(ctx, store, src.Path(), fingerprint, res.RowCounts); err != nil {
		return nil, err
	}

	logging.Info().
		Str("fingerprint", fingerprint).
		Msg("Pipeline complete")
	return res, nil
}
