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
	"maps"
	"slices"

	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/source"
)

const createRegionSQL = `
CREATE TABLE Region (
    RegionID INTEGER PRIMARY KEY,
    Region   TEXT NOT NULL
)`

// BuildRegion extracts the distinct non-empty region names from the
// source and loads the Region table, assigning RegionIDs 1..N in sorted
// name order. Returns the number of rows inserted.
func BuildRegion(ctx context.Context, store *sql.DB, src *source.Reader) (int, error) {
	names := make(map[string]struct{})
	err := src.Scan(source.FieldRegion+1, func(rec source.Record) error {
		if name := rec.Field(source.FieldRegion); name != "" {
			names[name] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	sorted := slices.Sorted(maps.Keys(names))

	rows := make([][]any, 0, len(sorted))
	for i, name := range sorted {
		rows = append(rows, []any{i + 1, name})
	}

	n, err := insertAll(ctx, store, "Region", createRegionSQL,
		[]string{"RegionID", "Region"}, rows)
	if err != nil {
		return 0, err
	}

	logging.Info().Int("rows", n).Msg("Region table built")
	return n, nil
}

// RegionIDs loads the region-name lookup dictionary from the Region table.
func RegionIDs(ctx context.Context, store *sql.DB) (map[string]int64, error) {
	return queryIDs(ctx, store, "SELECT Region, RegionID FROM Region")
}
