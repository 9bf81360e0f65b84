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

const createProductCategorySQL = `
CREATE TABLE ProductCategory (
    ProductCategoryID          INTEGER PRIMARY KEY,
    ProductCategory            TEXT NOT NULL,
    ProductCategoryDescription TEXT NOT NULL
)`

// BuildProductCategory zips the category and description sub-lists of each
// source line, keeps non-empty category names with first-seen descriptions,
// and loads the ProductCategory table sorted by category name.
func BuildProductCategory(ctx context.Context, store *sql.DB, src *source.Reader) (int, error) {
	descriptions := make(map[string]string)
	err := src.Scan(source.FieldDescriptions+1, func(rec source.Record) error {
		cats := rec.List(source.FieldCategories)
		descs := rec.List(source.FieldDescriptions)
		for i := 0; i < len(cats) && i < len(descs); i++ {
			if cats[i] == "" {
				continue
			}
			if _, ok := descriptions[cats[i]]; !ok {
				descriptions[cats[i]] = descs[i]
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	sorted := slices.Sorted(maps.Keys(descriptions))

	rows := make([][]any, 0, len(sorted))
	for i, name := range sorted {
		rows = append(rows, []any{i + 1, name, descriptions[name]})
	}

	n, err := insertAll(ctx, store, "ProductCategory", createProductCategorySQL,
		[]string{"ProductCategoryID", "ProductCategory", "ProductCategoryDescription"}, rows)
	if err != nil {
		return 0, err
	}

	logging.Info().Int("rows", n).Msg("ProductCategory table built")
	return n, nil
}

// CategoryIDs loads the category-name lookup dictionary from the
// ProductCategory table.
func CategoryIDs(ctx context.Context, store *sql.DB) (map[string]int64, error) {
	return queryIDs(ctx, store,
		"SELECT ProductCategory, ProductCategoryID FROM ProductCategory")
}
