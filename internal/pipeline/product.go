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

const createProductSQL = `
CREATE TABLE Product (
    ProductID         INTEGER PRIMARY KEY,
    ProductName       TEXT NOT NULL,
    ProductUnitPrice  REAL NOT NULL,
    ProductCategoryID INTEGER NOT NULL,
    FOREIGN KEY (ProductCategoryID) REFERENCES ProductCategory (ProductCategoryID)
)`

// BuildProduct zips the product, category and price sub-lists of each
// source line, resolves category keys, and loads the Product table sorted
// by product name. An entry whose category is unknown or whose price does
// not parse as a positive number is dropped; on duplicate product names
// the last-seen price and category win.
func BuildProduct(ctx context.Context, store *sql.DB, src *source.Reader) (int, error) {
	categoryIDs, err := CategoryIDs(ctx, store)
	if err != nil {
		return 0, err
	}

	type product struct {
		price      float64
		categoryID int64
	}
	products := make(map[string]product)
	var dropped int
	err = src.Scan(source.FieldPrices+1, func(rec source.Record) error {
		names := rec.List(source.FieldProducts)
		cats := rec.List(source.FieldCategories)
		prices := rec.List(source.FieldPrices)

		n := min(len(names), len(cats), len(prices))
		for i := 0; i < n; i++ {
			if names[i] == "" {
				continue
			}
			categoryID, ok := categoryIDs[cats[i]]
			if !ok {
				dropped++
				continue
			}
			price, err := source.ParsePrice(prices[i])
			if err != nil {
				dropped++
				continue
			}
			products[names[i]] = product{price: price, categoryID: categoryID}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	sorted := slices.Sorted(maps.Keys(products))

	rows := make([][]any, 0, len(sorted))
	for i, name := range sorted {
		p := products[name]
		rows = append(rows, []any{i + 1, name, p.price, p.categoryID})
	}

	n, err := insertAll(ctx, store, "Product", createProductSQL,
		[]string{"ProductID", "ProductName", "ProductUnitPrice", "ProductCategoryID"}, rows)
	if err != nil {
		return 0, err
	}

	logging.Info().
		Int("rows", n).
		Int("dropped", dropped).
		Msg("Product table built")
	return n, nil
}

// ProductIDs loads the product-name lookup dictionary from the Product
// table.
func ProductIDs(ctx context.Context, store *sql.DB) (map[string]int64, error) {
	return queryIDs(ctx, store, "SELECT ProductName, ProductID FROM Product")
}
