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

	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/source"
)

const createOrderDetailSQL = `
CREATE TABLE OrderDetail (
    OrderID         INTEGER PRIMARY KEY,
    CustomerID      INTEGER NOT NULL,
    ProductID       INTEGER NOT NULL,
    OrderDate       TEXT NOT NULL,
    QuantityOrdered INTEGER NOT NULL,
    FOREIGN KEY (CustomerID) REFERENCES Customer (CustomerID),
    FOREIGN KEY (ProductID) REFERENCES Product (ProductID)
)`

// BuildOrderDetail expands each source line into one row per line item by
// zipping the product, quantity and date sub-lists positionally, truncated
// to the shortest list. The customer is resolved once per line from the
// reconstituted "First Last" name and reused for every item; a line whose
// customer cannot be resolved contributes nothing.
//
// Each position is validated independently: the product must resolve, the
// quantity must parse as a positive integer, and the date must parse from
// its compact 8-digit form. A failing position drops only that line item.
//
// OrderIDs are auto-assigned in insertion order (source-line order, then
// sub-field position order); unlike the other tiers, no sort is applied.
func BuildOrderDetail(ctx context.Context, store *sql.DB, src *source.Reader) (int, error) {
	productIDs, err := ProductIDs(ctx, store)
	if err != nil {
		return 0, err
	}
	customerIDs, err := CustomerIDs(ctx, store)
	if err != nil {
		return 0, err
	}

	var rows [][]any
	var droppedLines, droppedItems int
	err = src.Scan(source.FieldCount, func(rec source.Record) error {
		fullName, ok := rec.FullName()
		if !ok {
			droppedLines++
			return nil
		}
		customerID, ok := customerIDs[fullName]
		if !ok {
			droppedLines++
			return nil
		}

		products := rec.List(source.FieldProducts)
		quantities := rec.List(source.FieldQuantities)
		dates := rec.List(source.FieldDates)

		n := min(len(products), len(quantities), len(dates))
		for i := 0; i < n; i++ {
			productID, ok := productIDs[products[i]]
			if !ok {
				droppedItems++
				continue
			}
			quantity, err := source.ParseQuantity(quantities[i])
			if err != nil {
				droppedItems++
				continue
			}
			date, err := source.ParseDate(dates[i])
			if err != nil {
				droppedItems++
				continue
			}
			rows = append(rows, []any{customerID, productID, date, quantity})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	n, err := insertAll(ctx, store, "OrderDetail", createOrderDetailSQL,
		[]string{"CustomerID", "ProductID", "OrderDate", "QuantityOrdered"}, rows)
	if err != nil {
		return 0, err
	}

	logging.Info().
		Int("rows", n).
		Int("dropped_lines", droppedLines).
		Int("dropped_items", droppedItems).
		Msg("OrderDetail table built")
	return n, nil
}
