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
	"sort"

	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/source"
)

const createCustomerSQL = `
CREATE TABLE Customer (
    CustomerID INTEGER PRIMARY KEY,
    FirstName  TEXT NOT NULL,
    LastName   TEXT NOT NULL,
    Address    TEXT NOT NULL,
    City       TEXT NOT NULL,
    CountryID  INTEGER NOT NULL,
    FOREIGN KEY (CountryID) REFERENCES Country (CountryID)
)`

// BuildCustomer extracts customer identity and address fields, resolves
// country keys, and loads the Customer table sorted by "First Last".
// Records whose name has fewer than two tokens or whose country is
// unknown are dropped.
func BuildCustomer(ctx context.Context, store *sql.DB, src *source.Reader) (int, error) {
	countryIDs, err := CountryIDs(ctx, store)
	if err != nil {
		return 0, err
	}

	type customer struct {
		first, last, address, city string
		countryID                  int64
	}
	var customers []customer
	var dropped int
	err = src.Scan(source.FieldCountry+1, func(rec source.Record) error {
		first, last, ok := rec.SplitName()
		if !ok {
			dropped++
			return nil
		}
		countryID, ok := countryIDs[rec.Field(source.FieldCountry)]
		if !ok {
			dropped++
			return nil
		}
		customers = append(customers, customer{
			first:     first,
			last:      last,
			address:   rec.Field(source.FieldAddress),
			city:      rec.Field(source.FieldCity),
			countryID: countryID,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Stable keeps source order for identical full names, so rebuilds
	// assign the same CustomerIDs.
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].first+" "+customers[i].last < customers[j].first+" "+customers[j].last
	})

	collisions := 0
	counts := make(map[string]int, len(customers))
	for _, c := range customers {
		counts[c.first+" "+c.last]++
	}
	for name, n := range counts {
		if n > 1 {
			collisions++
			logging.Warn().
				Str("name", name).
				Int("count", n).
				Msg("Multiple customers share a full name; downstream lookups resolve last-write-wins")
		}
	}

	rows := make([][]any, 0, len(customers))
	for i, c := range customers {
		rows = append(rows, []any{i + 1, c.first, c.last, c.address, c.city, c.countryID})
	}

	n, err := insertAll(ctx, store, "Customer", createCustomerSQL,
		[]string{"CustomerID", "FirstName", "LastName", "Address", "City", "CountryID"}, rows)
	if err != nil {
		return 0, err
	}

	logging.Info().
		Int("rows", n).
		Int("dropped", dropped).
		Int("name_collisions", collisions).
		Msg("Customer table built")
	return n, nil
}

// CustomerIDs loads the full-name lookup dictionary from the Customer
// table. Full names are not declared unique; duplicates resolve
// last-write-wins.
func CustomerIDs(ctx context.Context, store *sql.DB) (map[string]int64, error) {
	return queryIDs(ctx, store,
		"SELECT FirstName || ' ' || LastName, CustomerID FROM Customer")
}
