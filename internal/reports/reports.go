//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package reports implements the fixed catalog of analytical queries over
// the normalized sales schema.
package reports

import (
	"context"
	"database/sql"
	"fmt"
)

// Report is one catalog entry: a named, parameterized read-only query.
type Report struct {
	// Name is the catalog identifier.
	Name string

	// Description describes what the report returns.
	Description string

	// NeedsCustomer marks reports scoped to a single customer display
	// name.
	NeedsCustomer bool

	query string
}

// Result holds tabular report output.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

var catalog = []Report{
	{
		Name:          "customer-orders",
		Description:   "Order history for one customer with per-order totals",
		NeedsCustomer: true,
		query:         customerOrdersSQL,
	},
	{
		Name:          "customer-total",
		Description:   "Summed order total for one customer",
		NeedsCustomer: true,
		query:         customerTotalSQL,
	},
	{
		Name:        "customer-rankings",
		Description: "All customers by order total, descending",
		query:       customerRankingsSQL,
	},
	{
		Name:        "region-totals",
		Description: "Order totals per region, descending",
		query:       regionTotalsSQL,
	},
	{
		Name:        "country-totals",
		Description: "Order totals per country, descending",
		query:       countryTotalsSQL,
	},
	{
		Name:        "country-region-rank",
		Description: "Countries ranked by total within their region",
		query:       countryRegionRankSQL,
	},
	{
		Name:        "region-top-country",
		Description: "The top-ranked country of each region",
		query:       regionTopCountrySQL,
	},
	{
		Name:        "quarterly-sales",
		Description: "Customer totals per quarter and year",
		query:       quarterlySalesSQL,
	},
	{
		Name:        "quarterly-top5",
		Description: "Top five customers per quarter, ties included",
		query:       quarterlyTop5SQL,
	},
	{
		Name:        "monthly-rankings",
		Description: "Monthly totals ranked descending, months spelled out",
		query:       monthlyRankingsSQL,
	},
	{
		Name:        "order-gaps",
		Description: "Longest gap in days between consecutive orders per customer",
		query:       orderGapsSQL,
	},
}

// Catalog returns the report catalog in its fixed order.
func Catalog() []Report {
	out := make([]Report, len(catalog))
	copy(out, catalog)
	return out
}

// Get retrieves a report by name.
func Get(name string) (Report, error) {
	for _, r := range catalog {
		if r.Name == name {
			return r, nil
		}
	}
	return Report{}, fmt.Errorf("unknown report: %s", name)
}

// Run executes the report. customer is required when NeedsCustomer is set
// and ignored otherwise.
func (r Report) Run(ctx context.Context, store *sql.DB, customer string) (*Result, error) {
	if r.NeedsCustomer {
		if customer == "" {
			return nil, fmt.Errorf("report %s requires a customer name", r.Name)
		}
		return Execute(ctx, store, r.query, customer)
	}
	return Execute(ctx, store, r.query)
}

// Execute runs an arbitrary read-only query and collects all rows into a
// Result. Column metadata comes from the driver, so the same path serves
// catalog reports and translated ad hoc queries.
func Execute(ctx context.Context, store *sql.DB, query string, args ...any) (*Result, error) {
	rows, err := store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	res := &Result{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return res, nil
}

// Customers returns the distinct "First Last" display names, sorted.
func Customers(ctx context.Context, store *sql.DB) ([]string, error) {
	rows, err := store.QueryContext(ctx, `
        SELECT DISTINCT FirstName || ' ' || LastName AS Name
        FROM Customer ORDER BY Name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
