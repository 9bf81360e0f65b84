//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides store and source fixtures for tests.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salesdash/salesdash/internal/db"
)

// SourceHeader is the header line of the extract format.
const SourceHeader = "Name\tAddress\tCity\tCountry\tRegion\tProductName\tProductCategory\t" +
	"ProductCategoryDescription\tProductUnitPrice\tQuantityOrdered\tOrderDate"

// SampleLines is a small extract exercising the pipeline's edge cases:
// multi-valued sub-fields, a truncated quantity list (line 3), a
// single-token customer name (line 4), an unparsable price (line 5), and
// a short trailing line (line 6).
var SampleLines = []string{
	"Alice Smith\t1 Oak Ave\tBerlin\tGermany\tEurope\tWidget;Gadget\tTools;Toys\tHand tools;Fun things\t10.00;25.50\t2;3\t20230101;20230105",
	"Bob Jones\t2 Elm St\tLyon\tFrance\tEurope\tWidget\tTools\tHand tools\t10.00\t4\t20230310",
	"Carol Diaz\t3 Pine Rd\tOsaka\tJapan\tAsia\tSprocket;Widget;Gadget\tParts;Tools;Toys\tSpare parts;Hand tools;Fun things\t99.99;10.00;25.50\t1;2\t20230401;20230212;20230220",
	"Dave\t4 Birch Ln\tCairo\tEgypt\tAfrica\tWidget\tTools\tHand tools\t10.00\t5\t20230601",
	"Eve Adams\t5 Cedar Ct\tLima\tPeru\tSouth America\tGizmo\tToys\tFun things\tnotaprice\t2\t20230715",
	"Frank Moore\t6 Maple Dr\tRome",
}

// OpenStore opens a fresh SQLite store in a temp directory.
func OpenStore(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := db.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// WriteSource writes an extract with the standard header plus the given
// lines and returns its path.
func WriteSource(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales_data.txt")
	content := SourceHeader + "\n" + strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test source: %v", err)
	}
	return path
}

// SampleSource writes the canned sample extract and returns its path.
func SampleSource(t *testing.T) string {
	t.Helper()
	return WriteSource(t, SampleLines...)
}
