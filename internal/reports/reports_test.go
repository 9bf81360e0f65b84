//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"context"
	"database/sql"
	"testing"

	"github.com/salesdash/salesdash/internal/pipeline"
	"github.com/salesdash/salesdash/internal/source"
	"github.com/salesdash/salesdash/internal/testutil"
)

// Sample totals: Alice Smith 20.00 + 76.50, Bob Jones 40.00,
// Carol Diaz 99.99 + 20.00.
func buildSample(t *testing.T) *sql.DB {
	t.Helper()
	store := testutil.OpenStore(t)
	src := source.NewReader(testutil.SampleSource(t))
	if _, err := pipeline.Run(context.Background(), store, src); err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}
	return store
}

func asFloat(t *testing.T, v any) float64 {
	t.Helper()
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		t.Fatalf("Expected a numeric value, got %T (%v)", v, v)
		return 0
	}
}

func TestCatalogLookup(t *testing.T) {
	if len(Catalog()) != 11 {
		t.Errorf("Expected 11 reports in the catalog, got %d", len(Catalog()))
	}

	r, err := Get("customer-total")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !r.NeedsCustomer {
		t.Error("Expected customer-total to require a customer")
	}

	if _, err := Get("no-such-report"); err == nil {
		t.Error("Expected an error for an unknown report name")
	}
}

func TestRunRequiresCustomer(t *testing.T) {
	store := buildSample(t)

	r, err := Get("customer-orders")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := r.Run(context.Background(), store, ""); err == nil {
		t.Error("Expected an error when the customer name is missing")
	}
}

func TestCustomerOrders(t *testing.T) {
	store := buildSample(t)

	r, err := Get("customer-orders")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	res, err := r.Run(context.Background(), store, "Alice Smith")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Rows) != 2 {
		t.Fatalf("Expected 2 orders for Alice Smith, got %d", len(res.Rows))
	}
	totalIdx := len(res.Columns) - 1
	got := map[float64]bool{}
	for _, row := range res.Rows {
		if row[0] != "Alice Smith" {
			t.Errorf("Expected Alice Smith rows only, got %v", row[0])
		}
		got[asFloat(t, row[totalIdx])] = true
	}
	for _, want := range []float64{20.0, 76.5} {
		if !got[want] {
			t.Errorf("Expected an order total of %.2f, got %v", want, got)
		}
	}
}

func TestCustomerTotal(t *testing.T) {
	store := buildSample(t)

	r, err := Get("customer-total")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	res, err := r.Run(context.Background(), store, "Bob Jones")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Rows) != 1 {
		t.Fatalf("Expected a single total row, got %d", len(res.Rows))
	}
	if total := asFloat(t, res.Rows[0][1]); total != 40.0 {
		t.Errorf("Expected total 40.00 for Bob Jones, got %v", total)
	}
}

func TestCustomerRankingsDescending(t *testing.T) {
	store := buildSample(t)

	r, err := Get("customer-rankings")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	res, err := r.Run(context.Background(), store, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []struct {
		name  string
		total float64
	}{
		{"Carol Diaz", 119.99},
		{"Alice Smith", 96.5},
		{"Bob Jones", 40.0},
	}
	if len(res.Rows) != len(want) {
		t.Fatalf("Expected %d ranked customers, got %d", len(want), len(res.Rows))
	}
	for i, w := range want {
		if res.Rows[i][0] != w.name {
			t.Errorf("Rank %d: expected %s, got %v", i+1, w.name, res.Rows[i][0])
		}
		if total := asFloat(t, res.Rows[i][1]); total != w.total {
			t.Errorf("Rank %d: expected total %.2f, got %v", i+1, w.total, total)
		}
	}
}

func TestRegionTopCountry(t *testing.T) {
	store := buildSample(t)

	r, err := Get("region-top-country")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	res, err := r.Run(context.Background(), store, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Only Asia (Japan) and Europe (Germany over France) have orders.
	want := [][2]string{{"Asia", "Japan"}, {"Europe", "Germany"}}
	if len(res.Rows) != len(want) {
		t.Fatalf("Expected %d regions, got %d", len(want), len(res.Rows))
	}
	for i, w := range want {
		if res.Rows[i][0] != w[0] || res.Rows[i][1] != w[1] {
			t.Errorf("Row %d: expected %s/%s, got %v/%v", i, w[0], w[1], res.Rows[i][0], res.Rows[i][1])
		}
		if rank := asFloat(t, res.Rows[i][3]); rank != 1 {
			t.Errorf("Row %d: expected rank 1, got %v", i, rank)
		}
	}
}

func TestEveryReportExecutes(t *testing.T) {
	store := buildSample(t)

	for _, r := range Catalog() {
		customer := ""
		if r.NeedsCustomer {
			customer = "Alice Smith"
		}
		res, err := r.Run(context.Background(), store, customer)
		if err != nil {
			t.Errorf("Report %s failed: %v", r.Name, err)
			continue
		}
		if len(res.Columns) == 0 {
			t.Errorf("Report %s returned no columns", r.Name)
		}
	}
}

func TestCustomersSorted(t *testing.T) {
	store := buildSample(t)

	names, err := Customers(context.Background(), store)
	if err != nil {
		t.Fatalf("Customers failed: %v", err)
	}
	want := []string{"Alice Smith", "Bob Jones", "Carol Diaz", "Eve Adams"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d customers, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}
