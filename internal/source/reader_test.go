package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

func TestScanSkipsHeaderAndShortLines(t *testing.T) {
	path := writeFile(t, "Name\tAddress\tCity\n"+
		"Alice Smith\t1 Oak Ave\tBerlin\n"+
		"too\tshort\n"+
		"\n"+
		"Bob Jones\t2 Elm St\tLyon\n")

	var records []Record
	err := NewReader(path).Scan(3, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if got := records[0].Field(FieldName); got != "Alice Smith" {
		t.Errorf("Expected first record 'Alice Smith', got %q", got)
	}
	if records[1].Line != 5 {
		t.Errorf("Expected second record at line 5, got %d", records[1].Line)
	}
}

func TestScanTrimsFields(t *testing.T) {
	path := writeFile(t, "h1\th2\n  Alice Smith \t Berlin \n")

	err := NewReader(path).Scan(2, func(rec Record) error {
		if got := rec.Field(0); got != "Alice Smith" {
			t.Errorf("Expected trimmed name, got %q", got)
		}
		if got := rec.Field(1); got != "Berlin" {
			t.Errorf("Expected trimmed city, got %q", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
}

func TestScanIsRestartable(t *testing.T) {
	path := writeFile(t, "h\nAlice Smith\nBob Jones\n")
	r := NewReader(path)

	for pass := 0; pass < 2; pass++ {
		count := 0
		if err := r.Scan(1, func(Record) error { count++; return nil }); err != nil {
			t.Fatalf("Scan pass %d failed: %v", pass, err)
		}
		if count != 2 {
			t.Errorf("Pass %d: expected 2 records, got %d", pass, count)
		}
	}
}

func TestRecordList(t *testing.T) {
	rec := Record{Fields: []string{"", "", "", "", "", "Widget; Gadget ;Sprocket"}}

	got := rec.List(FieldProducts)
	want := []string{"Widget", "Gadget", "Sprocket"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d elements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Element %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if rec.List(FieldDates) != nil {
		t.Error("Expected nil list for absent field")
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name  string
		field string
		first string
		last  string
		ok    bool
	}{
		{"two tokens", "Alice Smith", "Alice", "Smith", true},
		{"three tokens", "Mary Jane Watson", "Mary", "Jane Watson", true},
		{"one token", "Dave", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{Fields: []string{tt.field}}
			first, last, ok := rec.SplitName()
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if first != tt.first || last != tt.last {
				t.Errorf("Expected (%q, %q), got (%q, %q)", tt.first, tt.last, first, last)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"valid", "20230105", "2023-01-05", false},
		{"valid with spaces", " 20231231 ", "2023-12-31", false},
		{"too short", "202301", "", true},
		{"not a date", "2023ab05", "", true},
		{"invalid month", "20231301", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	if _, err := ParseQuantity("0"); err == nil {
		t.Error("Expected error for zero quantity")
	}
	if _, err := ParseQuantity("-2"); err == nil {
		t.Error("Expected error for negative quantity")
	}
	if _, err := ParseQuantity("x"); err == nil {
		t.Error("Expected error for non-numeric quantity")
	}
	q, err := ParseQuantity(" 7 ")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if q != 7 {
		t.Errorf("Expected 7, got %d", q)
	}
}

func TestParsePrice(t *testing.T) {
	if _, err := ParsePrice("notaprice"); err == nil {
		t.Error("Expected error for non-numeric price")
	}
	if _, err := ParsePrice("0"); err == nil {
		t.Error("Expected error for zero price")
	}
	p, err := ParsePrice("25.50")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p != 25.5 {
		t.Errorf("Expected 25.5, got %v", p)
	}
}
