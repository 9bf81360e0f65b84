//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package source reads the denormalized tab-separated sales extract.
//
// The extract carries one header line followed by one line per customer.
// Fields 5-10 hold semicolon-joined sub-lists: positions 5/6/8 are
// co-indexed (product/category/price) and positions 5/9/10 are co-indexed
// (product/quantity/date).
package source

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Positional fields of a source line.
const (
	FieldName = iota
	FieldAddress
	FieldCity
	FieldCountry
	FieldRegion
	FieldProducts
	FieldCategories
	FieldDescriptions
	FieldPrices
	FieldQuantities
	FieldDates

	// FieldCount is the full width of a well-formed line.
	FieldCount
)

// ListSeparator joins the multi-valued sub-fields.
const ListSeparator = ";"

// compactDateLayout is the order-date form used in the extract.
const compactDateLayout = "20060102"

// DateLayout is the calendar-date form stored in OrderDetail.
const DateLayout = "2006-01-02"

// Record is one parsed source line. Fields are trimmed but otherwise
// untouched; sub-list accessors split on demand.
type Record struct {
	// Line is the 1-based line number in the source file, counting the
	// header. Useful for diagnostics on dropped records.
	Line int

	// Fields holds the trimmed tab-separated values.
	Fields []string
}

// Field returns the trimmed field at index i, or "" when the line is too
// short.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// List splits the sub-field at index i on the list separator, trimming
// each element. An absent field yields a nil slice.
func (r Record) List(i int) []string {
	raw := r.Field(i)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ListSeparator)
	for j := range parts {
		parts[j] = strings.TrimSpace(parts[j])
	}
	return parts
}

// SplitName splits the customer name field into first name and last name.
// The first whitespace-delimited token is the first name; the remainder
// joins into the last name. ok is false when fewer than two tokens exist.
func (r Record) SplitName() (first, last string, ok bool) {
	tokens := strings.Fields(r.Field(FieldName))
	if len(tokens) < 2 {
		return "", "", false
	}
	return tokens[0], strings.Join(tokens[1:], " "), true
}

// FullName returns the "First Last" join used as the customer lookup key.
func (r Record) FullName() (string, bool) {
	first, last, ok := r.SplitName()
	if !ok {
		return "", false
	}
	return first + " " + last, true
}

// ParseDate converts a compact YYYYMMDD order date to ISO calendar-date
// text.
func ParseDate(compact string) (string, error) {
	t, err := time.Parse(compactDateLayout, strings.TrimSpace(compact))
	if err != nil {
		return "", fmt.Errorf("invalid order date %q: %w", compact, err)
	}
	return t.Format(DateLayout), nil
}

// ParseQuantity converts a quantity sub-field to a positive integer.
func ParseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	if q <= 0 {
		return 0, fmt.Errorf("quantity %d is not positive", q)
	}
	return q, nil
}

// ParsePrice converts a unit-price sub-field to a positive decimal.
func ParsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unit price %q: %w", s, err)
	}
	if p <= 0 {
		return 0, fmt.Errorf("unit price %v is not positive", p)
	}
	return p, nil
}

// Reader reads records from a source extract. Each call to Scan re-opens
// the file from the start, so independent pipeline stages share no cursor.
type Reader struct {
	path string
}

// NewReader returns a Reader over the extract at path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Path returns the source file path.
func (r *Reader) Path() string {
	return r.path
}

// Scan calls fn for every record with at least minFields fields. The
// single header line is skipped, fields are split on tabs and trimmed, and
// shorter lines are silently dropped: malformed trailing lines are
// expected in raw extracts. Scan stops and returns fn's error if it is
// non-nil.
func (r *Reader) Scan(minFields int, fn func(Record) error) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			// Header
			continue
		}

		text := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < minFields {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if err := fn(Record{Line: line, Fields: fields}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}
	return nil
}
