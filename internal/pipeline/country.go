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
	"slices"

	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/source"
)

const createCountrySQL = `
CREATE TABLE Country (
    CountryID INTEGER PRIMARY KEY,
    Country   TEXT NOT NULL,
    RegionID  INTEGER NOT NULL,
    FOREIGN KEY (RegionID) REFERENCES Region (RegionID)
)`

// BuildCountry extracts the distinct (country, region) pairs from the
// source, resolves region keys against the freshly built Region table, and
// loads the Country table sorted by country name.
//
// The source does not guarantee a country maps to a single region. When a
// country appears under several regions the pairing that sorts first is
// kept, so rebuilds stay deterministic, and each conflict is logged.
func BuildCountry(ctx context.Context, store *sql.DB, src *source.Reader) (int, error) {
	regionIDs, err := RegionIDs(ctx, store)
	if err != nil {
		return 0, err
	}

	type pair struct{ country, region string }
	seen := make(map[pair]struct{})
	err = src.Scan(source.FieldRegion+1, func(rec source.Record) error {
		p := pair{rec.Field(source.FieldCountry), rec.Field(source.FieldRegion)}
		if p.country != "" {
			seen[p] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	pairs := make([]pair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		if a.country != b.country {
			if a.country < b.country {
				return -1
			}
			return 1
		}
		if a.region < b.region {
			return -1
		}
		if a.region > b.region {
			return 1
		}
		return 0
	})

	var rows [][]any
	var dropped int
	lastCountry := ""
	for _, p := range pairs {
		if p.country == lastCountry {
			logging.Warn().
				Str("country", p.country).
				Str("region", p.region).
				Msg("Country paired with multiple regions; keeping first pairing")
			continue
		}
		regionID, ok := regionIDs[p.region]
		if !ok {
			dropped++
			continue
		}
		lastCountry = p.country
		rows = append(rows, []any{len(rows) + 1, p.country, regionID})
	}

	n, err := insertAll(ctx, store, "Country", createCountrySQL,
		[]string{"CountryID", "Country", "RegionID"}, rows)
	if err != nil {
		return 0, err
	}

	logging.Info().
		Int("rows", n).
		Int("dropped", dropped).
		Msg("Country table built")
	return n, nil
}

// CountryIDs loads the country-name lookup dictionary from the Country
// table.
func CountryIDs(ctx context.Context, store *sql.DB) (map[string]int64, error) {
	return queryIDs(ctx, store, "SELECT Country, CountryID FROM Country")
}
