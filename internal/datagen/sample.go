//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/salesdash/salesdash/internal/logging"
)

// header matches the positional field contract of the extract.
const header = "Name\tAddress\tCity\tCountry\tRegion\tProductName\tProductCategory\t" +
	"ProductCategoryDescription\tProductUnitPrice\tQuantityOrdered\tOrderDate"

// countryRegions is a fixed country-to-region mapping so every generated
// country resolves to exactly one region.
var countryRegions = map[string]string{
	"Brazil":         "South America",
	"Argentina":      "South America",
	"Chile":          "South America",
	"United States":  "North America",
	"Canada":         "North America",
	"Mexico":         "North America",
	"Germany":        "Europe",
	"France":         "Europe",
	"Spain":          "Europe",
	"Italy":          "Europe",
	"Japan":          "Asia",
	"India":          "Asia",
	"China":          "Asia",
	"South Africa":   "Africa",
	"Egypt":          "Africa",
	"Australia":      "Oceania",
	"New Zealand":    "Oceania",
	"United Kingdom": "Europe",
}

// GenerateOptions controls synthetic extract generation.
type GenerateOptions struct {
	// Output is the destination file path.
	Output string

	// Customers is the number of customer lines.
	Customers int

	// Products is the synthetic catalog size.
	Products int

	// MaxItems is the maximum number of line items per customer.
	MaxItems int

	// Seed makes output reproducible; zero picks a time-based seed.
	Seed uint64
}

type catalogEntry struct {
	name        string
	category    string
	description string
	price       float64
}

// GenerateSource writes a synthetic denormalized extract: a header line
// plus one line per customer with semicolon-joined sub-fields. Output is
// deterministic for a fixed non-zero seed.
func GenerateSource(opts GenerateOptions) error {
	var faker *Faker
	if opts.Seed != 0 {
		faker = NewFakerWithSeed(opts.Seed)
	} else {
		faker = NewFaker()
	}

	catalog := buildCatalog(faker, opts.Products)

	countries := make([]string, 0, len(countryRegions))
	for country := range countryRegions {
		countries = append(countries, country)
	}
	// Map iteration order must not leak into the output stream.
	slices.Sort(countries)

	f, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, header)

	dateStart := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	dateEnd := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < opts.Customers; i++ {
		country := Choose(faker, countries)
		items := faker.Int(1, opts.MaxItems)

		names := make([]string, 0, items)
		cats := make([]string, 0, items)
		descs := make([]string, 0, items)
		prices := make([]string, 0, items)
		quantities := make([]string, 0, items)
		dates := make([]string, 0, items)
		for j := 0; j < items; j++ {
			entry := Choose(faker, catalog)
			names = append(names, entry.name)
			cats = append(cats, entry.category)
			descs = append(descs, entry.description)
			prices = append(prices, fmt.Sprintf("%.2f", entry.price))
			quantities = append(quantities, fmt.Sprintf("%d", faker.Int(1, 25)))
			dates = append(dates, faker.DateRange(dateStart, dateEnd).Format("20060102"))
		}

		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			faker.FirstName(), faker.LastName(),
			faker.Street(), faker.City(),
			country, countryRegions[country],
			strings.Join(names, ";"),
			strings.Join(cats, ";"),
			strings.Join(descs, ";"),
			strings.Join(prices, ";"),
			strings.Join(quantities, ";"),
			strings.Join(dates, ";"),
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logging.Info().
		Str("output", opts.Output).
		Int("customers", opts.Customers).
		Int("products", len(catalog)).
		Msg("Generated synthetic extract")
	return nil
}

// buildCatalog generates a product catalog with unique names so price and
// category stay consistent for a product across the whole extract.
func buildCatalog(faker *Faker, size int) []catalogEntry {
	seen := make(map[string]struct{}, size)
	catalog := make([]catalogEntry, 0, size)
	for attempts := 0; len(catalog) < size && attempts < size*20; attempts++ {
		name := faker.ProductName()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		catalog = append(catalog, catalogEntry{
			name:        name,
			category:    faker.ProductCategory(),
			description: faker.ProductDescription(),
			price:       faker.Price(5, 500),
		})
	}
	return catalog
}
