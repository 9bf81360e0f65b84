package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/db"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/pipeline"
	"github.com/salesdash/salesdash/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the normalization pipeline",
	Long: `Build the normalized database from the denormalized extract. All
six tables are dropped and rebuilt in dependency order; rerunning against
the same source produces identical contents.

Example:
  salesdash build --source sales_data.txt --database normalized.db`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateBuild(); err != nil {
		return err
	}

	logging.Info().
		Str("source", cfg.Source).
		Str("database", cfg.Database).
		Msg("Building normalized database")

	ctx := context.Background()
	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	// A missing metadata table just means there is no previous build.
	prevFingerprint, err := db.GetMetadataValue(ctx, store, "source_fingerprint")
	if err != nil {
		prevFingerprint = ""
	}

	res, err := pipeline.Run(ctx, store, source.NewReader(cfg.Source))
	if err != nil {
		return err
	}

	if prevFingerprint == res.SourceFingerprint {
		logging.Info().
			Str("fingerprint", res.SourceFingerprint).
			Msg("Source file unchanged since previous build")
	}

	for _, table := range []string{"Region", "Country", "Customer", "ProductCategory", "Product", "OrderDetail"} {
		cmd.Printf("%-16s %d rows\n", table, res.RowCounts[table])
	}
	cmd.Printf("source fingerprint: %s\n", res.SourceFingerprint)

	return nil
}
