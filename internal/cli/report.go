package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/db"
	"github.com/salesdash/salesdash/internal/reports"
)

var (
	reportCustomer string
	reportJSON     bool
)

var reportCmd = &cobra.Command{
	Use:   "report <name>",
	Short: "Run one report from the catalog",
	Long: `Run a catalog report against the normalized database and print
its rows. Customer-scoped reports take --customer "First Last".

Example:
  salesdash report customer-orders --customer "Alice Smith"`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportCustomer, "customer", "",
		`customer display name ("First Last") for customer-scoped reports`)
	reportCmd.Flags().BoolVar(&reportJSON, "json", false,
		"emit JSON instead of a text table")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	report, err := reports.Get(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	res, err := report.Run(ctx, store, reportCustomer)
	if err != nil {
		return err
	}

	if reportJSON {
		return json.NewEncoder(os.Stdout).Encode(res)
	}
	printResult(cmd, res)
	return nil
}

// printResult renders a Result as an aligned text table.
func printResult(cmd *cobra.Command, res *reports.Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = ""
				continue
			}
			cells[i] = fmt.Sprintf("%v", v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	cmd.Printf("(%d rows)\n", len(res.Rows))
}
