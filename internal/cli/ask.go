package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/db"
	"github.com/salesdash/salesdash/internal/nlq"
	"github.com/salesdash/salesdash/internal/reports"
)

var (
	askAPIKey  string
	askBaseURL string
	askModel   string
	askSQLOnly bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Translate a question to SQL and run it",
	Long: `Translate a natural-language question into a read-only SQL query
via an OpenAI-compatible chat-completions API, then execute it against the
normalized database.

Only single SELECT statements are executed; anything else is rejected.

Example:
  salesdash ask "which five products sold the most units last year?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "",
		"API key for the completion endpoint")
	askCmd.Flags().StringVar(&askBaseURL, "base-url", "",
		"OpenAI-compatible API root")
	askCmd.Flags().StringVar(&askModel, "model", "",
		"completion model name")
	askCmd.Flags().BoolVar(&askSQLOnly, "sql-only", false,
		"print the generated SQL without executing it")
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if askAPIKey != "" {
		cfg.Ask.APIKey = askAPIKey
	}
	if askBaseURL != "" {
		cfg.Ask.BaseURL = askBaseURL
	}
	if askModel != "" {
		cfg.Ask.Model = askModel
	}

	if err := cfg.ValidateAsk(); err != nil {
		return err
	}

	ctx := context.Background()
	translator := nlq.NewTranslator(cfg.Ask.APIKey, cfg.Ask.BaseURL, cfg.Ask.Model)

	query, err := translator.Translate(ctx, args[0])
	if err != nil {
		return err
	}
	if err := nlq.Guard(query); err != nil {
		return fmt.Errorf("refusing generated statement: %w", err)
	}

	cmd.Println(query)
	if askSQLOnly {
		return nil
	}
	cmd.Println()

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	res, err := reports.Execute(ctx, store, query)
	if err != nil {
		return err
	}
	printResult(cmd, res)
	return nil
}
