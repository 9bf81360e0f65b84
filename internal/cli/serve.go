package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/db"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/nlq"
	"github.com/salesdash/salesdash/internal/server"
)

var (
	serveAddr     string
	servePassword string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard HTTP API",
	Long: `Serve the report catalog, customer list, and natural-language
query endpoint as a JSON API for the dashboard front end.

The API reads the normalized database in place; do not run it while a
build is rewriting the tables.

Example:
  salesdash serve --addr :8080 --password secret`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (default: :8080)")
	serveCmd.Flags().StringVar(&servePassword, "password", "",
		"dashboard password (empty disables authentication)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}
	if servePassword != "" {
		cfg.Serve.Password = servePassword
	}

	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	if cfg.Serve.Password == "" {
		logging.Warn().Msg("No password configured; dashboard API is open")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	var translator *nlq.Translator
	if cfg.Ask.APIKey != "" {
		translator = nlq.NewTranslator(cfg.Ask.APIKey, cfg.Ask.BaseURL, cfg.Ask.Model)
	} else {
		logging.Warn().Msg("ask.api_key not set; /api/ask is disabled")
	}

	srv := server.New(store, translator, cfg.Serve.Password)
	if err := srv.ListenAndServe(ctx, cfg.Serve.Addr); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
