//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salesdash.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/reports"
	"github.com/salesdash/salesdash/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	database   string
	sourceFile string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesdash",
		Short: "Sales analytics over a normalized extract database",
		Long: `salesdash normalizes a flat tab-separated sales extract into a
relational SQLite schema and runs analytical reports over it.

The build command runs the full ETL pipeline: it deduplicates each entity
tier, assigns surrogate keys in deterministic sorted order, and loads the
tables in dependency order with referential integrity enforced. Reports,
natural-language queries, and the dashboard HTTP API all read the same
database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesdash.yaml)")
	rootCmd.PersistentFlags().StringVar(&database, "database", "",
		"path of the normalized SQLite database")
	rootCmd.PersistentFlags().StringVar(&sourceFile, "source", "",
		"path of the denormalized tab-separated extract")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if database != "" {
		cfg.Database = database
	}
	if sourceFile != "" {
		cfg.Source = sourceFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List available reports",
	Long: `List all reports in the catalog. Reports marked with (customer)
take a --customer flag naming a customer as "First Last".`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		cmd.Println()
		for _, r := range reports.Catalog() {
			suffix := ""
			if r.NeedsCustomer {
				suffix = " (customer)"
			}
			cmd.Printf("  %-20s - %s%s\n", r.Name, r.Description, suffix)
		}
		cmd.Println()
		cmd.Println("Use 'salesdash report <name>' to run one.")
	},
}
