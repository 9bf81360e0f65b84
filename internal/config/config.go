//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesdash.
// Configuration is loaded from config files and CLI flags; CLI flags take
// precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salesdash.
type Config struct {
	// Database is the path of the normalized SQLite database file.
	Database string `mapstructure:"database"`

	// Source is the path of the denormalized tab-separated extract.
	Source string `mapstructure:"source"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Serve holds configuration for the serve subcommand.
	Serve ServeConfig `mapstructure:"serve"`

	// Ask holds configuration for the natural-language query translator.
	Ask AskConfig `mapstructure:"ask"`

	// Generate holds configuration for the sample-source generator.
	Generate GenerateConfig `mapstructure:"generate"`
}

// ServeConfig holds configuration for the dashboard HTTP API.
type ServeConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr"`

	// Password protects the dashboard API. Empty disables authentication.
	Password string `mapstructure:"password"`
}

// AskConfig holds configuration for the chat-completions translator.
type AskConfig struct {
	// APIKey authenticates against the completion endpoint.
	APIKey string `mapstructure:"api_key"`

	// BaseURL is the OpenAI-compatible API root.
	BaseURL string `mapstructure:"base_url"`

	// Model is the completion model name.
	Model string `mapstructure:"model"`
}

// GenerateConfig holds configuration for synthetic source generation.
type GenerateConfig struct {
	// Output is the file the generated extract is written to.
	Output string `mapstructure:"output"`

	// Customers is the number of customer lines to generate.
	Customers int `mapstructure:"customers"`

	// Products is the size of the synthetic product catalog.
	Products int `mapstructure:"products"`

	// MaxItems is the maximum number of line items per customer line.
	MaxItems int `mapstructure:"max_items"`

	// Seed makes generation reproducible. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Database: "normalized.db",
		Source:   "sales_data.txt",
		LogLevel: "info",
		Serve: ServeConfig{
			Addr: ":8080",
		},
		Ask: AskConfig{
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "llama-3.3-70b-versatile",
		},
		Generate: GenerateConfig{
			Output:    "sales_data.txt",
			Customers: 100,
			Products:  40,
			MaxItems:  8,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesdash.yaml
// 3. ~/.config/salesdash/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salesdash")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesdash"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

// ValidateBuild checks configuration required for the build command.
func (c *Config) ValidateBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Source == "" {
		return fmt.Errorf("source file path is required for build")
	}
	return nil
}

// ValidateServe checks configuration required for the serve command.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("listen address is required for serve")
	}
	return nil
}

// ValidateAsk checks configuration required for the ask command.
func (c *Config) ValidateAsk() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Ask.APIKey == "" {
		return fmt.Errorf("ask.api_key is required for natural-language queries")
	}
	if c.Ask.BaseURL == "" {
		return fmt.Errorf("ask.base_url is required")
	}
	if c.Ask.Model == "" {
		return fmt.Errorf("ask.model is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Output == "" {
		return fmt.Errorf("generate.output is required")
	}
	if c.Generate.Customers < 1 {
		return fmt.Errorf("generate.customers must be at least 1")
	}
	if c.Generate.Products < 1 {
		return fmt.Errorf("generate.products must be at least 1")
	}
	if c.Generate.MaxItems < 1 {
		return fmt.Errorf("generate.max_items must be at least 1")
	}
	return nil
}
