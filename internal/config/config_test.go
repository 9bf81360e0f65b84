package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Database != "normalized.db" {
		t.Errorf("Expected default database normalized.db, got %s", cfg.Database)
	}
	if cfg.Source != "sales_data.txt" {
		t.Errorf("Expected default source sales_data.txt, got %s", cfg.Source)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Serve.Addr)
	}
	if cfg.Ask.Model == "" || cfg.Ask.BaseURL == "" {
		t.Error("Expected default ask model and base URL")
	}
	if cfg.Generate.Customers != 100 || cfg.Generate.Products != 40 || cfg.Generate.MaxItems != 8 {
		t.Errorf("Unexpected generate defaults: %+v", cfg.Generate)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salesdash.yaml")
	content := `
database: /tmp/other.db
log_level: debug
serve:
  addr: ":9090"
  password: hunter2
ask:
  api_key: test-key
generate:
  customers: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database != "/tmp/other.db" {
		t.Errorf("Expected database override, got %s", cfg.Database)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level override, got %s", cfg.LogLevel)
	}
	if cfg.Serve.Addr != ":9090" || cfg.Serve.Password != "hunter2" {
		t.Errorf("Expected serve overrides, got %+v", cfg.Serve)
	}
	if cfg.Ask.APIKey != "test-key" {
		t.Errorf("Expected ask.api_key override, got %s", cfg.Ask.APIKey)
	}
	if cfg.Ask.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Expected unset fields to keep defaults, got model %s", cfg.Ask.Model)
	}
	if cfg.Generate.Customers != 5 {
		t.Errorf("Expected generate.customers override, got %d", cfg.Generate.Customers)
	}
	if cfg.Generate.Products != 40 {
		t.Errorf("Expected generate.products default, got %d", cfg.Generate.Products)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salesdash.yaml")
	if err := os.WriteFile(path, []byte("database: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got: %v", err)
	}

	cfg.Database = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error with no database path")
	}
}

func TestValidateBuild(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateBuild(); err != nil {
		t.Errorf("Expected defaults to validate, got: %v", err)
	}

	cfg.Source = ""
	if err := cfg.ValidateBuild(); err == nil {
		t.Error("Expected an error with no source path")
	}
}

func TestValidateServe(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateServe(); err != nil {
		t.Errorf("Expected defaults to validate, got: %v", err)
	}

	cfg.Serve.Addr = ""
	if err := cfg.ValidateServe(); err == nil {
		t.Error("Expected an error with no listen address")
	}
}

func TestValidateAsk(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateAsk(); err == nil {
		t.Error("Expected an error with no API key")
	}

	cfg.Ask.APIKey = "test-key"
	if err := cfg.ValidateAsk(); err != nil {
		t.Errorf("Expected a keyed config to validate, got: %v", err)
	}

	cfg.Ask.Model = ""
	if err := cfg.ValidateAsk(); err == nil {
		t.Error("Expected an error with no model")
	}
}

func TestValidateGenerate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateGenerate(); err != nil {
		t.Errorf("Expected defaults to validate, got: %v", err)
	}

	cfg.Generate.MaxItems = 0
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected an error with max_items below 1")
	}
}
