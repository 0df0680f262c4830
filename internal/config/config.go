// Package config resolves budget settings from budget.yaml, the environment
// and built-in defaults. Precedence: flags (applied by the caller) over
// environment over file over defaults.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked for in the working directory.
const DefaultFile = "budget.yaml"

// Config holds the resolved settings.
type Config struct {
	// DBFile is the ledger database path.
	DBFile string `yaml:"db_file"`
	// CurrencySymbol is printed for accounts that have no symbol of their
	// own.
	CurrencySymbol string `yaml:"currency_symbol"`
	// AuditLog is the import audit log path; empty disables the log.
	AuditLog string `yaml:"audit_log,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DBFile:         "budget.db",
		CurrencySymbol: "£",
	}
}

// Load reads path (missing file is fine, defaults apply) and then applies
// environment overrides. A .env file in the working directory is honored.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Ignore a missing .env; explicit env vars still apply.
	_ = godotenv.Load()

	if v := os.Getenv("BUDGET_DB_FILE"); v != "" {
		cfg.DBFile = v
	}
	if v := os.Getenv("BUDGET_CURRENCY_SYMBOL"); v != "" {
		cfg.CurrencySymbol = v
	}
	if v := os.Getenv("BUDGET_AUDIT_LOG"); v != "" {
		cfg.AuditLog = v
	}

	return cfg, nil
}

// Save writes cfg to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
