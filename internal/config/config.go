// Package config loads ledgerctl configuration from a YAML file with
// environment overrides, so the API key can stay out of files checked into
// version control.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds connection and local-state settings for ledgerctl.
type Config struct {
	LedgerURL   string `yaml:"ledger_url"`
	APIKey      string `yaml:"api_key"`
	AgentID     string `yaml:"agent_id"`
	Environment string `yaml:"environment"`
	SpoolDir    string `yaml:"spool_dir"`
	MirrorPath  string `yaml:"mirror_path"`
}

// DefaultPath returns $ACTIONLEDGER_CONFIG if set, else
// ~/.config/ledgerctl/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("ACTIONLEDGER_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ledgerctl", "config.yaml")
}

// Load reads configuration from path. Empty path falls back to DefaultPath.
// A missing file yields an empty config (env overrides still apply);
// invalid YAML is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv lets environment variables override file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("ACTIONLEDGER_URL"); v != "" {
		cfg.LedgerURL = v
	}
	if v := os.Getenv("ACTIONLEDGER_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("ACTIONLEDGER_AGENT_ID"); v != "" {
		cfg.AgentID = v
	}
	if v := os.Getenv("ACTIONLEDGER_ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
}

// ValidateConnection checks the fields every service-touching command needs.
func (c *Config) ValidateConnection() error {
	if c.LedgerURL == "" {
		return errors.New("config: ledger_url is not set (file or ACTIONLEDGER_URL)")
	}
	if c.APIKey == "" {
		return errors.New("config: api_key is not set (file or ACTIONLEDGER_API_KEY)")
	}
	return nil
}
