package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
ledger_url: http://localhost:8000
api_key: dev-api-key
agent_id: my-agent
environment: staging
spool_dir: /var/spool/ledgerctl
mirror_path: /var/lib/ledgerctl/mirror.jsonl
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LedgerURL != "http://localhost:8000" {
		t.Errorf("ledger_url = %q", cfg.LedgerURL)
	}
	if cfg.AgentID != "my-agent" || cfg.Environment != "staging" {
		t.Errorf("agent fields: %+v", cfg)
	}
	if cfg.SpoolDir == "" || cfg.MirrorPath == "" {
		t.Errorf("local-state fields missing: %+v", cfg)
	}
	if err := cfg.ValidateConnection(); err != nil {
		t.Errorf("complete config should validate: %v", err)
	}
}

func TestMissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if err := cfg.ValidateConnection(); err == nil {
		t.Error("empty config should fail connection validation")
	}
}

func TestInvalidYAMLIsAnError(t *testing.T) {
	path := writeConfig(t, "ledger_url: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "ledger_url: http://file:8000\napi_key: file-key\n")
	t.Setenv("ACTIONLEDGER_URL", "http://env:9000")
	t.Setenv("ACTIONLEDGER_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LedgerURL != "http://env:9000" {
		t.Errorf("env should override file, got %q", cfg.LedgerURL)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("env should override file, got %q", cfg.APIKey)
	}
}
