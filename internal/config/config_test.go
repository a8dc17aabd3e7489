package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "jarvis") {
		t.Errorf("DefaultConfigDir() = %q", got)
	}
}

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if cfg.Scheduler.SettleInterval != 500*time.Millisecond {
		t.Errorf("SettleInterval = %v", cfg.Scheduler.SettleInterval)
	}
	if cfg.Scheduler.ClearDelay != 2*time.Second {
		t.Errorf("ClearDelay = %v", cfg.Scheduler.ClearDelay)
	}
	if cfg.Backend.Notes != BackendSQLite || cfg.Backend.Reminders != BackendSQLite {
		t.Errorf("backends = %+v", cfg.Backend)
	}
	if cfg.Database.Path != filepath.Join(dir, "jarvis.db") {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if len(cfg.Apps) == 0 {
		t.Error("expected a default app catalog")
	}
	if cfg.UsesGoogle() {
		t.Error("defaults should not use Google")
	}
}

func TestNew_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `llm:
  model: gemini-2.0-flash
  api_key_env: MY_KEY
scheduler:
  settle_interval: 750ms
backend:
  reminders: google
apps: [Maps, Spotify]
contacts:
  Mom: "+15550001"
`
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JARVIS_SERVER_ADDR", ":9999")
	t.Setenv("MY_KEY", "secret")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.Key() != "secret" {
		t.Errorf("LLM.Key() = %q", cfg.LLM.Key())
	}
	if cfg.Scheduler.SettleInterval != 750*time.Millisecond {
		t.Errorf("SettleInterval = %v", cfg.Scheduler.SettleInterval)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if !cfg.UsesGoogle() {
		t.Error("expected Google reminders")
	}
	if len(cfg.Apps) != 2 {
		t.Errorf("Apps = %v", cfg.Apps)
	}
	// Viper lower-cases map keys.
	if cfg.Contacts["mom"] != "+15550001" {
		t.Errorf("Contacts = %v", cfg.Contacts)
	}
}

func TestNew_InvalidBackend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("backend:\n  notes: dropbox\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := New(dir); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLLMConfig_KeyPrefersExplicit(t *testing.T) {
	t.Setenv("SOME_KEY", "from-env")
	c := LLMConfig{APIKey: "explicit", APIKeyEnv: "SOME_KEY"}
	if c.Key() != "explicit" {
		t.Errorf("Key() = %q", c.Key())
	}
	c.APIKey = ""
	if c.Key() != "from-env" {
		t.Errorf("Key() = %q", c.Key())
	}
}

func TestTokenHelpers(t *testing.T) {
	cfg := &Config{Dir: filepath.Join(t.TempDir(), "nested")}
	if cfg.HasToken() || cfg.HasOAuthClient() {
		t.Fatal("fresh dir should have no credentials")
	}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasToken() {
		t.Error("expected token")
	}
	if err := cfg.RemoveToken(); err != nil {
		t.Fatal(err)
	}
	if cfg.HasToken() {
		t.Error("token not removed")
	}
}
