// Package config handles the XDG configuration directory, file paths and
// settings loaded from config.yaml and JARVIS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "jarvis"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// SettingsFile is the settings filename inside the config directory.
	SettingsFile = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. JARVIS_LLM_MODEL.
	EnvPrefix = "JARVIS"
)

// Storage backends for notes and reminders.
const (
	BackendSQLite = "sqlite"
	BackendGoogle = "google"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`

	LLM       LLMConfig         `mapstructure:"llm"`
	Scheduler SchedulerConfig   `mapstructure:"scheduler"`
	Backend   BackendConfig     `mapstructure:"backend"`
	Database  DatabaseConfig    `mapstructure:"database"`
	Google    GoogleConfig      `mapstructure:"google"`
	Server    ServerConfig      `mapstructure:"server"`
	Speech    SpeechConfig      `mapstructure:"speech"`
	Apps      []string          `mapstructure:"apps"`
	Contacts  map[string]string `mapstructure:"contacts"`
}

// LLMConfig selects the text-generation provider.
type LLMConfig struct {
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api_key"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	Model     string `mapstructure:"model"`
}

// Key returns the configured API key, falling back to the variable named by APIKeyEnv.
func (c LLMConfig) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}

// SchedulerConfig holds batch pacing.
type SchedulerConfig struct {
	SettleInterval time.Duration `mapstructure:"settle_interval"`
	ClearDelay     time.Duration `mapstructure:"clear_delay"`
}

// BackendConfig picks where notes and reminders are stored.
type BackendConfig struct {
	Notes     string `mapstructure:"notes"`
	Reminders string `mapstructure:"reminders"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// GoogleConfig holds Google API settings.
type GoogleConfig struct {
	CalendarID string `mapstructure:"calendar_id"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// SpeechConfig names the text-to-speech program used for voice replies.
type SpeechConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// New loads the configuration from the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/jarvis or $HOME/.config/jarvis.
// A missing config.yaml is not an error; defaults and environment apply.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetConfigFile(filepath.Join(dir, SettingsFile))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", SettingsFile, err)
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Dir = dir
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("scheduler.settle_interval", 500*time.Millisecond)
	v.SetDefault("scheduler.clear_delay", 2*time.Second)
	v.SetDefault("backend.notes", BackendSQLite)
	v.SetDefault("backend.reminders", BackendSQLite)
	v.SetDefault("database.path", filepath.Join(dir, AppName+".db"))
	v.SetDefault("google.calendar_id", "primary")
	v.SetDefault("server.addr", "127.0.0.1:8088")
	v.SetDefault("speech.command", "")
	v.SetDefault("speech.args", []string{})
	v.SetDefault("apps", []string{
		"Calculator", "Calendar", "Camera", "Chrome", "Clock", "Contacts", "Files",
		"Gmail", "Maps", "Messages", "Phone", "Photos", "Settings", "Spotify",
		"WhatsApp", "YouTube",
	})
	v.SetDefault("contacts", map[string]string{})
}

// isNotExist reports whether err means the settings file is absent.
func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func (c *Config) validate() error {
	for key, val := range map[string]string{"backend.notes": c.Backend.Notes, "backend.reminders": c.Backend.Reminders} {
		if val != BackendSQLite && val != BackendGoogle {
			return fmt.Errorf("invalid %s: %q (want %s or %s)", key, val, BackendSQLite, BackendGoogle)
		}
	}
	return nil
}

// UsesGoogle reports whether any backend talks to Google APIs.
func (c *Config) UsesGoogle() bool {
	return c.Backend.Notes == BackendGoogle || c.Backend.Reminders == BackendGoogle
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
