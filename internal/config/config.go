package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds runtime configuration. Secrets (e.g. API key) are read from
// the environment or from the config dir at runtime; never committed.
type Config struct {
	// Addr is the HTTP listen address. Set from WATCHDOG_ADDR, or ":"+PORT.
	Addr string `json:"addr"`
	// CheckPath is the route for the raw holehe check endpoint.
	CheckPath string `json:"check_path"`
	// HoleheBin is the holehe executable name or path.
	HoleheBin string `json:"holehe_bin"`

	// OpenRouterAPIKey is set from env OPENROUTER_API_KEY or from config file.
	// Empty disables model-backed explanations.
	OpenRouterAPIKey string `json:"openrouter_api_key"`
	// Model is the OpenRouter model id.
	Model string `json:"model"`

	// ConfigDir is where config.json, risk.hcl and watchdog.db live.
	ConfigDir string `json:"-"`
	// DBPath is the SQLite file for operational logs (":memory:" allowed).
	DBPath string `json:"db_path"`
	// RiskRulesPath is an optional HCL file overriding the scoring rules.
	RiskRulesPath string `json:"risk_rules_path"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `json:"log_level"`
	// LogFormat is text or json.
	LogFormat string `json:"log_format"`
}

// DefaultConfigDir returns the default config directory (project-local .watchdog if present, else ~/.config/watchdog).
func DefaultConfigDir() string {
	cwd, _ := os.Getwd()
	local := filepath.Join(cwd, ".watchdog")
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "watchdog")
}

// New builds config from env and an optional config dir. ConfigDir can be empty to use the default.
// Priority: defaults < env < config.json.
func New(configDir string) (*Config, error) {
	if configDir == "" {
		if d := os.Getenv("WATCHDOG_CONFIG_DIR"); d != "" {
			configDir = d
		} else {
			configDir = DefaultConfigDir()
		}
	}

	addr := os.Getenv("WATCHDOG_ADDR")
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "7000"
		}
		addr = ":" + port
	}

	cfg := &Config{
		Addr:             addr,
		CheckPath:        envOr("WATCHDOG_CHECK_PATH", "/holehe/check"),
		HoleheBin:        envOr("WATCHDOG_HOLEHE_BIN", "holehe"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		Model:            envOr("WATCHDOG_MODEL", "mistralai/mistral-7b-instruct"),
		ConfigDir:        configDir,
		DBPath:           envOr("WATCHDOG_DB_PATH", filepath.Join(configDir, "watchdog.db")),
		RiskRulesPath:    envOr("WATCHDOG_RISK_RULES", filepath.Join(configDir, "risk.hcl")),
		LogLevel:         envOr("WATCHDOG_LOG_LEVEL", "info"),
		LogFormat:        envOr("WATCHDOG_LOG_FORMAT", "text"),
	}

	// Keys present in config.json overwrite env values; absent keys leave them untouched.
	configPath := filepath.Join(configDir, "config.json")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks fields that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr is required")
	}
	if !strings.HasPrefix(c.CheckPath, "/") {
		return fmt.Errorf("config: check_path %q must start with /", c.CheckPath)
	}
	if c.HoleheBin == "" {
		return fmt.Errorf("config: holehe_bin is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: db_path is required")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format %q must be text or json", c.LogFormat)
	}
	return nil
}

// AIEnabled reports whether model-backed explanations are configured.
func (c *Config) AIEnabled() bool {
	return c.OpenRouterAPIKey != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
