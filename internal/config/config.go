package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvDBPath   = "FAMILYBANK_DB_PATH"
	EnvLogLevel = "FAMILYBANK_LOG_LEVEL"
)

// Config represents the top-level familybank.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Display  DisplayConfig  `yaml:"display"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates the SQLite ledger file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig controls how the admin password is hashed.
type AuthConfig struct {
	Algorithm         string `yaml:"algorithm"` // "argon2id" or "bcrypt"
	MinPasswordLength int    `yaml:"min_password_length"`
}

// DisplayConfig controls amount grouping and terminal output.
type DisplayConfig struct {
	CurrencySymbol    string `yaml:"currency_symbol,omitempty"`
	ThousandSeparator string `yaml:"thousand_separator"`
	DecimalSeparator  string `yaml:"decimal_separator"`
	FractionDigits    int    `yaml:"fraction_digits"`
	Style             string `yaml:"style"` // glamour style name, or "plain"
}

// LogConfig sets the slog level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "familybank.db",
		},
		Auth: AuthConfig{
			Algorithm:         "argon2id",
			MinPasswordLength: 6,
		},
		Display: DisplayConfig{
			ThousandSeparator: ",",
			DecimalSeparator:  ".",
			FractionDigits:    2,
			Style:             "auto",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads a familybank.yaml file from disk. Fields absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
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

// ApplyEnv loads an optional .env file from dir and applies the
// FAMILYBANK_* overrides on top of cfg.
func (c *Config) ApplyEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Database.Path) == "" {
		problems = append(problems, "database.path cannot be empty")
	}

	switch c.Auth.Algorithm {
	case "argon2id", "bcrypt":
	default:
		problems = append(problems, fmt.Sprintf("invalid auth.algorithm %q: must be argon2id or bcrypt", c.Auth.Algorithm))
	}
	if c.Auth.MinPasswordLength < 1 {
		problems = append(problems, fmt.Sprintf("invalid auth.min_password_length %d: must be at least 1", c.Auth.MinPasswordLength))
	}

	if c.Display.FractionDigits < 0 || c.Display.FractionDigits > 8 {
		problems = append(problems, fmt.Sprintf("invalid display.fraction_digits %d: must be between 0 and 8", c.Display.FractionDigits))
	}
	if c.Display.DecimalSeparator == "" {
		problems = append(problems, "display.decimal_separator cannot be empty")
	}
	if c.Display.DecimalSeparator == c.Display.ThousandSeparator {
		problems = append(problems, "display.decimal_separator and display.thousand_separator must differ")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log.level %q: must be debug, info, warn or error", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
