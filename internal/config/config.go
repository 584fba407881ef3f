// Package config loads cxready settings from an optional YAML file and
// CXREADY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/cxready/internal/assessmentlog"
	"github.com/alexanderramin/cxready/internal/catalog"
	"github.com/alexanderramin/cxready/internal/recommend"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CXREADY_"

// LevelOff disables use-case logging.
const LevelOff = "off"

// Config holds all runtime settings.
type Config struct {
	// Checklist source. BundlePath wins when set.
	PrimaryPath   string `yaml:"primary_path" env:"PRIMARY_PATH"`
	SecondaryPath string `yaml:"secondary_path" env:"SECONDARY_PATH"`
	BundlePath    string `yaml:"bundle_path" env:"BUNDLE_PATH"`
	Delimiter     string `yaml:"delimiter" env:"DELIMITER"`
	Encoding      string `yaml:"encoding" env:"ENCODING"`

	LogBackend string `yaml:"log_backend" env:"LOG_BACKEND"`
	LogPath    string `yaml:"log_path" env:"LOG_PATH"`

	WeakThreshold int    `yaml:"weak_threshold" env:"WEAK_THRESHOLD"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
}

// DefaultConfig reads the checklist from data/ and logs to a file next to it.
func DefaultConfig() *Config {
	return &Config{
		PrimaryPath:   filepath.Join("data", "primary.csv"),
		SecondaryPath: filepath.Join("data", "secondary.csv"),
		Delimiter:     ";",
		Encoding:      catalog.EncodingUTF8,
		LogBackend:    string(assessmentlog.BackendFile),
		LogPath:       filepath.Join("data", "assessments.csv"),
		WeakThreshold: recommend.DefaultThreshold,
		LogLevel:      LevelOff,
	}
}

// LoadConfig applies the YAML file at path, if it exists, over the
// defaults and then applies environment overrides. An empty path skips the
// file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv applies CXREADY_* environment variables to target. Unset
// variables leave fields untouched.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.BundlePath == "" && c.PrimaryPath == "" {
		errs = append(errs, errors.New("either bundle_path or primary_path is required"))
	}
	if _, err := c.DelimiterRune(); err != nil {
		errs = append(errs, err)
	}
	if !catalog.ValidEncoding(c.Encoding) {
		errs = append(errs, fmt.Errorf("encoding %q is not supported", c.Encoding))
	}
	if !assessmentlog.Backend(c.LogBackend).Valid() {
		errs = append(errs, fmt.Errorf("log_backend must be %q or %q, got %q",
			assessmentlog.BackendFile, assessmentlog.BackendSQLite, c.LogBackend))
	}
	if strings.TrimSpace(c.LogPath) == "" {
		errs = append(errs, errors.New("log_path is required"))
	}
	if err := recommend.ValidateThreshold(c.WeakThreshold); err != nil {
		errs = append(errs, fmt.Errorf("weak_threshold: %w", err))
	}
	if _, _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// DelimiterRune returns the single-character delimiter. "tab" and "\t"
// mean a tab.
func (c *Config) DelimiterRune() (rune, error) {
	d := c.Delimiter
	if d == "tab" || d == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	if r == '"' || r == '\n' || r == '\r' || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q cannot be used", d)
	}
	return r, nil
}

// CatalogOptions returns the table-reading options for the checklist source.
func (c *Config) CatalogOptions() (catalog.Options, error) {
	r, err := c.DelimiterRune()
	if err != nil {
		return catalog.Options{}, err
	}
	return catalog.Options{Delimiter: r, Encoding: c.Encoding}, nil
}

// SlogLevel maps LogLevel to a slog level. enabled is false for "off".
func (c *Config) SlogLevel() (level slog.Level, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", LevelOff:
		return slog.LevelInfo, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	default:
		return slog.LevelInfo, false, fmt.Errorf("log_level %q is not one of debug, info, warn, error, off", c.LogLevel)
	}
}
