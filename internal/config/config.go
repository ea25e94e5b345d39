// Package config loads the kambari configuration: a YAML file under
// the app home dir (~/.kambari by default) with environment overrides
// applied on top. The file is created with defaults on first run so
// users have something to edit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the configuration file under the app home dir.
const ConfigFileName = "config.yaml"

// Config is the full application configuration.
type Config struct {
	// Roles is the role list in assignment priority order. The set is
	// closed per deployment; the fairness engine is generic over it.
	Roles []string `yaml:"roles" envconfig:"KAMBARI_ROLES"`

	// LookbackWindow is the number of recent non-cancelled sessions the
	// fairness score considers.
	LookbackWindow int `yaml:"lookbackWindow" envconfig:"KAMBARI_LOOKBACK_WINDOW"`

	// MinGap is the preferred number of sessions between two tenures of
	// the same role by the same member. 0 disables the gap.
	MinGap int `yaml:"minGap" envconfig:"KAMBARI_MIN_GAP"`

	// TieBreak selects how equal fairness scores resolve: "by_id"
	// (default, reproducible) or "seeded_random".
	TieBreak string `yaml:"tieBreak" envconfig:"KAMBARI_TIE_BREAK"`

	// MeetingWeekday is the weekday the group meets, e.g. "thursday".
	MeetingWeekday string `yaml:"meetingWeekday" envconfig:"KAMBARI_MEETING_WEEKDAY"`

	// CountryPrefix replaces a leading 0 in local phone numbers when
	// building WhatsApp links.
	CountryPrefix string `yaml:"countryPrefix" envconfig:"KAMBARI_COUNTRY_PREFIX"`

	// LogLevel is the slog level: debug, info, warn or error.
	LogLevel string `yaml:"logLevel" envconfig:"KAMBARI_LOG_LEVEL"`

	Gemini GeminiConfig `yaml:"gemini"`
	Paths  PathsConfig  `yaml:"paths"`
}

// GeminiConfig configures the AI question provider.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini REST API. Usually set via
	// KAMBARI_GEMINI_API_KEY rather than the file.
	APIKey string `yaml:"apiKey" envconfig:"KAMBARI_GEMINI_API_KEY"`

	Model string `yaml:"model" envconfig:"KAMBARI_GEMINI_MODEL"`

	// TimeoutSeconds bounds one generation call.
	TimeoutSeconds int `yaml:"timeoutSeconds" envconfig:"KAMBARI_GEMINI_TIMEOUT_SECONDS"`
}

// PathsConfig overrides where kambari keeps its files. Empty values
// resolve under the app home dir.
type PathsConfig struct {
	Database string `yaml:"database" envconfig:"KAMBARI_DATABASE_PATH"`
	Guides   string `yaml:"guides" envconfig:"KAMBARI_GUIDES_PATH"`
	Themes   string `yaml:"themes" envconfig:"KAMBARI_THEMES_PATH"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Roles:          []string{"prayer_lead", "scripture_reader", "sharing_lead"},
		LookbackWindow: 12,
		MinGap:         0,
		TieBreak:       "by_id",
		MeetingWeekday: "thursday",
		CountryPrefix:  "254",
		LogLevel:       "info",
		Gemini: GeminiConfig{
			Model:          "gemini-pro",
			TimeoutSeconds: 30,
		},
	}
}

// HomeDir returns the app home dir. KAMBARI_HOME overrides the default
// ~/.kambari, which keeps tests and alternate installs isolated.
func HomeDir() (string, error) {
	if dir := os.Getenv("KAMBARI_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".kambari"), nil
}

// Load resolves the app home dir and loads the configuration from it,
// creating the file with defaults on first run.
func Load() (*Config, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom loads the configuration from a specific app home dir.
// Missing dir or file are created; the YAML file is parsed over the
// defaults and environment overrides are applied last.
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := writeDefault(dir, path, cfg); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := envconfig.Process("kambari", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	cfg.resolvePaths(dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// writeDefault writes the default config file for a first run.
func writeDefault(dir, path string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create app dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// resolvePaths fills empty path settings with their defaults under the
// app home dir.
func (c *Config) resolvePaths(dir string) {
	if c.Paths.Database == "" {
		c.Paths.Database = filepath.Join(dir, "kambari.db")
	}
	if c.Paths.Guides == "" {
		c.Paths.Guides = filepath.Join(dir, "study_guides")
	}
	if c.Paths.Themes == "" {
		c.Paths.Themes = filepath.Join(dir, "themes")
	}
}

// Validate rejects configurations the scheduler cannot run with.
func (c *Config) Validate() error {
	if len(c.Roles) == 0 {
		return fmt.Errorf("config: at least one role is required")
	}
	seen := map[string]bool{}
	for _, role := range c.Roles {
		if role == "" {
			return fmt.Errorf("config: empty role name")
		}
		if seen[role] {
			return fmt.Errorf("config: duplicate role %q", role)
		}
		seen[role] = true
	}
	if c.LookbackWindow < 1 {
		return fmt.Errorf("config: lookbackWindow must be at least 1, got %d", c.LookbackWindow)
	}
	if c.MinGap < 0 {
		return fmt.Errorf("config: minGap cannot be negative, got %d", c.MinGap)
	}
	if c.TieBreak != "by_id" && c.TieBreak != "seeded_random" {
		return fmt.Errorf("config: tieBreak must be by_id or seeded_random, got %q", c.TieBreak)
	}
	if _, err := c.MeetingDay(); err != nil {
		return err
	}
	if c.Gemini.TimeoutSeconds < 1 {
		return fmt.Errorf("config: gemini.timeoutSeconds must be at least 1, got %d", c.Gemini.TimeoutSeconds)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logLevel %q", c.LogLevel)
	}
	return nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// MeetingDay parses the configured meeting weekday.
func (c *Config) MeetingDay() (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(c.MeetingWeekday)]
	if !ok {
		return 0, fmt.Errorf("config: unknown meetingWeekday %q", c.MeetingWeekday)
	}
	return day, nil
}

// GeminiTimeout returns the generation timeout as a duration.
func (c *Config) GeminiTimeout() time.Duration {
	return time.Duration(c.Gemini.TimeoutSeconds) * time.Second
}
