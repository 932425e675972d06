package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Defaults applied by setDefaults.
const (
	DefaultLanguage    = "en-US"
	DefaultHTTPTimeout = 30 * time.Second
	defaultLogFile     = "marquee.log"
	defaultDataDir     = ".marquee"
)

// Config represents the main application configuration
type Config struct {
	// Metadata provider
	TMDb TMDbConfig `yaml:"tmdb"`

	// Outbound transport
	HTTP HTTPConfig `yaml:"http"`

	// Frontends
	Telegram *TelegramConfig `yaml:"telegram,omitempty"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// TMDbConfig holds TMDb API configuration
type TMDbConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"` // Empty = public TMDb v3 endpoint
	Language string `yaml:"language,omitempty"`
}

// HTTPConfig holds outbound request settings
type HTTPConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"` // 1 = single attempt, no retry
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids,omitempty"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"
	LogFile  string `yaml:"log_file"`  // Where the interactive screen writes logs
	DataDir  string `yaml:"data_dir"`
}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Load loads configuration from a YAML file with environment variable overrides.
// A missing file is not an error when the environment supplies the required values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// readConfigFile returns nil data for a missing file.
func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() error {
	// TMDb
	if v := os.Getenv("MARQUEE_TMDB_API_KEY"); v != "" {
		c.TMDb.APIKey = v
	}
	if v := os.Getenv("MARQUEE_TMDB_BASE_URL"); v != "" {
		c.TMDb.BaseURL = v
	}
	if v := os.Getenv("MARQUEE_TMDB_LANGUAGE"); v != "" {
		c.TMDb.Language = v
	}

	// HTTP
	if v := os.Getenv("MARQUEE_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MARQUEE_HTTP_TIMEOUT: %w", err)
		}
		c.HTTP.Timeout = d
	}
	if v := os.Getenv("MARQUEE_HTTP_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MARQUEE_HTTP_MAX_ATTEMPTS: %w", err)
		}
		c.HTTP.MaxAttempts = n
	}

	// Telegram
	if v := os.Getenv("MARQUEE_TELEGRAM_BOT_TOKEN"); v != "" {
		if c.Telegram == nil {
			c.Telegram = &TelegramConfig{}
		}
		c.Telegram.BotToken = v
	}

	// App
	if v := os.Getenv("MARQUEE_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("MARQUEE_LOG_FILE"); v != "" {
		c.App.LogFile = v
	}
	if v := os.Getenv("MARQUEE_DATA_DIR"); v != "" {
		c.App.DataDir = v
	}
	return nil
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.TMDb.APIKey == "" {
		return errors.New("tmdb.api_key is required")
	}
	if c.TMDb.BaseURL != "" {
		if err := validateURL(c.TMDb.BaseURL, "tmdb.base_url"); err != nil {
			return err
		}
	}

	if c.HTTP.Timeout < 0 {
		return errors.New("http.timeout must not be negative")
	}
	if c.HTTP.MaxAttempts < 0 {
		return errors.New("http.max_attempts must not be negative")
	}

	if c.Telegram != nil && c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}

	if c.App.LogLevel != "" && !isValidLogLevel(c.App.LogLevel) {
		return fmt.Errorf("app.log_level must be one of %s, got %q",
			strings.Join(validLogLevels, ", "), c.App.LogLevel)
	}

	return c.setDefaults()
}

// setDefaults fills zero values. Negative values are left for Validate to reject.
func (c *Config) setDefaults() error {
	if c.TMDb.Language == "" {
		c.TMDb.Language = DefaultLanguage
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = DefaultHTTPTimeout
	}
	if c.HTTP.MaxAttempts == 0 {
		c.HTTP.MaxAttempts = 1
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		c.App.DataDir = filepath.Join(homeDir, defaultDataDir)
	}
	if c.App.LogFile == "" {
		c.App.LogFile = filepath.Join(c.App.DataDir, defaultLogFile)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	for _, l := range validLogLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

// validateURL checks that raw is an absolute http(s) URL with a host.
func validateURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host in %q", field, raw)
	}
	return nil
}
