package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type validateCase struct {
	name    string
	modify  func(*Config)
	wantErr string
}

// validConfig returns a minimal Config that passes Validate().
func validConfig() Config {
	return Config{
		TMDb: TMDbConfig{APIKey: "tmdb-key"},
		App:  AppConfig{LogLevel: "info", DataDir: "/tmp/test"},
	}
}

const minimalYAML = `
tmdb:
  api_key: yaml-key
`

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marquee.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []validateCase{
		{"valid_minimal", nil, ""},
		{"missing_tmdb_key", func(c *Config) { c.TMDb.APIKey = "" }, "tmdb.api_key is required"},
		{"base_url_valid", func(c *Config) { c.TMDb.BaseURL = "http://localhost:9000/3" }, ""},
		{"base_url_bad_scheme", func(c *Config) { c.TMDb.BaseURL = "ftp://localhost" }, "must use http or https"},
		{"base_url_no_host", func(c *Config) { c.TMDb.BaseURL = "http://" }, "missing host"},
		{"negative_timeout", func(c *Config) { c.HTTP.Timeout = -time.Second }, "http.timeout must not be negative"},
		{"negative_attempts", func(c *Config) { c.HTTP.MaxAttempts = -1 }, "http.max_attempts must not be negative"},
		{"telegram_missing_token", func(c *Config) { c.Telegram = &TelegramConfig{} }, "telegram.bot_token is required"},
		{"telegram_valid", func(c *Config) { c.Telegram = &TelegramConfig{BotToken: "123:ABC"} }, ""},
		{"invalid_log_level", func(c *Config) { c.App.LogLevel = "trace" }, "app.log_level must be one of"},
		{"warning_accepted", func(c *Config) { c.App.LogLevel = "warning" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			if tt.modify != nil {
				tt.modify(&cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{App: AppConfig{DataDir: "/data"}}
	if err := cfg.setDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.Language != "en-US" {
		t.Errorf("Language = %q, want en-US", cfg.TMDb.Language)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxAttempts != 1 {
		t.Errorf("MaxAttempts = %d, want 1 (no retry)", cfg.HTTP.MaxAttempts)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.App.LogLevel)
	}
	if cfg.App.LogFile != filepath.Join("/data", "marquee.log") {
		t.Errorf("LogFile = %q", cfg.App.LogFile)
	}
}

func TestSetDefaults_DataDir(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	if err := cfg.setDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(cfg.App.DataDir, ".marquee") {
		t.Errorf("expected DataDir ending in .marquee, got %q", cfg.App.DataDir)
	}
}

func TestSetDefaults_Preserved(t *testing.T) {
	t.Parallel()

	cfg := Config{
		TMDb: TMDbConfig{Language: "de-DE"},
		HTTP: HTTPConfig{Timeout: 5 * time.Second, MaxAttempts: 3},
		App:  AppConfig{LogLevel: "debug", DataDir: "/custom", LogFile: "/var/log/m.log"},
	}
	if err := cfg.setDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.Language != "de-DE" || cfg.HTTP.Timeout != 5*time.Second || cfg.HTTP.MaxAttempts != 3 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
	if cfg.App.LogFile != "/var/log/m.log" {
		t.Errorf("LogFile = %q", cfg.App.LogFile)
	}
}

func TestLoad_ValidMinimal(t *testing.T) {
	path := writeTempYAML(t, minimalYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "yaml-key" {
		t.Errorf("expected api key yaml-key, got %q", cfg.TMDb.APIKey)
	}
	if cfg.TMDb.Language != "en-US" {
		t.Errorf("expected default language en-US, got %q", cfg.TMDb.Language)
	}
	if cfg.Telegram != nil {
		t.Error("expected telegram to stay unset")
	}
}

func TestLoad_Full(t *testing.T) {
	fullYAML := `
tmdb:
  api_key: tmdb-key
  base_url: http://localhost:9000/3
  language: fr-FR
http:
  timeout: 5s
  max_attempts: 3
telegram:
  bot_token: "123:ABC"
  allowed_user_ids: [7, 9]
app:
  log_level: debug
  data_dir: /srv/marquee
`
	path := writeTempYAML(t, fullYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxAttempts != 3 {
		t.Errorf("max_attempts = %d, want 3", cfg.HTTP.MaxAttempts)
	}
	if cfg.Telegram == nil || len(cfg.Telegram.AllowedUserIDs) != 2 {
		t.Errorf("expected telegram with 2 allowed users, got %+v", cfg.Telegram)
	}
	if cfg.TMDb.BaseURL != "http://localhost:9000/3" {
		t.Errorf("base_url = %q", cfg.TMDb.BaseURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid_yaml", func(t *testing.T) {
		path := writeTempYAML(t, "{{invalid yaml}}")
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "failed to parse") {
			t.Fatalf("expected parse error, got %v", err)
		}
	})

	t.Run("path_is_directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "directory") {
			t.Fatalf("expected directory error, got %v", err)
		}
	})

	t.Run("missing_key", func(t *testing.T) {
		t.Setenv("MARQUEE_TMDB_API_KEY", "")
		path := writeTempYAML(t, "app:\n  log_level: info\n")
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "tmdb.api_key is required") {
			t.Fatalf("expected missing key error, got %v", err)
		}
	})

	t.Run("bad_timeout_env", func(t *testing.T) {
		t.Setenv("MARQUEE_HTTP_TIMEOUT", "soon")
		path := writeTempYAML(t, minimalYAML)
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "MARQUEE_HTTP_TIMEOUT") {
			t.Fatalf("expected env error, got %v", err)
		}
	})
}

func TestLoad_MissingFileEnvOnly(t *testing.T) {
	t.Setenv("MARQUEE_TMDB_API_KEY", "env-key")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "env-key" {
		t.Errorf("expected env-key, got %q", cfg.TMDb.APIKey)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeTempYAML(t, minimalYAML)
	t.Setenv("MARQUEE_TMDB_API_KEY", "env-key")
	t.Setenv("MARQUEE_HTTP_TIMEOUT", "2s")
	t.Setenv("MARQUEE_HTTP_MAX_ATTEMPTS", "4")
	t.Setenv("MARQUEE_TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("MARQUEE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.TMDb.APIKey)
	}
	if cfg.HTTP.Timeout != 2*time.Second {
		t.Errorf("timeout = %v, want 2s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxAttempts != 4 {
		t.Errorf("max attempts = %d, want 4", cfg.HTTP.MaxAttempts)
	}
	if cfg.Telegram == nil || cfg.Telegram.BotToken != "env-token" {
		t.Errorf("expected telegram token from env, got %+v", cfg.Telegram)
	}
	if cfg.App.LogLevel != "warn" {
		t.Errorf("log level = %q, want warn", cfg.App.LogLevel)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("info", &buf)
	logger.Debug("hidden")
	logger.Info("visible", slog.String("source", "popular"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record written at info level")
	}
	if !strings.Contains(out, `"msg":"visible"`) || !strings.Contains(out, `"source":"popular"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestOpenLogFile_CreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "marquee.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString("line\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
