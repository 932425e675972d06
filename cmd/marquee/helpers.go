package main

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/marquee/internal/catalog"
	"github.com/vadimtrunov/marquee/internal/config"
	"github.com/vadimtrunov/marquee/internal/httpclient"
	"github.com/vadimtrunov/marquee/internal/metadata/tmdb"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// httpConfig maps the configured transport settings onto the HTTP client.
func httpConfig(cfg *config.Config) httpclient.Config {
	hc := httpclient.DefaultConfig()
	hc.MaxAttempts = cfg.HTTP.MaxAttempts
	hc.Timeout = cfg.HTTP.Timeout
	hc.UserAgent = "marquee/" + version
	return hc
}

// initTMDb creates the TMDb client from configuration.
func initTMDb(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	if cfg.TMDb.BaseURL != "" {
		logger.Info("using custom TMDb endpoint", slog.String("url", sanitizeURL(cfg.TMDb.BaseURL)))
	}
	return tmdb.New(tmdb.Config{
		APIKey:   cfg.TMDb.APIKey,
		BaseURL:  cfg.TMDb.BaseURL,
		Language: cfg.TMDb.Language,
		HTTP:     httpConfig(cfg),
	}, logger)
}

// initLoader wires the catalog loader to TMDb.
func initLoader(cfg *config.Config, logger *slog.Logger) *catalog.Loader {
	return catalog.NewLoader(initTMDb(cfg, logger))
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
