package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vadimtrunov/marquee/internal/httpclient"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultLanguage = "en-US"
	imageBaseURL    = "https://image.tmdb.org/t/p/"

	// PosterSize is the width token used for every poster on the screen.
	PosterSize = "w500"

	// TrendingDay is the "trending today" time window.
	TrendingDay = "day"

	maxErrorBody = 512
)

// Config configures a Client.
type Config struct {
	APIKey   string
	BaseURL  string // Empty = public TMDb v3 endpoint
	Language string // Empty = en-US
	HTTP     httpclient.Config
}

// Client is a TMDb API v3 client.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *httpclient.Client
	logger   *slog.Logger
}

// New creates a new TMDb client.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		language: language,
		http:     httpclient.New(cfg.HTTP, logger),
		logger:   logger,
	}
}

// NewForTest creates a TMDb client with a custom base URL for testing.
// Exported because it is used by cross-package tests.
func NewForTest(baseURL string, logger *slog.Logger) *Client {
	return New(Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		HTTP:    httpclient.DefaultConfig(),
	}, logger)
}

// PopularMovies returns one page of the current-popularity ranking.
func (c *Client) PopularMovies(ctx context.Context, page int) ([]Movie, error) {
	params := url.Values{
		"language": {c.language},
		"page":     {strconv.Itoa(page)},
	}

	var resp pageResponse
	if err := c.get(ctx, "/movie/popular", params, &resp); err != nil {
		return nil, fmt.Errorf("popular movies: %w", err)
	}
	return resp.Results, nil
}

// TrendingMovies returns trending movies for a time window ("day" or "week").
func (c *Client) TrendingMovies(ctx context.Context, window string) ([]Movie, error) {
	var resp pageResponse
	path := "/trending/movie/" + url.PathEscape(window)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("trending movies (%s): %w", window, err)
	}
	return resp.Results, nil
}

// MovieGenres returns the official movie genre list.
func (c *Client) MovieGenres(ctx context.Context) ([]Genre, error) {
	params := url.Values{"language": {c.language}}

	var resp genreListResponse
	if err := c.get(ctx, "/genre/movie/list", params, &resp); err != nil {
		return nil, fmt.Errorf("movie genres: %w", err)
	}
	return resp.Genres, nil
}

// PosterURL joins the image base, a width token and a poster path.
// There is no fallback: an empty path yields the bare size URL.
func PosterURL(posterPath, size string) string {
	return imageBaseURL + size + posterPath
}

// get performs an authenticated GET request to the TMDb API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	q := u.Query()
	q.Set("api_key", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Strip the query so the API key never reaches the logs.
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = c.baseURL + path
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	c.logger.Debug("tmdb request ok", slog.String("path", path))
	return nil
}
