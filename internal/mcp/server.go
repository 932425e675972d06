// Package mcp exposes the movie listings as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadimtrunov/marquee/internal/catalog"
	"github.com/vadimtrunov/marquee/internal/metadata/tmdb"
)

// Tool names.
const (
	ToolPopular  = "popular_movies"
	ToolTrending = "trending_movies"
	ToolGenres   = "movie_genres"
)

// Deps holds the dependencies of the tool handlers.
type Deps struct {
	Catalog *catalog.Loader
	Version string
}

// Server wraps an MCP SDK server with the listing tools.
type Server struct {
	server *mcpsdk.Server
	deps   Deps
	logger *slog.Logger
}

// Movie is the tool representation of a listed movie.
type Movie struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Vote      float64 `json:"vote_average"`
	Rating    string  `json:"rating"`
	PosterURL string  `json:"poster_url"`
}

// NewServer creates an MCP server with all listing tools registered.
func NewServer(deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "marquee",
			Version: deps.Version,
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, deps: deps, logger: logger}
	srv.registerTools()
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func (s *Server) registerTools() {
	s.server.AddTool(noArgTool(ToolPopular,
		"List page 1 of TMDb's popular movies in ranking order, with rating and poster URL."), s.handlePopular)
	s.server.AddTool(noArgTool(ToolTrending,
		"List the movies trending on TMDb today, with rating and poster URL."), s.handleTrending)
	s.server.AddTool(noArgTool(ToolGenres,
		"List TMDb's movie genres with their IDs."), s.handleGenres)
}

func noArgTool(name, desc string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        name,
		Description: desc,
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func (s *Server) handlePopular(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Catalog == nil {
		return toolError("TMDb client not configured"), nil
	}
	return s.movies(s.deps.Catalog.Popular(ctx))
}

func (s *Server) handleTrending(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Catalog == nil {
		return toolError("TMDb client not configured"), nil
	}
	return s.movies(s.deps.Catalog.Trending(ctx))
}

func (s *Server) handleGenres(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Catalog == nil {
		return toolError("TMDb client not configured"), nil
	}
	r := s.deps.Catalog.Genres(ctx)
	catalog.LogResult(s.logger, r)
	if !r.OK() {
		return toolError(fmt.Sprintf("%s failed: %v", r.Kind, r.Err)), nil
	}
	genres := r.Value
	if genres == nil {
		genres = []tmdb.Genre{}
	}
	return toolJSON(genres)
}

func (s *Server) movies(r catalog.Result[[]tmdb.Movie]) (*mcpsdk.CallToolResult, error) {
	catalog.LogResult(s.logger, r)
	if !r.OK() {
		return toolError(fmt.Sprintf("%s failed: %v", r.Kind, r.Err)), nil
	}
	out := make([]Movie, len(r.Value))
	for i, mv := range r.Value {
		out[i] = Movie{
			ID:        mv.ID,
			Title:     mv.Title,
			Vote:      mv.VoteAverage,
			Rating:    mv.Rating(),
			PosterURL: tmdb.PosterURL(mv.PosterPath, tmdb.PosterSize),
		}
	}
	return toolJSON(out)
}

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}
