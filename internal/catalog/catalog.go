// Package catalog runs the three independent listing fetches behind the movie
// screen and holds their results. Each fetch reports a Result; a failed result
// never touches the state of the other listings.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vadimtrunov/marquee/internal/metadata/tmdb"
)

// PopularPage is the only page of the popular ranking ever requested.
const PopularPage = 1

// Source is the subset of the TMDb client the catalog needs.
type Source interface {
	PopularMovies(ctx context.Context, page int) ([]tmdb.Movie, error)
	TrendingMovies(ctx context.Context, window string) ([]tmdb.Movie, error)
	MovieGenres(ctx context.Context) ([]tmdb.Genre, error)
}

// compile-time check.
var _ Source = (*tmdb.Client)(nil)

// Kind identifies one of the listings.
type Kind int

// Listing kinds.
const (
	Popular Kind = iota
	Trending
	Genres
)

// String returns the name used in logs and tool names.
func (k Kind) String() string {
	switch k {
	case Popular:
		return "popular"
	case Trending:
		return "trending"
	case Genres:
		return "genres"
	}
	return "unknown"
}

// Result is the outcome of one fetch: a value on success, an error otherwise.
type Result[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Fetch runs fn and packs its outcome into a Result.
func Fetch[T any](ctx context.Context, kind Kind, fn func(context.Context) (T, error)) Result[T] {
	v, err := fn(ctx)
	if err != nil {
		var zero T
		return Result[T]{Kind: kind, Value: zero, Err: err}
	}
	return Result[T]{Kind: kind, Value: v}
}

// Loader binds the three fetches to a Source.
type Loader struct {
	src Source
}

// NewLoader creates a Loader.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Popular fetches page 1 of the popular ranking.
func (l *Loader) Popular(ctx context.Context) Result[[]tmdb.Movie] {
	return Fetch(ctx, Popular, func(ctx context.Context) ([]tmdb.Movie, error) {
		return l.src.PopularMovies(ctx, PopularPage)
	})
}

// Trending fetches today's trending movies.
func (l *Loader) Trending(ctx context.Context) Result[[]tmdb.Movie] {
	return Fetch(ctx, Trending, func(ctx context.Context) ([]tmdb.Movie, error) {
		return l.src.TrendingMovies(ctx, tmdb.TrendingDay)
	})
}

// Genres fetches the movie genre list.
func (l *Loader) Genres(ctx context.Context) Result[[]tmdb.Genre] {
	return Fetch(ctx, Genres, l.src.MovieGenres)
}

// State holds the most recent successful result of each listing.
// Containers start empty and are replaced wholesale, never merged.
type State struct {
	Popular  []tmdb.Movie
	Trending []tmdb.Movie
	Genres   []tmdb.Genre
}

// ApplyMovies stores a successful popular or trending result.
// It reports whether the state changed; failed results leave it untouched.
func (s *State) ApplyMovies(r Result[[]tmdb.Movie]) bool {
	if !r.OK() {
		return false
	}
	movies := r.Value
	if movies == nil {
		movies = []tmdb.Movie{}
	}
	switch r.Kind {
	case Popular:
		s.Popular = movies
	case Trending:
		s.Trending = movies
	default:
		return false
	}
	return true
}

// ApplyGenres stores a successful genre result.
func (s *State) ApplyGenres(r Result[[]tmdb.Genre]) bool {
	if !r.OK() || r.Kind != Genres {
		return false
	}
	genres := r.Value
	if genres == nil {
		genres = []tmdb.Genre{}
	}
	s.Genres = genres
	return true
}

// LoadLogger tags logger with a fresh load_id so the outcomes of one load correlate.
func LoadLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("load_id", uuid.NewString()))
}

// LogResult reports the outcome of a fetch. Failures are the only diagnostics
// the screen produces; cancellation after teardown is expected and logged quietly.
func LogResult[T any](logger *slog.Logger, r Result[T]) {
	switch {
	case r.OK():
		logger.Debug("listing loaded", slog.String("source", r.Kind.String()))
	case errors.Is(r.Err, context.Canceled):
		logger.Debug("listing fetch canceled", slog.String("source", r.Kind.String()))
	default:
		logger.Error("listing fetch failed",
			slog.String("source", r.Kind.String()),
			slog.String("error", r.Err.Error()),
		)
	}
}

// LoadAll runs the three fetches concurrently and waits for all of them.
// Every failure is logged and returned; the state keeps whatever succeeded.
func LoadAll(ctx context.Context, l *Loader, logger *slog.Logger) (State, []error) {
	logger = LoadLogger(logger)

	var (
		wg       sync.WaitGroup
		popular  Result[[]tmdb.Movie]
		trending Result[[]tmdb.Movie]
		genres   Result[[]tmdb.Genre]
	)
	wg.Add(3)
	go func() { defer wg.Done(); popular = l.Popular(ctx) }()
	go func() { defer wg.Done(); trending = l.Trending(ctx) }()
	go func() { defer wg.Done(); genres = l.Genres(ctx) }()
	wg.Wait()

	var state State
	var errs []error
	for _, r := range []Result[[]tmdb.Movie]{popular, trending} {
		LogResult(logger, r)
		if !state.ApplyMovies(r) {
			errs = append(errs, r.Err)
		}
	}
	LogResult(logger, genres)
	if !state.ApplyGenres(genres) {
		errs = append(errs, genres.Err)
	}
	return state, errs
}
