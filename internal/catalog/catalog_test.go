package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vadimtrunov/marquee/internal/metadata/tmdb"
)

// mockSource implements Source for testing.
type mockSource struct {
	popular     []tmdb.Movie
	popularErr  error
	trending    []tmdb.Movie
	trendingErr error
	genres      []tmdb.Genre
	genresErr   error

	gotPage   atomic.Int32
	gotWindow atomic.Value
}

func (m *mockSource) PopularMovies(_ context.Context, page int) ([]tmdb.Movie, error) {
	m.gotPage.Store(int32(page))
	return m.popular, m.popularErr
}

func (m *mockSource) TrendingMovies(_ context.Context, window string) ([]tmdb.Movie, error) {
	m.gotWindow.Store(window)
	return m.trending, m.trendingErr
}

func (m *mockSource) MovieGenres(_ context.Context) ([]tmdb.Genre, error) {
	return m.genres, m.genresErr
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestKindString(t *testing.T) {
	t.Parallel()
	tests := map[Kind]string{Popular: "popular", Trending: "trending", Genres: "genres", Kind(9): "unknown"}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestLoader_RequestsFixedParameters(t *testing.T) {
	t.Parallel()
	src := &mockSource{}
	l := NewLoader(src)

	l.Popular(context.Background())
	l.Trending(context.Background())

	if src.gotPage.Load() != 1 {
		t.Errorf("popular page = %d, want 1", src.gotPage.Load())
	}
	if src.gotWindow.Load() != "day" {
		t.Errorf("trending window = %v, want day", src.gotWindow.Load())
	}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	ok := Fetch(context.Background(), Genres, func(context.Context) ([]tmdb.Genre, error) {
		return []tmdb.Genre{{ID: 10, Name: "Action"}}, nil
	})
	if !ok.OK() || ok.Kind != Genres || len(ok.Value) != 1 {
		t.Errorf("unexpected success result: %+v", ok)
	}

	failed := Fetch(context.Background(), Popular, func(context.Context) ([]tmdb.Movie, error) {
		return []tmdb.Movie{{ID: 1}}, errors.New("boom")
	})
	if failed.OK() {
		t.Error("expected failure")
	}
	if failed.Value != nil {
		t.Errorf("failed result must not carry a value, got %+v", failed.Value)
	}
}

func TestState_ApplyMovies(t *testing.T) {
	t.Parallel()

	var s State
	movies := []tmdb.Movie{{ID: 3, Title: "C"}, {ID: 1, Title: "A"}, {ID: 2, Title: "B"}}

	if !s.ApplyMovies(Result[[]tmdb.Movie]{Kind: Popular, Value: movies}) {
		t.Fatal("expected popular to apply")
	}
	if len(s.Popular) != 3 || s.Popular[0].ID != 3 || s.Popular[2].ID != 2 {
		t.Errorf("popular not stored verbatim: %+v", s.Popular)
	}
	if s.Trending != nil {
		t.Error("trending must be untouched")
	}

	// Replacement, not merge.
	s.ApplyMovies(Result[[]tmdb.Movie]{Kind: Popular, Value: []tmdb.Movie{{ID: 9}}})
	if len(s.Popular) != 1 || s.Popular[0].ID != 9 {
		t.Errorf("expected wholesale replacement, got %+v", s.Popular)
	}

	// Failure keeps the previous value.
	if s.ApplyMovies(Result[[]tmdb.Movie]{Kind: Popular, Err: errors.New("HTTP 500")}) {
		t.Error("failed result should not apply")
	}
	if len(s.Popular) != 1 || s.Popular[0].ID != 9 {
		t.Errorf("failure changed state: %+v", s.Popular)
	}
}

func TestState_ApplyNilValueBecomesEmpty(t *testing.T) {
	t.Parallel()

	s := State{Trending: []tmdb.Movie{{ID: 1}}, Genres: []tmdb.Genre{{ID: 1}}}
	s.ApplyMovies(Result[[]tmdb.Movie]{Kind: Trending})
	s.ApplyGenres(Result[[]tmdb.Genre]{Kind: Genres})

	if s.Trending == nil || len(s.Trending) != 0 {
		t.Errorf("expected empty non-nil trending, got %#v", s.Trending)
	}
	if s.Genres == nil || len(s.Genres) != 0 {
		t.Errorf("expected empty non-nil genres, got %#v", s.Genres)
	}
}

func TestState_ApplyGenresWrongKind(t *testing.T) {
	t.Parallel()
	var s State
	if s.ApplyGenres(Result[[]tmdb.Genre]{Kind: Popular, Value: []tmdb.Genre{{ID: 1}}}) {
		t.Error("genres result with wrong kind should not apply")
	}
}

func TestLoadAll_AllSucceed(t *testing.T) {
	t.Parallel()
	src := &mockSource{
		popular:  []tmdb.Movie{{ID: 1, Title: "A", PosterPath: "/a.jpg", VoteAverage: 7.5}},
		trending: []tmdb.Movie{{ID: 2}, {ID: 3}},
		genres:   []tmdb.Genre{{ID: 10, Name: "Action"}},
	}

	state, errs := LoadAll(context.Background(), NewLoader(src), discardLogger)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(state.Popular) != 1 || len(state.Trending) != 2 || len(state.Genres) != 1 {
		t.Errorf("unexpected state: %+v", state)
	}
}

func TestLoadAll_PartialFailure(t *testing.T) {
	t.Parallel()
	src := &mockSource{
		popular:     []tmdb.Movie{{ID: 1}},
		trendingErr: context.DeadlineExceeded,
		genres:      []tmdb.Genre{{ID: 10, Name: "Action"}},
	}

	state, errs := LoadAll(context.Background(), NewLoader(src), discardLogger)
	if len(errs) != 1 || !errors.Is(errs[0], context.DeadlineExceeded) {
		t.Fatalf("expected one deadline error, got %v", errs)
	}
	if len(state.Trending) != 0 {
		t.Errorf("trending should stay empty, got %+v", state.Trending)
	}
	if len(state.Popular) != 1 || len(state.Genres) != 1 {
		t.Errorf("other listings should populate: %+v", state)
	}
}

func TestLogResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	LogResult(logger, Result[[]tmdb.Movie]{Kind: Trending, Err: context.Canceled})
	if buf.Len() != 0 {
		t.Errorf("cancellation should log below info, got %q", buf.String())
	}

	LogResult(logger, Result[[]tmdb.Genre]{Kind: Genres, Err: errors.New("HTTP 500")})
	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "source=genres") {
		t.Errorf("unexpected failure log: %q", out)
	}
}

func TestLoadLogger_AddsLoadID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	LoadLogger(slog.New(slog.NewTextHandler(&buf, nil))).Info("x")
	if !strings.Contains(buf.String(), "load_id=") {
		t.Errorf("expected load_id attribute, got %q", buf.String())
	}
}
