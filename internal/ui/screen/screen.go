// Package screen implements the movie screen: search field, genre chips,
// trending carousel and the two-column grid of popular movies.
package screen

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/marquee/internal/catalog"
	"github.com/vadimtrunov/marquee/internal/metadata/tmdb"
)

const (
	searchPlaceholder = "Search Movies..."
	searchCharLimit   = 200
	defaultWidth      = 80
)

// focus identifies the sub-view receiving key input.
type focus int

const (
	focusSearch focus = iota
	focusGenres
	focusTrending
	focusCount
)

// Model is the Bubble Tea model for the movie screen.
// It owns the listing state and the fetch lifetime of one mount.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	loader *catalog.Loader
	logger *slog.Logger

	state          catalog.State
	search         textinput.Model
	selectedGenre  *int
	genreCursor    int
	trendingOffset int
	focus          focus
	width          int
	closed         bool
}

// New creates a screen whose fetches are scoped to a child of ctx.
func New(ctx context.Context, loader *catalog.Loader, logger *slog.Logger) Model {
	ctx, cancel := context.WithCancel(ctx)
	m := newModel(catalog.LoadLogger(logger))
	m.ctx = ctx
	m.cancel = cancel
	m.loader = loader
	return m
}

// FromState creates a screen pre-filled with already loaded listings.
// It issues no fetches.
func FromState(state catalog.State) Model {
	m := newModel(slog.Default())
	m.state = state
	return m
}

func newModel(logger *slog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.CharLimit = searchCharLimit
	ti.Focus()

	return Model{
		logger: logger,
		search: ti,
		focus:  focusSearch,
		width:  defaultWidth,
	}
}

// Init starts the three listing fetches. They run independently; none waits for another.
func (m Model) Init() tea.Cmd {
	if m.loader == nil {
		return textinput.Blink
	}
	return tea.Batch(
		textinput.Blink,
		m.fetchPopular(),
		m.fetchTrending(),
		m.fetchGenres(),
	)
}

func (m Model) fetchPopular() tea.Cmd {
	return func() tea.Msg { return m.loader.Popular(m.ctx) }
}

func (m Model) fetchTrending() tea.Cmd {
	return func() tea.Msg { return m.loader.Trending(m.ctx) }
}

func (m Model) fetchGenres() tea.Cmd {
	return func() tea.Msg { return m.loader.Genres(m.ctx) }
}

// Close cancels outstanding fetches. Results that arrive afterwards are dropped.
func (m *Model) Close() {
	m.closed = true
	if m.cancel != nil {
		m.cancel()
	}
}

// Closed reports whether Close has been called.
func (m Model) Closed() bool { return m.closed }

// SetWidth sets the render width.
func (m *Model) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	m.width = width
	m.search.Width = max(width-6, 1)
}

// State returns the current listing containers.
func (m Model) State() catalog.State { return m.state }

// Search returns the bound search text. It never filters anything.
func (m Model) Search() string { return m.search.Value() }

// SelectedGenre returns the selected genre ID, or false if none is selected.
// Selection only drives the chip highlight.
func (m Model) SelectedGenre() (int, bool) {
	if m.selectedGenre == nil {
		return 0, false
	}
	return *m.selectedGenre, true
}

// Update handles listing results and key input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalog.Result[[]tmdb.Movie]:
		m.handleMovies(msg)
		return m, nil

	case catalog.Result[[]tmdb.Genre]:
		m.handleGenres(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMovies(r catalog.Result[[]tmdb.Movie]) {
	if m.closed {
		return
	}
	catalog.LogResult(m.logger, r)
	if m.state.ApplyMovies(r) && r.Kind == catalog.Trending {
		m.trendingOffset = 0
	}
}

func (m *Model) handleGenres(r catalog.Result[[]tmdb.Genre]) {
	if m.closed {
		return
	}
	catalog.LogResult(m.logger, r)
	if m.state.ApplyGenres(r) {
		m.genreCursor = 0
		m.selectedGenre = nil
	}
}

// handleKey dispatches key events to the focused sub-view.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	switch m.focus {
	case focusSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	case focusGenres:
		m.handleGenreKey(msg.String())
	case focusTrending:
		m.handleTrendingKey(msg.String())
	}
	return m, nil
}

func (m Model) setFocus(f focus) (Model, tea.Cmd) {
	m.focus = f
	if f == focusSearch {
		return m, m.search.Focus()
	}
	m.search.Blur()
	return m, nil
}

func (m *Model) handleGenreKey(key string) {
	n := len(m.state.Genres)
	if n == 0 {
		return
	}
	switch key {
	case "left", "h":
		if m.genreCursor > 0 {
			m.genreCursor--
		}
	case "right", "l":
		if m.genreCursor < n-1 {
			m.genreCursor++
		}
	case "enter", " ":
		id := m.state.Genres[m.genreCursor].ID
		m.selectedGenre = &id
	}
}

func (m *Model) handleTrendingKey(key string) {
	n := len(m.state.Trending)
	switch key {
	case "left", "h":
		if m.trendingOffset > 0 {
			m.trendingOffset--
		}
	case "right", "l":
		if m.trendingOffset < n-1 {
			m.trendingOffset++
		}
	}
}
