package screen

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/marquee/internal/metadata/tmdb"
)

const (
	gridColumns    = 2
	gridGap        = 1
	trendingWidth  = 24
	trendingHeight = 4
	trendingGap    = 1
	chipGap        = 1
)

var (
	colorChip     = lipgloss.Color("#dddddd")
	colorSelected = lipgloss.Color("#007bff")
	colorChipText = lipgloss.Color("#ffffff")
	colorRating   = lipgloss.Color("#666666")
	colorBorder   = lipgloss.Color("8")

	styleSection = lipgloss.NewStyle().Bold(true).MarginTop(1)

	styleSearch = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	styleSearchFocused = styleSearch.BorderForeground(colorSelected)

	styleChip = lipgloss.NewStyle().
			Padding(0, 1).
			Background(colorChip).
			Foreground(colorChipText)

	styleChipSelected = styleChip.Background(colorSelected)

	styleTrending = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Width(trendingWidth).
			Height(trendingHeight)

	styleCell = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Align(lipgloss.Center)

	styleImage  = lipgloss.NewStyle().Faint(true)
	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleRating = lipgloss.NewStyle().Foreground(colorRating)
	styleDim    = lipgloss.NewStyle().Foreground(colorBorder)
)

// Chip is one rendered genre chip.
type Chip struct {
	ID       int
	Label    string
	Selected bool
}

// Cell is one rendered movie grid cell.
type Cell struct {
	Title    string
	Rating   string
	ImageURL string
}

// Chips returns the genre chips in response order.
func (m Model) Chips() []Chip {
	chips := make([]Chip, len(m.state.Genres))
	for i, g := range m.state.Genres {
		chips[i] = Chip{
			ID:       g.ID,
			Label:    g.Name,
			Selected: m.selectedGenre != nil && *m.selectedGenre == g.ID,
		}
	}
	return chips
}

// TrendingImages returns the carousel image URLs in response order.
func (m Model) TrendingImages() []string {
	urls := make([]string, len(m.state.Trending))
	for i, mv := range m.state.Trending {
		urls[i] = tmdb.PosterURL(mv.PosterPath, tmdb.PosterSize)
	}
	return urls
}

// Grid returns the popular movies as rows of two cells. The last row may hold one.
func (m Model) Grid() [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(m.state.Popular); i += gridColumns {
		end := min(i+gridColumns, len(m.state.Popular))
		row := make([]Cell, 0, gridColumns)
		for _, mv := range m.state.Popular[i:end] {
			row = append(row, Cell{
				Title:    mv.Title,
				Rating:   mv.Rating(),
				ImageURL: tmdb.PosterURL(mv.PosterPath, tmdb.PosterSize),
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// View renders the whole screen body at the current width.
func (m Model) View() string {
	sections := []string{
		m.searchView(),
		m.genresView(),
		styleSection.Render("Trending Now"),
		m.trendingView(),
		styleSection.Render("All Movies"),
		m.gridView(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) searchView() string {
	style := styleSearch
	if m.focus == focusSearch {
		style = styleSearchFocused
	}
	return style.Width(max(m.width-2, 1)).Render(m.search.View())
}

func (m Model) genresView() string {
	chips := m.Chips()
	if len(chips) == 0 {
		return ""
	}

	rendered := make([]string, len(chips))
	for i, c := range chips {
		style := styleChip
		if c.Selected {
			style = styleChipSelected
		}
		if m.focus == focusGenres && i == m.genreCursor {
			style = style.Underline(true).Bold(true)
		}
		rendered[i] = style.Render(c.Label)
	}

	start := firstVisible(rendered, m.genreCursor, m.width, chipGap)
	return joinRow(rendered[start:], m.width, chipGap)
}

func (m Model) trendingView() string {
	urls := m.TrendingImages()
	if len(urls) == 0 {
		return ""
	}

	cards := make([]string, 0, len(urls)-m.trendingOffset)
	for _, u := range urls[m.trendingOffset:] {
		cards = append(cards, styleTrending.Render(styleImage.Render(u)))
	}
	row := joinRow(cards, m.width, trendingGap)
	if m.focus == focusTrending {
		row += "\n" + styleDim.Render("← → scroll")
	}
	return row
}

func (m Model) gridView() string {
	rows := m.Grid()
	if len(rows) == 0 {
		return ""
	}

	cellWidth := max((m.width-gridGap)/gridColumns-2, 1)
	gap := strings.Repeat(" ", gridGap)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row)*2)
		for i, c := range row {
			if i > 0 {
				cells = append(cells, gap)
			}
			body := lipgloss.JoinVertical(lipgloss.Center,
				styleImage.Render(c.ImageURL),
				styleTitle.Render(c.Title),
				styleRating.Render(c.Rating),
			)
			cells = append(cells, styleCell.Width(cellWidth).Render(body))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

// firstVisible returns the index of the first block to draw so that the block
// at cursor stays on screen.
func firstVisible(blocks []string, cursor, width, gap int) int {
	if cursor <= 0 || cursor >= len(blocks) {
		return 0
	}
	used := lipgloss.Width(blocks[cursor])
	start := cursor
	for start > 0 {
		next := used + gap + lipgloss.Width(blocks[start-1])
		if next > width {
			break
		}
		used = next
		start--
	}
	return start
}

// joinRow lays blocks side by side, dropping those that would overflow width.
// The first block is always drawn.
func joinRow(blocks []string, width, gap int) string {
	spacer := strings.Repeat(" ", gap)
	parts := make([]string, 0, len(blocks)*2)
	used := 0
	for i, b := range blocks {
		w := lipgloss.Width(b)
		if i > 0 {
			if used+gap+w > width {
				break
			}
			parts = append(parts, spacer)
			used += gap
		}
		parts = append(parts, b)
		used += w
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
