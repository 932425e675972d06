// Package shell is the navigation chrome around the single movie screen.
package shell

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/marquee/internal/catalog"
	"github.com/vadimtrunov/marquee/internal/ui/screen"
)

// Title is the static header title of the only screen.
const Title = "Disney Movies"

const headerHeight = 1

var styleHeader = lipgloss.NewStyle().
	Bold(true).
	Background(lipgloss.Color("4")). // blue
	Foreground(lipgloss.Color("#ffffff")).
	Padding(0, 1)

// Model hosts one screen under a fixed header and scrolls its body.
type Model struct {
	screen   screen.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// New wraps s in the navigation shell.
func New(s screen.Model) Model {
	return Model{screen: s}
}

// Screen returns the hosted screen.
func (m Model) Screen() screen.Model { return m.screen }

// Init delegates to the screen, which starts its fetches.
func (m Model) Init() tea.Cmd {
	return m.screen.Init()
}

// Update handles resize, quit and scroll keys and forwards everything else to the screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.screen.Close()
			return m, tea.Quit
		case "pgup", "pgdown":
			return m.scroll(msg)
		}

	case tea.MouseMsg:
		return m.scroll(msg)
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	vpHeight := max(m.height-headerHeight, 1)

	m.screen.SetWidth(m.width)
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.refresh()
}

func (m Model) scroll(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.screen.View())
	}
}

// View renders the header and the scrolled screen body.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return header(m.width) + "\n" + m.viewport.View()
}

func header(width int) string {
	return styleHeader.Width(max(width, lipgloss.Width(Title)+2)).Render(Title)
}

// Snapshot renders the shell once, without a terminal, from already loaded listings.
func Snapshot(state catalog.State, width int) string {
	s := screen.FromState(state)
	s.SetWidth(width)
	return header(width) + "\n" + s.View()
}
