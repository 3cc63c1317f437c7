package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ashmarty/hexview/internal/storage"
)

// Library layout constants
const (
	maxRecentEntries = 100 // Max library rows to load
	libraryMinHeight = 8
)

// LibraryKeyMap defines the key bindings for the library browser.
type LibraryKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Watch key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LibraryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LibraryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Watch},
		{k.Back, k.Quit},
	}
}

// DefaultLibraryKeyMap returns default key bindings.
func DefaultLibraryKeyMap() LibraryKeyMap {
	return LibraryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LibraryModel is the Bubble Tea model for the viewing-history browser.
type LibraryModel struct {
	store    *storage.Store
	entries  []storage.ViewEntry
	table    table.Model
	help     help.Model
	keys     LibraryKeyMap
	width    int
	height   int
	selected string // path chosen with enter
	quitting bool
}

// NewLibraryModel creates a library browser over the store's history.
func NewLibraryModel(store *storage.Store, width, height int) LibraryModel {
	keys := DefaultLibraryKeyMap()
	h := help.New()
	h.ShowAll = false

	m := LibraryModel{
		store:  store,
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.loadEntries()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *LibraryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "File", Width: 24},
		{Title: "Player", Width: 10},
		{Title: "Turns", Width: 6},
		{Title: "Score", Width: 7},
		{Title: "Left at", Width: 8},
		{Title: "Viewed", Width: 14},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < libraryMinHeight {
		height = libraryMinHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadEntries loads the recent viewing history.
func (m *LibraryModel) loadEntries() {
	if m.store == nil {
		m.entries = nil
		m.updateTableRows()
		return
	}

	entries, err := m.store.Recent(maxRecentEntries)
	if err != nil {
		m.entries = nil
	} else {
		m.entries = entries
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current entries.
func (m *LibraryModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			filepath.Base(e.Path),
			e.Player,
			fmt.Sprintf("%d", e.Turns),
			fmt.Sprintf("%d", e.FinalScore),
			fmt.Sprintf("%d/%d", e.LastTurn, e.Turns),
			e.ViewedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the library model.
func (m LibraryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the library browser.
func (m LibraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if len(m.entries) > 0 {
				m.selected = m.entries[m.table.Cursor()].Path
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the library browser.
func (m LibraryModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("RECENTLY WATCHED"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(hintStyle.Render("Nothing watched yet.\nOpen a replay with 'hexview play <file>' first."))
	} else {
		boxStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the path chosen with enter, or "".
func (m LibraryModel) Selected() string {
	return m.selected
}

// RunLibrary runs the library browser and returns the replay path the
// user chose to watch, or "" if they backed out.
func RunLibrary(store *storage.Store, width, height int) (string, error) {
	model := NewLibraryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(LibraryModel)
	if !ok {
		return "", nil
	}

	return m.Selected(), nil
}
