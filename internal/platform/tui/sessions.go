package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/storage"
)

// Sessions board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the filter sidebar
	sidebarWidth       = 20  // Width of the filter sidebar
	maxSessions        = 200 // Max sessions to load
)

// allApps is the filter entry that shows every application.
const allApps = ""

// SessionsKeyMap defines the key bindings for the sessions board.
type SessionsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.PrevFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
		{k.Back, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next world"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev world"),
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

// SessionsModel is the Bubble Tea model for the sessions board.
type SessionsModel struct {
	filters     []registry.AppInfo // First entry is "All"
	cursor      int
	sessions    []storage.Session // Everything loaded from the store
	table       table.Model
	help        help.Model
	keys        SessionsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewSessionsModel creates a sessions board over store. A nil store shows
// an empty board.
func NewSessionsModel(store *storage.Store, width, height int) SessionsModel {
	filters := append([]registry.AppInfo{{ID: allApps, Title: "All"}}, registry.List()...)

	h := help.New()
	h.ShowAll = false

	m := SessionsModel{
		filters:     filters,
		keys:        DefaultSessionsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	if store != nil {
		//nolint:errcheck // An unreadable catalog shows as empty.
		m.sessions, _ = store.RecentSessions(maxSessions)
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized to the terminal.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 13},
		{Title: "World", Width: 10},
		{Title: "User", Width: 10},
		{Title: "Frames", Width: 8},
		{Title: "Time", Width: 8},
		{Title: "Map", Width: 10},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Give spare room to the map column.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[5].Width += min(extra, 10)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

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

// Visible returns the sessions that pass the current filter.
func (m SessionsModel) Visible() []storage.Session {
	appID := m.filters[m.cursor].ID
	if appID == allApps {
		return m.sessions
	}
	var out []storage.Session
	for _, s := range m.sessions {
		if s.AppID == appID {
			out = append(out, s)
		}
	}
	return out
}

// updateTableRows fills the table from the filtered sessions.
func (m *SessionsModel) updateTableRows() {
	visible := m.Visible()
	rows := make([]table.Row, len(visible))
	for i, s := range visible {
		rows[i] = table.Row{
			s.StartedAt.Format("Jan 02 15:04"),
			s.AppID,
			s.User,
			fmt.Sprintf("%d", s.Frames),
			formatDuration(s),
			s.FinalMap,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatDuration(s storage.Session) string {
	if s.EndedAt.IsZero() {
		return "-"
	}
	return s.Duration().Round(time.Second).String()
}

// Init initializes the sessions board.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sessions board.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.cursor = (m.cursor - 1 + len(m.filters)) % len(m.filters)
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table.
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the sessions board.
func (m SessionsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("SESSIONS - %s", m.filters[m.cursor].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.filters[m.cursor].Title), m.width))
		b.WriteString("\n\n")
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the filters.
func (m SessionsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Worlds\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, f := range m.filters {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := f.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m SessionsModel) renderTableContent() string {
	if len(m.Visible()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay a world to start one!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SessionsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SessionsModel) IsQuitting() bool {
	return m.quitting
}

// RunSessions runs the sessions board.
// Returns true if user wants to go back to menu, false if quitting.
func RunSessions(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewSessionsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SessionsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
