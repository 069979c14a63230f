package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/qr-race/internal/cards"
)

// CatalogueKeyMap defines the key bindings for the card catalogue.
type CatalogueKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPlayer key.Binding
	PrevPlayer key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CatalogueKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPlayer, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CatalogueKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextPlayer, k.PrevPlayer, k.Quit},
	}
}

// DefaultCatalogueKeyMap returns default key bindings.
func DefaultCatalogueKeyMap() CatalogueKeyMap {
	return CatalogueKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPlayer: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next player"),
		),
		PrevPlayer: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev player"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CatalogueModel lists every card a player can print, with the alias texts
// the decoder also accepts.
type CatalogueModel struct {
	all      []cards.Card
	seat     cards.Player
	table    table.Model
	help     help.Model
	keys     CatalogueKeyMap
	width    int
	height   int
	quitting bool
}

// NewCatalogueModel creates a catalogue screen.
func NewCatalogueModel(width, height int) CatalogueModel {
	m := CatalogueModel{
		all:    cards.Catalogue(),
		seat:   cards.Player1,
		help:   help.New(),
		keys:   DefaultCatalogueKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized to the window.
func (m *CatalogueModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Card", Width: 9},
		{Title: "Does", Width: 12},
		{Title: "Also read", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// updateTableRows fills the table with the selected player's cards.
func (m *CatalogueModel) updateTableRows() {
	var rows []table.Row
	for _, c := range m.all {
		if c.Player != m.seat {
			continue
		}
		rows = append(rows, table.Row{c.Text, describeCommand(c.Command), joinOr(c.Aliases, "")})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func describeCommand(cmd cards.Command) string {
	switch cmd {
	case cards.CmdStart:
		return "first card"
	case cards.CmdEnd:
		return "last card"
	default:
		return "move " + cmd.String()
	}
}

// Init initializes the catalogue model.
func (m CatalogueModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the catalogue.
func (m CatalogueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPlayer), key.Matches(msg, m.keys.PrevPlayer):
			if m.seat == cards.Player1 {
				m.seat = cards.Player2
			} else {
				m.seat = cards.Player1
			}
			m.updateTableRows()
			return m, nil
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

// View renders the catalogue.
func (m CatalogueModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("CARDS - Player %s", m.seat)))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(cards.Players))
	for i, p := range cards.Players {
		label := "Player " + p.String()
		if p == m.seat {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunCatalogue runs the card catalogue screen.
func RunCatalogue(width, height int) error {
	p := tea.NewProgram(NewCatalogueModel(width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
