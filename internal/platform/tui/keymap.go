package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/qr-race/internal/cards"
)

// KeyMap defines the key bindings for a session.
type KeyMap struct {
	Seat       key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Start      key.Binding
	End        key.Binding
	Remove     key.Binding
	Clear      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Seat, k.Start, k.Up, k.End, k.Remove, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Seat, k.Start, k.End, k.Remove, k.Clear},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Restart, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Seat: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch player"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up card"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down card"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left card"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right card"),
		),
		Start: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "start card"),
		),
		End: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "end card"),
		),
		Remove: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "take back"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear hand"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
			key.WithDisabled(),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SetEditing enables or disables the bindings that change the card table.
func (k *KeyMap) SetEditing(enabled bool) {
	for _, b := range []*key.Binding{
		&k.Seat, &k.Up, &k.Down, &k.Left, &k.Right,
		&k.Start, &k.End, &k.Remove, &k.Clear,
	} {
		b.SetEnabled(enabled)
	}
}

// CardFor returns the card a key places on the table, if any.
func (k KeyMap) CardFor(msg tea.KeyMsg) (cards.Command, bool) {
	switch {
	case key.Matches(msg, k.Start):
		return cards.CmdStart, true
	case key.Matches(msg, k.End):
		return cards.CmdEnd, true
	case key.Matches(msg, k.Up):
		return cards.CmdUp, true
	case key.Matches(msg, k.Down):
		return cards.CmdDown, true
	case key.Matches(msg, k.Left):
		return cards.CmdLeft, true
	case key.Matches(msg, k.Right):
		return cards.CmdRight, true
	}
	return 0, false
}
