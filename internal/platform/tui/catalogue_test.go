package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCatalogueSwitchesPlayer(t *testing.T) {
	m := NewCatalogueModel(80, 24)
	if rows := m.table.Rows(); len(rows) != 6 || rows[0][0] != "1-start" {
		t.Fatalf("player 1 rows = %v", rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(CatalogueModel)
	rows := m.table.Rows()
	if len(rows) != 6 || rows[0][0] != "2-start" {
		t.Fatalf("player 2 rows = %v", rows)
	}
	if !strings.Contains(m.View(), "CARDS - Player 2") {
		t.Error("View() missing the player 2 title")
	}
}
