package tui

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/core"
	"github.com/vovakirdan/qr-race/internal/feed"
	"github.com/vovakirdan/qr-race/internal/grid"
	"github.com/vovakirdan/qr-race/internal/turn"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func testWorld(t *testing.T) *grid.World {
	t.Helper()
	w, err := grid.New(10, 7, []grid.Coord{grid.C(2, 5), grid.C(3, 5), grid.C(4, 5)}, grid.C(9, 0))
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}
	return w
}

func newTableModel(t *testing.T) (Model, *feed.TableSource) {
	t.Helper()
	table := feed.NewTableSource(0, 0, 1)
	m := NewModel(context.Background(), Options{
		World:    testWorld(t),
		Settings: turn.Settings{StableFrames: 2, StepInterval: 100 * time.Millisecond, Start: grid.C(0, 6)},
		Source:   table,
		Table:    table,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, FrameHz: 30},
	})
	return m, table
}

func press(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(m Model, at time.Time) Model {
	next, _ := m.Update(TickMsg(at))
	return next.(Model)
}

func TestKeysEditTable(t *testing.T) {
	m, table := newTableModel(t)

	m = press(m,
		runes("["),
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyRight},
		runes("]"),
		tea.KeyMsg{Type: tea.KeyTab},
		runes("["),
		runes("l"),
		tea.KeyMsg{Type: tea.KeyBackspace},
		runes("]"),
	)

	if got := table.Hand(cards.Player1); !reflect.DeepEqual(got, []string{"1-start", "1-up", "1-right", "1-end"}) {
		t.Errorf("player 1 hand = %v", got)
	}
	if got := table.Hand(cards.Player2); !reflect.DeepEqual(got, []string{"2-start", "2-end"}) {
		t.Errorf("player 2 hand = %v", got)
	}
	if m.seat != cards.Player2 {
		t.Errorf("seat = %v, expected 2", m.seat)
	}

	m = press(m, runes("c"))
	if got := table.Hand(cards.Player2); len(got) != 0 {
		t.Errorf("player 2 hand after clear = %v", got)
	}
}

func TestTicksDriveSession(t *testing.T) {
	m, _ := newTableModel(t)
	m = press(m,
		runes("["), tea.KeyMsg{Type: tea.KeyUp}, runes("]"),
		tea.KeyMsg{Type: tea.KeyTab},
		runes("["), runes("]"),
	)

	now := t0
	for i := 0; i < 200 && m.Snapshot().State.Phase != turn.PhaseFinished; i++ {
		now = now.Add(time.Second / 30)
		m = tick(m, now)
	}

	st := m.Snapshot().State
	if st.Phase != turn.PhaseFinished {
		t.Fatalf("Phase = %v, expected finished", st.Phase)
	}
	if st.Players[0].Position != grid.C(0, 5) {
		t.Errorf("player 1 at %v, expected (0,5)", st.Players[0].Position)
	}
	if st.Outcome != turn.OutcomeNone {
		t.Errorf("Outcome = %v, expected none", st.Outcome)
	}
	if !m.keys.Restart.Enabled() {
		t.Error("restart should be enabled once finished")
	}
	if !strings.Contains(m.View(), "Nobody reached the goal") {
		t.Error("View() missing the end message")
	}

	old := m.Session()
	m = press(m, runes("r"))
	if m.Session() == old {
		t.Error("restart kept the session id")
	}
	if m.Snapshot().State.Phase != turn.PhaseAwaitingSequences {
		t.Errorf("Phase after restart = %v", m.Snapshot().State.Phase)
	}
	if m.keys.Restart.Enabled() {
		t.Error("restart still enabled in the new session")
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	m, _ := newTableModel(t)
	old := m.Session()
	m = press(m, runes("r"))
	if m.Session() != old {
		t.Error("r started a new session before the game ended")
	}
}

func TestScriptedFeedIgnoresEditing(t *testing.T) {
	src := feed.NewScriptSource(&feed.Script{})
	m := NewModel(context.Background(), Options{
		World:    testWorld(t),
		Settings: turn.Settings{StableFrames: 1},
		Source:   src,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, FrameHz: 30},
	})

	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, runes("["))
	if m.seat != cards.Player1 {
		t.Error("tab switched seats without a card table")
	}
	if m.keys.Seat.Enabled() {
		t.Error("editing bindings enabled for a scripted feed")
	}
}

func TestSourceErrorQuits(t *testing.T) {
	table := feed.NewTableSource(0, 0, 1)
	m := NewModel(context.Background(), Options{
		World:    testWorld(t),
		Settings: turn.Settings{StableFrames: 1},
		Source:   table,
		Table:    table,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, FrameHz: 30},
	})
	table.Close()

	next, cmd := m.Update(TickMsg(t0))
	m = next.(Model)
	if m.Err() == nil {
		t.Fatal("Err() = nil after a source failure")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("source failure did not quit")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTableModel(t)
	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if !m.quitting {
		t.Error("q did not quit")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTableModel(t)
	short := m.View()
	m = press(m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("? did not expand the help")
	}
	if m.View() == short {
		t.Error("View() unchanged after expanding help")
	}
}

func TestScreenshot(t *testing.T) {
	m, _ := newTableModel(t)
	m.screenshotDir = filepath.Join(t.TempDir(), "shots")

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.screenshotDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d screenshots, expected 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(m.screenshotDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "QR RACE") {
		t.Error("screenshot missing the title")
	}
	if !strings.HasPrefix(m.status, "saved ") {
		t.Errorf("status = %q", m.status)
	}
}
