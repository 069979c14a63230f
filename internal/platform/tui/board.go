package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/core"
	"github.com/vovakirdan/qr-race/internal/grid"
	"github.com/vovakirdan/qr-race/internal/turn"
)

// Board layout constants
const (
	cellW       = 4  // Characters per grid cell horizontally
	cellH       = 2  // Rows per grid cell
	hudMinWidth = 24 // Narrowest usable side panel
)

// sessionView is everything drawn for one frame.
type sessionView struct {
	world   *grid.World
	snap    turn.Snapshot
	seat    cards.Player // Player whose hand the keyboard edits
	table   [2][]string  // Cards on the simulated table, left to right
	editing bool         // Keyboard drives the table
	restart bool         // A new game can be started
	status  string
}

// boardSize returns the board's size including its border.
func boardSize(w *grid.World) (int, int) {
	return w.Cols()*cellW + 2, w.Rows()*cellH + 2
}

// minScreen returns the smallest screen that fits the title, board, side
// panel and banner.
func minScreen(w *grid.World) (int, int) {
	bw, bh := boardSize(w)
	return bw + 2 + hudMinWidth, bh + 3
}

func playerColor(p cards.Player) core.Color {
	if p == cards.Player1 {
		return core.ColorBrightGreen
	}
	return core.ColorBrightBlue
}

// drawSession renders a whole frame into s.
func drawSession(s *core.Screen, v sessionView) {
	s.Clear()

	needW, needH := minScreen(v.world)
	if s.Width() < needW || s.Height() < needH {
		s.DrawTextCentered(s.Height()/2, "Terminal too small", core.ColorYellow)
		s.DrawTextCentered(s.Height()/2+1, fmt.Sprintf("need %dx%d", needW, needH), core.ColorGray)
		return
	}

	bw, bh := boardSize(v.world)
	box := core.NewRect(0, 1, bw, bh)

	drawTitle(s, v)
	s.DrawBox(box, core.ColorGray)
	drawBoard(s, box.X+1, box.Y+1, v)
	drawHUD(s, box.Right()+2, box.Y, s.Width()-box.Right()-2, v)
	drawBanner(s, box.Bottom(), v)
}

func drawTitle(s *core.Screen, v sessionView) {
	s.DrawText(0, 0, "QR RACE", core.ColorBrightYellow)
	info := fmt.Sprintf("frame %d  %s", v.snap.Frame, v.snap.State.Phase)
	s.DrawText(s.Width()-len(info), 0, info, core.ColorGray)
}

// drawBoard draws cells and players with the top-left cell at (ox, oy).
func drawBoard(s *core.Screen, ox, oy int, v sessionView) {
	w := v.world
	for y := range w.Rows() {
		for x := range w.Cols() {
			c := grid.C(x, y)
			px, py := ox+x*cellW, oy+y*cellH
			switch {
			case w.IsGoal(c):
				s.DrawText(px, py, " [] ", core.ColorBrightYellow)
				s.DrawText(px, py+1, " [] ", core.ColorBrightYellow)
			case w.IsHazard(c):
				s.DrawText(px, py, "~~~~", core.ColorBlue)
				s.DrawText(px, py+1, "~~~~", core.ColorBlue)
			default:
				s.SetColored(px+1, py, '.', core.ColorDarkGray)
			}
		}
	}

	// Player 1 sits top-left in its cell and player 2 bottom-right, so both
	// stay visible when they share a cell.
	for i, p := range cards.Players {
		pr := v.snap.State.Players[i]
		px := ox + pr.Position.X*cellW + 1 + i
		py := oy + pr.Position.Y*cellH + i
		if pr.Dead {
			s.SetColored(px, py, 'x', core.ColorGray)
			continue
		}
		s.SetColored(px, py, rune('0'+int(p)), playerColor(p))
	}
}

// drawHUD draws one block per player: where they are, what the camera sees
// and what is left of their path.
func drawHUD(s *core.Screen, x, y, width int, v sessionView) {
	st := v.snap.State
	row := y

	line := func(text string, c core.Color) {
		s.DrawText(x, row, fit(text, width), c)
		row++
	}

	for i, p := range cards.Players {
		pr := st.Players[i]
		hand := v.snap.Hands[i]

		marker := "  "
		if v.editing && v.seat == p {
			marker = "> "
		}
		line(fmt.Sprintf("%sPlayer %s  %s", marker, p, playerStatus(pr)), playerColor(p))

		shown := v.table[i]
		if !v.editing {
			shown = hand.Cards
		}
		line("  cards: "+joinOr(shown, "-"), core.ColorWhite)

		switch {
		case pr.Captured:
			line(fmt.Sprintf("  plan:  %s", arrows(pr.Plan)), core.ColorWhite)
			line(fmt.Sprintf("  left:  %s", arrows(pr.Queue)), core.ColorGray)
		case st.Phase == turn.PhaseAwaitingSequences:
			seen := min(hand.Count, v.snap.Threshold)
			line(fmt.Sprintf("  steady %d/%d", seen, v.snap.Threshold), core.ColorGray)
		}
		row++
	}
}

func playerStatus(pr turn.PlayerRuntime) string {
	switch {
	case pr.Dead:
		return "dead at " + pr.Position.String()
	case pr.Captured:
		return "ready at " + pr.Position.String()
	default:
		return "at " + pr.Position.String()
	}
}

// drawBanner draws the phase or outcome message under the board.
func drawBanner(s *core.Screen, y int, v sessionView) {
	st := v.snap.State
	switch st.Phase {
	case turn.PhaseAwaitingSequences:
		s.DrawText(0, y, "Lay out start ... end for both players", core.ColorGray)
	case turn.PhaseExecutingPlayer1, turn.PhaseExecutingPlayer2:
		mover, _ := st.Phase.Mover()
		s.DrawText(0, y, "Running path: Player "+mover.String(), playerColor(mover))
	case turn.PhaseFinished:
		c := core.ColorBrightYellow
		if !st.Outcome.Won() {
			c = core.ColorBrightRed
		}
		msg := st.Outcome.Message()
		if v.restart {
			msg += "  press r for a new game"
		}
		s.DrawText(0, y, msg, c)
	}

	if v.status != "" {
		s.DrawText(0, y+1, fit(v.status, s.Width()), core.ColorGray)
	}
}

// arrows renders a sequence compactly, e.g. "↑→→".
func arrows(seq cards.Sequence) string {
	if len(seq) == 0 {
		return "-"
	}
	var b strings.Builder
	for _, d := range seq {
		switch d {
		case grid.DirUp:
			b.WriteRune('↑')
		case grid.DirDown:
			b.WriteRune('↓')
		case grid.DirLeft:
			b.WriteRune('←')
		case grid.DirRight:
			b.WriteRune('→')
		}
	}
	return b.String()
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, " ")
}

// fit truncates text to at most width runes.
func fit(text string, width int) string {
	r := []rune(text)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
