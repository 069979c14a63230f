package grid

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/qr-race/internal/core"
)

// World is the board for one session.
type World struct {
	cols    int
	rows    int
	hazards map[Coord]struct{}
	goal    Coord
}

// New builds a World. Hazards outside the board are rejected, as is a goal
// outside the board; duplicate hazards are collapsed.
func New(cols, rows int, hazards []Coord, goal Coord) (*World, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid: invalid size %dx%d", cols, rows)
	}

	w := &World{
		cols:    cols,
		rows:    rows,
		hazards: make(map[Coord]struct{}, len(hazards)),
		goal:    goal,
	}
	if !w.InBounds(goal) {
		return nil, fmt.Errorf("grid: goal %v outside %dx%d board", goal, cols, rows)
	}
	for _, h := range hazards {
		if !w.InBounds(h) {
			return nil, fmt.Errorf("grid: hazard %v outside %dx%d board", h, cols, rows)
		}
		w.hazards[h] = struct{}{}
	}
	return w, nil
}

// Cols returns the board width in cells.
func (w *World) Cols() int { return w.cols }

// Rows returns the board height in cells.
func (w *World) Rows() int { return w.rows }

// Goal returns the goal cell.
func (w *World) Goal() Coord { return w.goal }

// Hazards returns the hazard cells sorted row-major.
func (w *World) Hazards() []Coord {
	out := make([]Coord, 0, len(w.hazards))
	for h := range w.hazards {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// InBounds reports whether c lies on the board.
func (w *World) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < w.cols && c.Y >= 0 && c.Y < w.rows
}

// Clamp moves c to the nearest cell on the board.
func (w *World) Clamp(c Coord) Coord {
	return Coord{
		X: core.Clamp(c.X, 0, w.cols-1),
		Y: core.Clamp(c.Y, 0, w.rows-1),
	}
}

// ApplyStep moves pos one cell in direction d. Steps that would leave the
// board saturate at the edge.
func (w *World) ApplyStep(pos Coord, d Direction) Coord {
	dx, dy := d.Delta()
	return w.Clamp(pos.Add(dx, dy))
}

// IsHazard reports whether c is a hazard cell.
func (w *World) IsHazard(c Coord) bool {
	_, ok := w.hazards[c]
	return ok
}

// IsGoal reports whether c is the goal cell.
func (w *World) IsGoal(c Coord) bool {
	return c == w.goal
}
