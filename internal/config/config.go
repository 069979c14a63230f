// Package config provides YAML-based session configuration for qrrace:
// board geometry, capture debounce, movement cadence and frame rate.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/qr-race/internal/grid"
	"github.com/vovakirdan/qr-race/internal/turn"
)

// Config contains all configuration for one session.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Capture CaptureConfig `yaml:"capture"`
	Turn    TurnConfig    `yaml:"turn"`
	Camera  CameraConfig  `yaml:"camera"`
}

// BoardConfig defines the playing field in camera pixels.
type BoardConfig struct {
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	CellSize int          `yaml:"cell_size"`
	Hazards  []grid.Coord `yaml:"hazards"`
	Goal     *grid.Coord  `yaml:"goal,omitempty"`
	Start    *grid.Coord  `yaml:"start,omitempty"`
}

// CaptureConfig defines how hands are debounced.
type CaptureConfig struct {
	StableFrames int `yaml:"stable_frames"`
}

// TurnConfig defines movement pacing.
type TurnConfig struct {
	StepSeconds float64 `yaml:"step_seconds"`
}

// CameraConfig defines the frame loop.
type CameraConfig struct {
	FPS int `yaml:"fps"`
}

// Cols returns the number of grid columns.
func (c Config) Cols() int {
	if c.Board.CellSize <= 0 {
		return 0
	}
	return c.Board.Width / c.Board.CellSize
}

// Rows returns the number of grid rows.
func (c Config) Rows() int {
	if c.Board.CellSize <= 0 {
		return 0
	}
	return c.Board.Height / c.Board.CellSize
}

// GoalCell returns the configured goal, or the top-right cell.
func (c Config) GoalCell() grid.Coord {
	if c.Board.Goal != nil {
		return *c.Board.Goal
	}
	return grid.C(c.Cols()-1, 0)
}

// StartCell returns the configured start, or the bottom-left cell.
func (c Config) StartCell() grid.Coord {
	if c.Board.Start != nil {
		return *c.Board.Start
	}
	return grid.C(0, c.Rows()-1)
}

// StableFrames returns the debounce threshold, never below 1.
func (c Config) StableFrames() int {
	return max(c.Capture.StableFrames, 1)
}

// StepInterval returns the movement cadence as a duration.
func (c Config) StepInterval() time.Duration {
	return time.Duration(c.Turn.StepSeconds * float64(time.Second))
}

// FrameInterval returns the time between two camera frames.
func (c Config) FrameInterval() time.Duration {
	if c.Camera.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.Camera.FPS)
}

// Validate checks that the configuration describes a playable board.
func (c Config) Validate() error {
	b := c.Board
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("config: board size %dx%d must be positive", b.Width, b.Height)
	}
	if b.CellSize <= 0 {
		return fmt.Errorf("config: cell_size %d must be positive", b.CellSize)
	}
	if b.CellSize > b.Width || b.CellSize > b.Height {
		return fmt.Errorf("config: cell_size %d larger than board %dx%d", b.CellSize, b.Width, b.Height)
	}
	if c.Turn.StepSeconds < 0 {
		return fmt.Errorf("config: step_seconds %v must not be negative", c.Turn.StepSeconds)
	}
	if c.Camera.FPS <= 0 {
		return fmt.Errorf("config: fps %d must be positive", c.Camera.FPS)
	}

	var errs []error
	for _, h := range b.Hazards {
		if !c.inGrid(h) {
			errs = append(errs, fmt.Errorf("config: hazard %v outside %dx%d grid", h, c.Cols(), c.Rows()))
		}
	}
	if g := c.GoalCell(); !c.inGrid(g) {
		errs = append(errs, fmt.Errorf("config: goal %v outside %dx%d grid", g, c.Cols(), c.Rows()))
	}
	if s := c.StartCell(); !c.inGrid(s) {
		errs = append(errs, fmt.Errorf("config: start %v outside %dx%d grid", s, c.Cols(), c.Rows()))
	}
	return errors.Join(errs...)
}

// Warnings returns playable but suspicious settings.
func (c Config) Warnings() []string {
	var out []string
	goal, start := c.GoalCell(), c.StartCell()
	for _, h := range c.Board.Hazards {
		if h == goal {
			out = append(out, fmt.Sprintf("goal %v is also a hazard; reaching it still wins", goal))
		}
		if h == start {
			out = append(out, fmt.Sprintf("start %v is a hazard; both players die when the round starts", start))
		}
	}
	if goal == start {
		out = append(out, fmt.Sprintf("goal and start are both %v", goal))
	}
	if c.Capture.StableFrames < 1 {
		out = append(out, fmt.Sprintf("stable_frames %d raised to 1", c.Capture.StableFrames))
	}
	return out
}

// World builds the grid for a session.
func (c Config) World() (*grid.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w, err := grid.New(c.Cols(), c.Rows(), c.Board.Hazards, c.GoalCell())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return w, nil
}

// TurnSettings returns the scheduler settings for a session.
func (c Config) TurnSettings() turn.Settings {
	return turn.Settings{
		StableFrames: c.StableFrames(),
		StepInterval: c.StepInterval(),
		Start:        c.StartCell(),
	}
}

func (c Config) inGrid(p grid.Coord) bool {
	return p.X >= 0 && p.X < c.Cols() && p.Y >= 0 && p.Y < c.Rows()
}
