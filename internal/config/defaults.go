package config

import (
	_ "embed"

	"github.com/vovakirdan/qr-race/internal/grid"
	"github.com/vovakirdan/qr-race/internal/stability"
	"github.com/vovakirdan/qr-race/internal/turn"
)

//go:embed defaults/qrrace.yaml
var defaultYAML []byte

// Default returns the default session configuration: a 640x480 camera frame
// in 64px cells with a row of hazards above the start cell.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:    640,
			Height:   480,
			CellSize: 64,
			Hazards:  []grid.Coord{grid.C(2, 5), grid.C(3, 5), grid.C(4, 5)},
		},
		Capture: CaptureConfig{StableFrames: stability.DefaultThreshold},
		Turn:    TurnConfig{StepSeconds: turn.DefaultStepInterval.Seconds()},
		Camera:  CameraConfig{FPS: 30},
	}
}
