// Package headless runs sessions and feed checks without a terminal UI.
// Frames are timestamped on a simulated clock, so a recorded feed plays the
// same way every time regardless of how fast the machine is.
package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/qr-race/internal/feed"
	"github.com/vovakirdan/qr-race/internal/turn"
)

// DefaultMaxFrames bounds a headless run.
const DefaultMaxFrames = 10000

// Result is how a headless run ended.
type Result struct {
	Snapshot turn.Snapshot
	Frames   int  // Frames consumed from the source
	Finished bool // The session reached its outcome
	Stalled  bool // The feed ran out before both sequences were captured
}

// exhauster is implemented by sources with a finite script.
type exhauster interface {
	Exhausted() bool
}

// Run feeds frames from src into sched until the session finishes, the feed
// runs out while still waiting for sequences, or maxFrames is reached.
// Frame i is stamped start + i/fps.
func Run(ctx context.Context, sched *turn.Scheduler, src feed.Source, fps, maxFrames int, start time.Time) (Result, error) {
	if fps <= 0 {
		fps = 30
	}
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	frameStep := time.Second / time.Duration(fps)

	res := Result{Snapshot: sched.Snapshot()}
	fin, _ := src.(exhauster)

	for i := 0; i < maxFrames; i++ {
		if fin != nil && fin.Exhausted() && res.Snapshot.State.Phase == turn.PhaseAwaitingSequences {
			res.Stalled = true
			return res, nil
		}

		frame, err := src.Next(ctx)
		if err != nil {
			return res, fmt.Errorf("headless: frame %d: %w", i, err)
		}

		res.Snapshot = sched.Tick(frame.Detections, start.Add(time.Duration(i)*frameStep))
		res.Frames = i + 1

		if res.Snapshot.State.Phase == turn.PhaseFinished {
			res.Finished = true
			return res, nil
		}
	}
	return res, nil
}
