// Package feed provides detection sources: the per-frame stream of decoded
// card texts and their horizontal positions that drives a session.
package feed

import (
	"context"
	"errors"

	"github.com/vovakirdan/qr-race/internal/cards"
)

// ErrClosed is returned by Next after the source has been closed.
var ErrClosed = errors.New("feed: source closed")

// Frame is everything decoded from one camera frame.
type Frame struct {
	Detections []cards.Detection
}

// Source yields frames. Next never blocks longer than it takes to produce one
// frame; pacing is the caller's job.
type Source interface {
	Next(ctx context.Context) (Frame, error)
	Close() error
}
