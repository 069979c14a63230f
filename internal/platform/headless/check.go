package headless

import (
	"context"
	"fmt"

	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/feed"
)

// HandReport is what one player's cards in one frame decode to.
type HandReport struct {
	Player   cards.Player
	Cards    cards.CardSet // Raw texts attributed to the player
	Tokens   []string      // Recognized tokens, left to right
	Sequence cards.Sequence
	Verdict  cards.Verdict
}

// FrameReport covers both players for one frame.
type FrameReport struct {
	Index int
	Hands [2]HandReport
	// Ignored lists texts that decode to no token.
	Ignored []string
}

// Inspect decodes one frame without any debouncing.
func Inspect(index int, f feed.Frame) FrameReport {
	rep := FrameReport{Index: index}
	hands := cards.Split(f.Detections)

	for i, h := range hands {
		seq, v := h.Sequence()
		hr := HandReport{
			Player:   cards.Players[i],
			Cards:    h.Cards,
			Sequence: seq,
			Verdict:  v,
		}
		for _, tok := range h.Tokens {
			hr.Tokens = append(hr.Tokens, cards.Text(tok.Player, tok.Command))
		}
		rep.Hands[i] = hr
	}

	for _, d := range f.Detections {
		if _, ok := cards.Normalize(d.Text, d.X); !ok {
			rep.Ignored = append(rep.Ignored, d.Text)
		}
	}
	return rep
}

// Check inspects every frame of a finite source.
func Check(ctx context.Context, src *feed.ScriptSource, maxFrames int) ([]FrameReport, error) {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}

	var out []FrameReport
	for i := 0; i < maxFrames && !src.Exhausted(); i++ {
		frame, err := src.Next(ctx)
		if err != nil {
			return out, fmt.Errorf("headless: frame %d: %w", i, err)
		}
		out = append(out, Inspect(i, frame))
	}
	return out, nil
}
