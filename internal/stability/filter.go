// Package stability debounces per-frame card detections.
//
// Camera detection flickers: a card is missed for a frame, a partially
// covered code decodes on one frame and not the next. A hand is only acted on
// once the same set of cards has been seen for a number of consecutive frames
// and, on such a frame, its cards form a valid start...end sequence.
package stability

import "github.com/vovakirdan/qr-race/internal/cards"

// DefaultThreshold is the number of identical frames required before a hand
// is trusted.
const DefaultThreshold = 5

// Result describes what one observed frame did to the filter.
type Result struct {
	Count    int            // Consecutive frames the current card set has been seen
	Stable   bool           // Count has reached the threshold
	Changed  bool           // The set just became stable and differs from the last stable set
	Released bool           // Sequence is being handed out on this frame
	Sequence cards.Sequence // Valid only when Released is true
}

// Filter tracks one player's card set across frames.
// The zero value is not usable; create filters with New.
type Filter struct {
	threshold int

	last     cards.CardSet
	count    int
	released bool // The current run already released its sequence

	announced    cards.CardSet
	hasAnnounced bool
}

// New creates a filter that needs threshold identical frames. Values below 1
// are raised to 1.
func New(threshold int) *Filter {
	return &Filter{threshold: max(threshold, 1)}
}

// Threshold returns the number of frames required for stability.
func (f *Filter) Threshold() int {
	return f.threshold
}

// Observe feeds the player's hand for the current frame.
//
// A run of identical card sets releases its sequence at most once: on the
// first frame at or past the threshold whose ordered cards validate. Any
// change to the set starts a new run.
func (f *Filter) Observe(h cards.Hand) Result {
	if h.Cards.Equal(f.last) {
		f.count++
	} else {
		f.last = append(cards.CardSet(nil), h.Cards...)
		f.count = 1
		f.released = false
	}

	res := Result{
		Count:  f.count,
		Stable: f.count >= f.threshold,
	}
	if !res.Stable {
		return res
	}

	if f.count == f.threshold && (!f.hasAnnounced || !f.last.Equal(f.announced)) {
		f.announced = f.last
		f.hasAnnounced = true
		res.Changed = true
	}

	if !f.released {
		if seq, v := h.Sequence(); v == cards.VerdictOK {
			f.released = true
			res.Released = true
			res.Sequence = seq
		}
	}
	return res
}

// Stable returns the most recent card set that reached the threshold.
func (f *Filter) Stable() (cards.CardSet, bool) {
	return f.announced, f.hasAnnounced
}

// Reset forgets all history.
func (f *Filter) Reset() {
	*f = Filter{threshold: f.threshold}
}
