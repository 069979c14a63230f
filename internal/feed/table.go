package feed

import (
	"context"
	"math/rand"
	"sync"

	"github.com/vovakirdan/qr-race/internal/cards"
)

// DefaultTableWidth is the virtual camera frame width in pixels.
const DefaultTableWidth = 640

// TableSource is a simulated card table: players place and remove cards and
// every frame reports what a camera would decode. Player 1 lays cards on the
// left half of the frame and player 2 on the right half.
//
// Detections come back in random order, and with a non-zero drop rate each
// card is independently missed, like a blurred or occluded code.
type TableSource struct {
	mu       sync.Mutex
	hands    [2][]string
	width    float64
	dropRate float64
	rng      *rand.Rand
	closed   bool
}

// NewTableSource creates an empty table. dropRate is clamped to [0, 1].
func NewTableSource(width int, dropRate float64, seed int64) *TableSource {
	if width <= 0 {
		width = DefaultTableWidth
	}
	return &TableSource{
		width:    float64(width),
		dropRate: min(max(dropRate, 0), 1),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Place adds a card to the right end of a player's row.
func (t *TableSource) Place(p cards.Player, cmd cards.Command) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hands[p.Index()] = append(t.hands[p.Index()], cards.Text(p, cmd))
}

// PlaceText adds an arbitrary card text, valid or not, to a player's row.
func (t *TableSource) PlaceText(p cards.Player, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hands[p.Index()] = append(t.hands[p.Index()], text)
}

// Take removes the rightmost card of a player's row.
func (t *TableSource) Take(p cards.Player) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.hands[p.Index()]
	if len(h) == 0 {
		return "", false
	}
	last := h[len(h)-1]
	t.hands[p.Index()] = h[:len(h)-1]
	return last, true
}

// Clear removes all of a player's cards.
func (t *TableSource) Clear(p cards.Player) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hands[p.Index()] = nil
}

// Hand returns a copy of a player's row, left to right.
func (t *TableSource) Hand(p cards.Player) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.hands[p.Index()]...)
}

// Next returns what the camera sees this frame.
func (t *TableSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return Frame{}, ErrClosed
	}

	half := t.width / 2
	var dets []cards.Detection
	for i, hand := range t.hands {
		if len(hand) == 0 {
			continue
		}
		slot := half / float64(len(hand))
		for j, text := range hand {
			if t.dropRate > 0 && t.rng.Float64() < t.dropRate {
				continue
			}
			dets = append(dets, cards.Detection{
				Text: text,
				X:    float64(i)*half + (float64(j)+0.5)*slot,
			})
		}
	}
	t.rng.Shuffle(len(dets), func(i, j int) { dets[i], dets[j] = dets[j], dets[i] })

	return Frame{Detections: dets}, nil
}

// Close tears the table down.
func (t *TableSource) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}
