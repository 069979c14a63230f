package cards

import (
	"sort"
	"strings"

	"github.com/vovakirdan/qr-race/internal/grid"
)

// Verdict explains the result of extracting a sequence from a hand.
type Verdict uint8

const (
	VerdictOK      Verdict = iota // start first, end last
	VerdictEmpty                  // no cards for this player
	VerdictNoStart                // first card is not start
	VerdictNoEnd                  // last card is not end
)

// String returns a short human-readable reason.
func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictEmpty:
		return "no cards"
	case VerdictNoStart:
		return "start is not the first card"
	case VerdictNoEnd:
		return "end is not the last card"
	default:
		return "unknown"
	}
}

// Sequence is the ordered list of moves bracketed by start and end.
type Sequence []grid.Direction

// String renders the sequence as "up, right".
func (s Sequence) String() string {
	if len(s) == 0 {
		return "(stay)"
	}
	words := make([]string, len(s))
	for i, d := range s {
		words[i] = d.String()
	}
	return strings.Join(words, ", ")
}

// Inspect extracts the sequence from one player's tokens, which must already
// be in left-to-right order, and reports why extraction failed if it did.
func Inspect(tokens []Token) (Sequence, Verdict) {
	if len(tokens) == 0 {
		return nil, VerdictEmpty
	}
	if tokens[0].Command != CmdStart {
		return nil, VerdictNoStart
	}
	if len(tokens) < 2 || tokens[len(tokens)-1].Command != CmdEnd {
		return nil, VerdictNoEnd
	}

	seq := make(Sequence, 0, len(tokens)-2)
	for _, tok := range tokens[1 : len(tokens)-1] {
		if d, ok := tok.Command.Direction(); ok {
			seq = append(seq, d)
		}
	}
	return seq, VerdictOK
}

// Extract returns the sequence from one player's ordered tokens.
// An empty sequence with true means "start, end" with nothing between.
func Extract(tokens []Token) (Sequence, bool) {
	seq, v := Inspect(tokens)
	return seq, v == VerdictOK
}

// CardSet is the order-insensitive set of card texts one player shows in a frame.
// It is kept sorted and deduplicated so it can be compared cheaply.
type CardSet []string

// NewCardSet builds a CardSet from texts in any order.
func NewCardSet(texts ...string) CardSet {
	set := make(CardSet, 0, len(texts))
	seen := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		set = append(set, t)
	}
	sort.Strings(set)
	return set
}

// Equal reports whether both sets hold the same texts.
func (s CardSet) Equal(other CardSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Hand is everything one player shows in a single frame.
type Hand struct {
	Player Player
	Cards  CardSet // Raw texts carrying this player's prefix, valid or not
	Tokens []Token // Recognized cards, left to right
}

// Sequence extracts the hand's sequence.
func (h Hand) Sequence() (Sequence, Verdict) {
	return Inspect(h.Tokens)
}

// Split groups a frame's detections by player. Tokens are ordered by their
// horizontal position; ties keep detection order.
func Split(detections []Detection) [2]Hand {
	hands := [2]Hand{{Player: Player1}, {Player: Player2}}
	var raws [2][]string

	for _, det := range detections {
		raw := Clean(det.Text)
		for _, p := range Players {
			if strings.HasPrefix(raw, p.String()+"-") {
				raws[p.Index()] = append(raws[p.Index()], raw)
			}
		}

		tok, ok := Normalize(raw, det.X)
		if !ok {
			continue
		}
		h := &hands[tok.Player.Index()]
		h.Tokens = append(h.Tokens, tok)
	}

	for i := range hands {
		hands[i].Cards = NewCardSet(raws[i]...)
		sort.SliceStable(hands[i].Tokens, func(a, b int) bool {
			return hands[i].Tokens[a].OrderHint < hands[i].Tokens[b].OrderHint
		})
	}
	return hands
}
