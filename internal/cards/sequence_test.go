package cards

import (
	"testing"

	"github.com/vovakirdan/qr-race/internal/grid"
)

// detections lays texts out left to right, 50px apart.
func detections(texts ...string) []Detection {
	out := make([]Detection, len(texts))
	for i, text := range texts {
		out[i] = Detection{Text: text, X: float64(10 + 50*i)}
	}
	return out
}

func tokensFor(t *testing.T, p Player, texts ...string) []Token {
	t.Helper()
	return Split(detections(texts...))[p.Index()].Tokens
}

func equalSeq(a, b Sequence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		expected Sequence
		verdict  Verdict
	}{
		{
			name:     "portuguese hand",
			texts:    []string{"1-start", "1-cima", "1-direita", "1-fim"},
			expected: Sequence{grid.DirUp, grid.DirRight},
			verdict:  VerdictOK,
		},
		{
			name:     "stay put",
			texts:    []string{"1-inicio", "1-fim"},
			expected: Sequence{},
			verdict:  VerdictOK,
		},
		{
			name:     "duplicate brackets inside are ignored",
			texts:    []string{"1-start", "1-start", "1-left", "1-end", "1-down", "1-end"},
			expected: Sequence{grid.DirLeft, grid.DirDown},
			verdict:  VerdictOK,
		},
		{
			name:    "empty",
			texts:   nil,
			verdict: VerdictEmpty,
		},
		{
			name:    "start not first",
			texts:   []string{"1-cima", "1-start", "1-fim"},
			verdict: VerdictNoStart,
		},
		{
			name:    "end not last",
			texts:   []string{"1-start", "1-fim", "1-cima"},
			verdict: VerdictNoEnd,
		},
		{
			name:    "start only",
			texts:   []string{"1-start"},
			verdict: VerdictNoEnd,
		},
		{
			name:    "end only",
			texts:   []string{"1-end"},
			verdict: VerdictNoStart,
		},
		{
			name:     "foreign cards between are dropped upstream",
			texts:    []string{"1-start", "1-jump", "hello", "1-up", "1-end"},
			expected: Sequence{grid.DirUp},
			verdict:  VerdictOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seq, verdict := Inspect(tokensFor(t, Player1, tc.texts...))
			if verdict != tc.verdict {
				t.Fatalf("Inspect() verdict = %v, expected %v", verdict, tc.verdict)
			}
			if verdict == VerdictOK && !equalSeq(seq, tc.expected) {
				t.Errorf("Inspect() = %v, expected %v", seq, tc.expected)
			}
			if verdict != VerdictOK && seq != nil {
				t.Errorf("Inspect() returned %v for a rejected hand", seq)
			}

			_, ok := Extract(tokensFor(t, Player1, tc.texts...))
			if ok != (tc.verdict == VerdictOK) {
				t.Errorf("Extract() ok = %v, expected %v", ok, tc.verdict == VerdictOK)
			}
		})
	}
}

func TestExtractRejectsAnyBadBracket(t *testing.T) {
	middles := [][]Command{
		nil,
		{CmdUp},
		{CmdStart, CmdEnd},
		{CmdLeft, CmdRight, CmdDown},
	}
	bad := []Command{CmdEnd, CmdUp, CmdDown, CmdLeft, CmdRight}

	for _, mid := range middles {
		for _, first := range bad {
			toks := []Token{{Player: Player1, Command: first}}
			for _, c := range mid {
				toks = append(toks, Token{Player: Player1, Command: c})
			}
			toks = append(toks, Token{Player: Player1, Command: CmdEnd})
			if _, ok := Extract(toks); ok {
				t.Errorf("Extract() accepted hand starting with %v: %v", first, mid)
			}
		}
		for _, last := range []Command{CmdStart, CmdUp, CmdDown, CmdLeft, CmdRight} {
			toks := []Token{{Player: Player1, Command: CmdStart}}
			for _, c := range mid {
				toks = append(toks, Token{Player: Player1, Command: c})
			}
			toks = append(toks, Token{Player: Player1, Command: last})
			if _, ok := Extract(toks); ok {
				t.Errorf("Extract() accepted hand ending with %v: %v", last, mid)
			}
		}
	}
}

func TestSplitOrdersByPosition(t *testing.T) {
	frame := []Detection{
		{Text: "1-fim", X: 300},
		{Text: "2-start", X: 400},
		{Text: "1-direita", X: 200},
		{Text: "2-end", X: 600},
		{Text: "1-start", X: 10},
		{Text: "1-cima", X: 120},
		{Text: "garbage", X: 50},
	}

	hands := Split(frame)

	seq, verdict := hands[0].Sequence()
	if verdict != VerdictOK || !equalSeq(seq, Sequence{grid.DirUp, grid.DirRight}) {
		t.Errorf("player 1 = %v (%v), expected [up right]", seq, verdict)
	}
	seq, verdict = hands[1].Sequence()
	if verdict != VerdictOK || len(seq) != 0 {
		t.Errorf("player 2 = %v (%v), expected empty ok sequence", seq, verdict)
	}
	if hands[0].Player != Player1 || hands[1].Player != Player2 {
		t.Errorf("hands players = %v, %v", hands[0].Player, hands[1].Player)
	}
}

func TestSplitCardSets(t *testing.T) {
	hands := Split(detections("1-start", "1-JUMP", "2-up", "1-start", "x-1-up"))

	expected := NewCardSet("1-jump", "1-start")
	if !hands[0].Cards.Equal(expected) {
		t.Errorf("player 1 cards = %v, expected %v", hands[0].Cards, expected)
	}
	if !hands[1].Cards.Equal(NewCardSet("2-up")) {
		t.Errorf("player 2 cards = %v, expected [2-up]", hands[1].Cards)
	}
	if len(hands[0].Tokens) != 2 {
		t.Errorf("player 1 tokens = %d, expected 2", len(hands[0].Tokens))
	}
}

func TestCardSetEqual(t *testing.T) {
	a := NewCardSet("1-fim", "1-start", "1-cima")
	b := NewCardSet("1-cima", "1-fim", "1-start", "1-cima")

	if !a.Equal(b) {
		t.Errorf("%v should equal %v", a, b)
	}
	if a.Equal(NewCardSet("1-start", "1-fim")) {
		t.Error("sets of different size should differ")
	}
	if !NewCardSet().Equal(nil) {
		t.Error("empty set should equal nil set")
	}
}
