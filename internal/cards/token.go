// Package cards turns raw QR detections into player command sequences.
//
// A card carries the text "<player>-<command>". Detections that do not match
// that shape are not errors: stray codes and decode noise are dropped here so
// the rest of the engine only ever sees well-formed tokens.
package cards

import (
	"sort"
	"strings"

	"github.com/vovakirdan/qr-race/internal/grid"
)

// Player identifies one of the two seats.
type Player uint8

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Players lists both seats in turn order.
var Players = [2]Player{Player1, Player2}

// String returns the player number as printed on the cards.
func (p Player) String() string {
	switch p {
	case Player1:
		return "1"
	case Player2:
		return "2"
	default:
		return "?"
	}
}

// Index returns 0 for Player1 and 1 for Player2.
func (p Player) Index() int {
	return int(p) - 1
}

// Valid reports whether p is one of the two seats.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

// Command is what a single card asks for.
type Command uint8

const (
	CmdStart Command = iota
	CmdEnd
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
)

// String returns the canonical command word.
func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdEnd:
		return "end"
	case CmdUp:
		return "up"
	case CmdDown:
		return "down"
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	default:
		return "unknown"
	}
}

// Direction returns the movement for directional commands.
// Start and end cards report false.
func (c Command) Direction() (grid.Direction, bool) {
	switch c {
	case CmdUp:
		return grid.DirUp, true
	case CmdDown:
		return grid.DirDown, true
	case CmdLeft:
		return grid.DirLeft, true
	case CmdRight:
		return grid.DirRight, true
	default:
		return 0, false
	}
}

// commandWords maps every accepted word, canonical or printed alias, to its command.
// The printed card sets use the Portuguese words.
var commandWords = map[string]Command{
	"start":    CmdStart,
	"end":      CmdEnd,
	"up":       CmdUp,
	"down":     CmdDown,
	"left":     CmdLeft,
	"right":    CmdRight,
	"inicio":   CmdStart,
	"fim":      CmdEnd,
	"cima":     CmdUp,
	"baixo":    CmdDown,
	"esquerda": CmdLeft,
	"direita":  CmdRight,
}

// Detection is one decoded QR code in a camera frame.
// X is the horizontal screen position used for left-to-right ordering.
type Detection struct {
	Text string  `yaml:"text"`
	X    float64 `yaml:"x"`
}

// Token is a recognized card.
type Token struct {
	Player    Player
	Command   Command
	OrderHint float64 // Horizontal position; lower values were laid out first
	Raw       string  // Cleaned card text as detected
}

// Clean trims and lower-cases raw decoder output.
func Clean(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Normalize parses a detection into a Token. Anything that is not exactly
// "<1|2>-<command>" yields false.
func Normalize(text string, orderHint float64) (Token, bool) {
	raw := Clean(text)

	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return Token{}, false
	}

	var player Player
	switch parts[0] {
	case "1":
		player = Player1
	case "2":
		player = Player2
	default:
		return Token{}, false
	}

	cmd, ok := commandWords[parts[1]]
	if !ok {
		return Token{}, false
	}

	return Token{
		Player:    player,
		Command:   cmd,
		OrderHint: orderHint,
		Raw:       raw,
	}, true
}

// Card describes one printable card for a player.
type Card struct {
	Player  Player
	Command Command
	Text    string   // Canonical text, e.g. "1-up"
	Aliases []string // Other texts decoding to the same card, e.g. "1-cima"
}

// Text returns the canonical printed text of a card, e.g. "2-left".
func Text(p Player, cmd Command) string {
	return p.String() + "-" + cmd.String()
}

// Catalogue lists every valid card for both players in print order.
func Catalogue() []Card {
	order := []Command{CmdStart, CmdUp, CmdDown, CmdRight, CmdLeft, CmdEnd}

	var out []Card
	for _, p := range Players {
		for _, cmd := range order {
			card := Card{
				Player:  p,
				Command: cmd,
				Text:    Text(p, cmd),
			}
			for word, c := range commandWords {
				if c == cmd && word != cmd.String() {
					card.Aliases = append(card.Aliases, p.String()+"-"+word)
				}
			}
			sort.Strings(card.Aliases)
			out = append(out, card)
		}
	}
	return out
}
