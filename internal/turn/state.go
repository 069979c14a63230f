// Package turn runs a two-player session: it captures each player's card
// sequence, then plays player 1's whole path followed by player 2's, one step
// per movement interval, and settles the outcome.
package turn

import (
	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/grid"
)

// Phase is the scheduler's position in the session.
// Phases only move forward: Awaiting -> Player1 -> Player2 -> Finished.
type Phase uint8

const (
	PhaseAwaitingSequences Phase = iota
	PhaseExecutingPlayer1
	PhaseExecutingPlayer2
	PhaseFinished
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSequences:
		return "awaiting sequences"
	case PhaseExecutingPlayer1:
		return "executing player 1"
	case PhaseExecutingPlayer2:
		return "executing player 2"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Mover returns the player whose queue is being executed, if any.
func (p Phase) Mover() (cards.Player, bool) {
	switch p {
	case PhaseExecutingPlayer1:
		return cards.Player1, true
	case PhaseExecutingPlayer2:
		return cards.Player2, true
	default:
		return 0, false
	}
}

// Outcome is how a finished session ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota // Still running, or nobody won or died
	OutcomePlayer1Won
	OutcomePlayer2Won
	OutcomePlayer1Died
	OutcomePlayer2Died
	OutcomeBothDied
)

// String returns a short identifier for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomePlayer1Won:
		return "player1_won"
	case OutcomePlayer2Won:
		return "player2_won"
	case OutcomePlayer1Died:
		return "player1_died"
	case OutcomePlayer2Died:
		return "player2_died"
	case OutcomeBothDied:
		return "both_died"
	default:
		return "unknown"
	}
}

// Message returns the end-of-game text shown to the players.
func (o Outcome) Message() string {
	switch o {
	case OutcomePlayer1Won:
		return "Player 1 wins!"
	case OutcomePlayer2Won:
		return "Player 2 wins!"
	case OutcomePlayer1Died:
		return "Player 1 died!"
	case OutcomePlayer2Died:
		return "Player 2 died!"
	case OutcomeBothDied:
		return "Both players died!"
	default:
		return "Nobody reached the goal"
	}
}

// Won reports whether the outcome is a win.
func (o Outcome) Won() bool {
	return o == OutcomePlayer1Won || o == OutcomePlayer2Won
}

func wonBy(p cards.Player) Outcome {
	if p == cards.Player1 {
		return OutcomePlayer1Won
	}
	return OutcomePlayer2Won
}

// PlayerRuntime is one player's state for the session.
type PlayerRuntime struct {
	Position grid.Coord     // Always inside the board
	Dead     bool           // Sticky once set
	Captured bool           // Sequence has been taken for this round
	Plan     cards.Sequence // The captured sequence, kept for display
	Queue    cards.Sequence // Moves still to execute
}

// GameState is the complete session state. One value exists per session and
// only the scheduler's Tick mutates it.
type GameState struct {
	Phase   Phase
	Players [2]PlayerRuntime
	Outcome Outcome
}

// Player returns the runtime for p.
func (s *GameState) Player(p cards.Player) *PlayerRuntime {
	return &s.Players[p.Index()]
}

// Clone returns a deep copy that shares no slices with s.
func (s GameState) Clone() GameState {
	out := s
	for i := range out.Players {
		out.Players[i].Plan = append(cards.Sequence(nil), s.Players[i].Plan...)
		out.Players[i].Queue = append(cards.Sequence(nil), s.Players[i].Queue...)
	}
	return out
}

// HandView is what the capture stage currently sees for one player.
type HandView struct {
	Cards  cards.CardSet // Cards in the latest frame
	Stable cards.CardSet // Last set that held for the full threshold
	Count  int           // Consecutive frames the latest set has been seen
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Frame     uint64
	State     GameState
	Hands     [2]HandView
	Threshold int
}
