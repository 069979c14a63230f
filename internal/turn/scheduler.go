package turn

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/grid"
	"github.com/vovakirdan/qr-race/internal/stability"
)

// DefaultStepInterval is the pause between two movement steps.
const DefaultStepInterval = 800 * time.Millisecond

// Settings are the per-session tuning values.
type Settings struct {
	StableFrames int           // Identical frames before a hand is trusted
	StepInterval time.Duration // Minimum time between two steps
	Start        grid.Coord    // Starting cell for both players
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger for informational session events.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler owns the GameState and advances it once per camera frame.
// It is not safe for concurrent use; the frame loop is its only caller.
type Scheduler struct {
	world    *grid.World
	settings Settings
	logger   *log.Logger

	state    GameState
	filters  [2]*stability.Filter
	hands    [2]HandView
	frame    uint64
	lastMove time.Time
}

// New creates a scheduler at the start of a session. Both players are placed
// on the start cell, clamped to the board.
func New(world *grid.World, settings Settings, opts ...Option) *Scheduler {
	if settings.StepInterval < 0 {
		settings.StepInterval = 0
	}

	s := &Scheduler{
		world:    world,
		settings: settings,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	start := world.Clamp(settings.Start)
	for i := range s.state.Players {
		s.state.Players[i].Position = start
		s.filters[i] = stability.New(settings.StableFrames)
	}
	return s
}

// World returns the board the session is played on.
func (s *Scheduler) World() *grid.World {
	return s.world
}

// State returns a copy of the current game state.
func (s *Scheduler) State() GameState {
	return s.state.Clone()
}

// Snapshot returns a copy of everything a renderer needs.
func (s *Scheduler) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:     s.frame,
		State:     s.state.Clone(),
		Threshold: s.filters[0].Threshold(),
	}
	for i, h := range s.hands {
		snap.Hands[i] = HandView{
			Cards:  append(cards.CardSet(nil), h.Cards...),
			Stable: append(cards.CardSet(nil), h.Stable...),
			Count:  h.Count,
		}
	}
	return snap
}

// Tick processes one camera frame observed at now.
//
// While awaiting sequences the frame's detections feed the capture stage;
// during execution they are ignored and at most one step is taken if the
// movement interval has elapsed since the previous step.
func (s *Scheduler) Tick(detections []cards.Detection, now time.Time) Snapshot {
	s.frame++

	switch s.state.Phase {
	case PhaseAwaitingSequences:
		s.capture(detections, now)
	case PhaseExecutingPlayer1, PhaseExecutingPlayer2:
		s.execute(now)
	case PhaseFinished:
		// Terminal
	}

	return s.Snapshot()
}

// capture runs the debounce stage for both players and starts execution once
// both sequences are captured.
func (s *Scheduler) capture(detections []cards.Detection, now time.Time) {
	hands := cards.Split(detections)

	for _, p := range cards.Players {
		i := p.Index()
		res := s.filters[i].Observe(hands[i])

		s.hands[i].Cards = hands[i].Cards
		s.hands[i].Count = res.Count
		if res.Changed {
			s.hands[i].Stable = hands[i].Cards
			s.logger.Info("cards on table", "player", p, "cards", describe(hands[i].Cards))
		}

		pr := s.state.Player(p)
		if res.Released && !pr.Captured {
			pr.Plan = append(cards.Sequence(nil), res.Sequence...)
			pr.Queue = append(cards.Sequence(nil), res.Sequence...)
			pr.Captured = true
			s.logger.Info("sequence captured", "player", p, "moves", res.Sequence.String())
		}
	}

	if s.state.Players[0].Captured && s.state.Players[1].Captured {
		s.setPhase(PhaseExecutingPlayer1)
		s.lastMove = now
		// Someone may be standing on a hazard before moving at all.
		s.evaluate()
	}
}

// execute advances the current mover by at most one step.
func (s *Scheduler) execute(now time.Time) {
	mover, _ := s.state.Phase.Mover()
	pr := s.state.Player(mover)

	if pr.Dead || len(pr.Queue) == 0 {
		s.endTurn(mover)
		return
	}
	if now.Sub(s.lastMove) < s.settings.StepInterval {
		return
	}

	dir := pr.Queue[0]
	pr.Queue = pr.Queue[1:]
	from := pr.Position
	pr.Position = s.world.ApplyStep(from, dir)
	s.lastMove = now
	s.logger.Info("player moved", "player", mover, "dir", dir, "from", from, "to", pr.Position)

	s.evaluate()
	if s.state.Phase == PhaseFinished {
		return
	}

	if pr.Dead {
		if len(pr.Queue) > 0 {
			s.logger.Info("queue discarded", "player", mover, "moves", pr.Queue.String())
			pr.Queue = nil
		}
		s.endTurn(mover)
		return
	}
	if len(pr.Queue) == 0 {
		s.endTurn(mover)
	}
}

// evaluate applies hazard and goal rules to both players.
//
// Hazards mark players dead. A player on the goal wins immediately, checked
// before deaths are settled, so a goal that is also a hazard still wins.
// Deaths only end the session here when nobody is left alive; otherwise the
// outcome is settled when the last turn ends.
func (s *Scheduler) evaluate() {
	for _, p := range cards.Players {
		pr := s.state.Player(p)
		if !pr.Dead && s.world.IsHazard(pr.Position) {
			pr.Dead = true
			s.logger.Info("player died", "player", p, "at", pr.Position)
		}
	}

	for _, p := range cards.Players {
		if s.world.IsGoal(s.state.Player(p).Position) {
			s.finish(wonBy(p))
			return
		}
	}

	if s.state.Players[0].Dead && s.state.Players[1].Dead {
		s.finish(OutcomeBothDied)
	}
}

// endTurn hands over to player 2, or settles the session after player 2.
func (s *Scheduler) endTurn(p cards.Player) {
	if p == cards.Player1 {
		s.setPhase(PhaseExecutingPlayer2)
		return
	}

	p1, p2 := s.state.Players[0].Dead, s.state.Players[1].Dead
	switch {
	case p1 && p2:
		s.finish(OutcomeBothDied)
	case p1:
		s.finish(OutcomePlayer1Died)
	case p2:
		s.finish(OutcomePlayer2Died)
	default:
		s.finish(OutcomeNone)
	}
}

func (s *Scheduler) finish(o Outcome) {
	if s.state.Phase == PhaseFinished {
		return
	}
	s.state.Outcome = o
	s.setPhase(PhaseFinished)
	s.logger.Info("game over", "outcome", o, "message", o.Message())
}

func (s *Scheduler) setPhase(p Phase) {
	if s.state.Phase == p {
		return
	}
	s.logger.Info("phase changed", "from", s.state.Phase, "to", p)
	s.state.Phase = p
}

func describe(set cards.CardSet) string {
	if len(set) == 0 {
		return "none"
	}
	out := set[0]
	for _, c := range set[1:] {
		out += ", " + c
	}
	return out
}
