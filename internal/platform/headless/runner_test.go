package headless

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/feed"
	"github.com/vovakirdan/qr-race/internal/grid"
	"github.com/vovakirdan/qr-race/internal/turn"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newScheduler(t *testing.T) *turn.Scheduler {
	t.Helper()
	w, err := grid.New(10, 7, []grid.Coord{grid.C(2, 5), grid.C(3, 5), grid.C(4, 5)}, grid.C(9, 0))
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}
	return turn.New(w, turn.Settings{StableFrames: 5, StepInterval: 800 * time.Millisecond, Start: grid.C(0, 6)})
}

func scriptSource(t *testing.T, path string) *feed.ScriptSource {
	t.Helper()
	s, err := feed.LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	return feed.NewScriptSource(s)
}

func TestRunScripts(t *testing.T) {
	tests := []struct {
		script   string
		expected turn.Outcome
	}{
		{"../../feed/testdata/player1-wins.yaml", turn.OutcomePlayer1Won},
		{"../../feed/testdata/both-die.yaml", turn.OutcomeBothDied},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			res, err := Run(context.Background(), newScheduler(t), scriptSource(t, tt.script), 30, 0, t0)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !res.Finished {
				t.Fatalf("Run() did not finish after %d frames", res.Frames)
			}
			if got := res.Snapshot.State.Outcome; got != tt.expected {
				t.Errorf("Outcome = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRunPlayer1WinsLeavesPlayer2Home(t *testing.T) {
	res, err := Run(context.Background(), newScheduler(t), scriptSource(t, "../../feed/testdata/player1-wins.yaml"), 30, 0, t0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := res.Snapshot.State.Players[1].Position; got != grid.C(0, 6) {
		t.Errorf("player 2 at %v, expected (0,6)", got)
	}
}

func TestRunStallsOnMalformedHand(t *testing.T) {
	src := feed.NewScriptSource(&feed.Script{Frames: []feed.ScriptFrame{{
		Repeat: 20,
		Cards: []cards.Detection{
			{Text: "1-cima", X: 1},
			{Text: "1-start", X: 2},
			{Text: "1-fim", X: 3},
			{Text: "2-start", X: 400},
			{Text: "2-end", X: 410},
		},
	}}})

	res, err := Run(context.Background(), newScheduler(t), src, 30, 0, t0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Stalled || res.Finished {
		t.Errorf("Run() = %+v, expected stalled", res)
	}
	if res.Frames != 20 {
		t.Errorf("Frames = %d, expected 20", res.Frames)
	}
	st := res.Snapshot.State
	if st.Phase != turn.PhaseAwaitingSequences || st.Players[0].Captured || !st.Players[1].Captured {
		t.Errorf("state = %+v, expected only player 2 captured", st)
	}
}

func TestRunMaxFrames(t *testing.T) {
	table := feed.NewTableSource(0, 0, 1)
	res, err := Run(context.Background(), newScheduler(t), table, 30, 12, t0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Frames != 12 || res.Finished || res.Stalled {
		t.Errorf("Run() = %+v, expected 12 frames and still running", res)
	}
}

func TestRunSourceError(t *testing.T) {
	table := feed.NewTableSource(0, 0, 1)
	table.Close()

	_, err := Run(context.Background(), newScheduler(t), table, 30, 5, t0)
	if !errors.Is(err, feed.ErrClosed) {
		t.Errorf("Run() error = %v, expected ErrClosed", err)
	}
}

func TestInspect(t *testing.T) {
	rep := Inspect(3, feed.Frame{Detections: []cards.Detection{
		{Text: "1-fim", X: 90},
		{Text: "1-direita", X: 60},
		{Text: "1-start", X: 10},
		{Text: "1-cima", X: 30},
		{Text: "2-cima", X: 300},
		{Text: "2-start", X: 320},
		{Text: "hello", X: 500},
		{Text: "2-jump", X: 510},
	}})

	if rep.Index != 3 {
		t.Errorf("Index = %d, expected 3", rep.Index)
	}
	p1 := rep.Hands[0]
	if p1.Verdict != cards.VerdictOK {
		t.Errorf("player 1 verdict = %v", p1.Verdict)
	}
	if !reflect.DeepEqual(p1.Tokens, []string{"1-start", "1-up", "1-right", "1-end"}) {
		t.Errorf("player 1 tokens = %v", p1.Tokens)
	}
	if !reflect.DeepEqual(p1.Sequence, cards.Sequence{grid.DirUp, grid.DirRight}) {
		t.Errorf("player 1 sequence = %v", p1.Sequence)
	}
	if p2 := rep.Hands[1]; p2.Verdict != cards.VerdictNoStart {
		t.Errorf("player 2 verdict = %v, expected %v", p2.Verdict, cards.VerdictNoStart)
	}
	if !reflect.DeepEqual(rep.Ignored, []string{"hello", "2-jump"}) {
		t.Errorf("Ignored = %v", rep.Ignored)
	}
}

func TestCheck(t *testing.T) {
	reports, err := Check(context.Background(), scriptSource(t, "../../feed/testdata/player1-wins.yaml"), 0)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(reports) != 13 {
		t.Fatalf("got %d reports, expected 13", len(reports))
	}
	if v := reports[0].Hands[0].Verdict; v != cards.VerdictNoEnd {
		t.Errorf("frame 0 verdict = %v, expected %v", v, cards.VerdictNoEnd)
	}
	last := reports[12]
	if v := last.Hands[0].Verdict; v != cards.VerdictOK || len(last.Hands[0].Sequence) != 15 {
		t.Errorf("last frame player 1 = %v, %v", v, last.Hands[0].Sequence)
	}
	if v := last.Hands[1].Verdict; v != cards.VerdictOK || last.Hands[1].Sequence.String() != "right" {
		t.Errorf("last frame player 2 = %v, %v", v, last.Hands[1].Sequence)
	}
}
