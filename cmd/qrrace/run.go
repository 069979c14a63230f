package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/qr-race/internal/feed"
	"github.com/vovakirdan/qr-race/internal/platform/headless"
	"github.com/vovakirdan/qr-race/internal/turn"
)

var flagMaxFrames int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a recorded feed headlessly",
	Long: `Play a recorded feed without a terminal UI and print the outcome.

Frames are stamped on a simulated clock (frame i at i/fps seconds), so a
feed always plays out the same way. The feed's own fps is used unless
--fps is given. Session events are logged to stderr.

Exits non-zero if the feed ends before the game does.

Examples:
  qrrace run --feed ./feeds/race.yaml
  qrrace run --feed ./feeds/race.yaml --stable-frames 3 --step 0.5`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagFeed, "feed", "", "Feed script to play")
	runCmd.Flags().IntVar(&flagMaxFrames, "max-frames", headless.DefaultMaxFrames, "Stop after this many frames")
	//nolint:errcheck // Flag exists
	runCmd.MarkFlagRequired("feed")
}

func runRun(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	world, err := cfg.World()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	script, err := feed.LoadScript(flagFeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fps := cfg.Camera.FPS
	if script.FPS > 0 && !cmd.Flags().Changed("fps") {
		fps = script.FPS
	}

	session := uuid.NewString()
	sessionLog := logger.With("session", session)
	sessionLog.Info("session started", "feed", flagFeed, "frames", script.Len(), "fps", fps)

	sched := turn.New(world, cfg.TurnSettings(), turn.WithLogger(sessionLog))
	src := feed.NewScriptSource(script)
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := headless.Run(ctx, sched, src, fps, flagMaxFrames, time.Time{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Duration(res.Frames) * time.Second / time.Duration(fps)
	st := res.Snapshot.State
	switch {
	case res.Finished:
		fmt.Printf("%s (frame %d, %.1fs)\n", st.Outcome.Message(), res.Frames, elapsed.Seconds())
		for i, pr := range st.Players {
			fmt.Printf("  player %d: %s, plan %s\n", i+1, playerSummary(pr), pr.Plan)
		}
	case res.Stalled:
		fmt.Fprintf(os.Stderr, "Error: feed ended after %d frames while waiting for sequences\n", res.Frames)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: no outcome after %d frames (%s)\n", res.Frames, st.Phase)
		os.Exit(1)
	}
}

func playerSummary(pr turn.PlayerRuntime) string {
	if pr.Dead {
		return "dead at " + pr.Position.String()
	}
	return "at " + pr.Position.String()
}
