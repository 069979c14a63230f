package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/qr-race/internal/core"
	"github.com/vovakirdan/qr-race/internal/feed"
	"github.com/vovakirdan/qr-race/internal/platform/tui"
)

var (
	flagFeed     string
	flagDropRate float64
	flagSeed     int64
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a session in the terminal.

Without --feed the keyboard is the camera: each player builds a row of
cards on a simulated table, and --drop-rate makes the simulated decoder
miss cards now and then.

Controls:
  Tab         - Switch player
  [ / ]       - Place start / end card
  Arrows/hjkl - Place a direction card
  Backspace   - Take back the last card
  C           - Clear the player's cards
  R           - New game (after the game ends)
  Ctrl+S      - Save a text screenshot
  ?           - Show all keys
  Q/Ctrl+C    - Quit

Examples:
  qrrace play
  qrrace play --drop-rate 0.2 --seed 7
  qrrace play --feed ./feeds/race.yaml --log-file qrrace.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFeed, "feed", "", "Play a recorded feed instead of the keyboard table")
	playCmd.Flags().Float64Var(&flagDropRate, "drop-rate", 0, "Chance (0..1) that the simulated decoder misses a card")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed for decode misses (0 = random based on time)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Append session logs to this file")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := playSession(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playSession runs one interactive session and returns the first error.
func playSession(cmd *cobra.Command) error {
	logOut := io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut)

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}
	world, err := cfg.World()
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		World:    world,
		Settings: cfg.TurnSettings(),
		Logger:   logger,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			FrameHz: cfg.Camera.FPS,
		},
	}

	if flagFeed != "" {
		script, err := feed.LoadScript(flagFeed)
		if err != nil {
			return err
		}
		opts.Source = feed.NewScriptSource(script)
	} else {
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		table := feed.NewTableSource(cfg.Board.Width, flagDropRate, seed)
		opts.Source = table
		opts.Table = table
	}
	defer opts.Source.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, opts)
}
