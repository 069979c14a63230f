// qrrace is a two-player race steered by printed QR cards shown to a camera.
// Each player lays out a path between a start card and an end card; once both
// paths hold steady in front of the camera, player 1 walks theirs, then
// player 2, and the first to reach the goal without falling into a hazard wins.
//
// Usage:
//
//	qrrace play              - Play in the terminal (keyboard card table or --feed)
//	qrrace run --feed <file> - Play a recorded feed headlessly and print the outcome
//	qrrace check --feed <f>  - Show what every frame of a feed decodes to
//	qrrace cards             - List every card text the decoder accepts
//
// Global flags:
//
//	--config <path>       - Session config YAML (default: search ~/.qrrace/configs, ./configs)
//	--stable-frames <n>   - Identical frames before a hand is trusted
//	--step <seconds>      - Seconds between movement steps
//	--fps <rate>          - Camera frames per second
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qr-race/internal/stability"
	"github.com/vovakirdan/qr-race/internal/turn"
)

var (
	// Global flags
	flagConfig       string
	flagStableFrames int
	flagStep         float64
	flagFPS          int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qrrace",
	Short: "QR Race - steer a two-player race with printed cards",
	Long: `QR Race is a turn-based two-player race controlled by cards.

Each player lays out cards reading <player>-<command>, for example
1-start 1-up 1-right 1-end. When both hands have held steady in front of
the camera, player 1's path runs step by step, then player 2's.

Available commands:
  play     - Play in the terminal
  run      - Play a recorded feed headlessly
  check    - Decode a feed frame by frame
  cards    - List the valid card texts

Examples:
  qrrace play
  qrrace play --feed ./feeds/race.yaml
  qrrace run --feed ./feeds/race.yaml --step 0.5
  qrrace check --feed ./feeds/race.yaml
  qrrace cards --plain`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to session config YAML")
	rootCmd.PersistentFlags().IntVar(&flagStableFrames, "stable-frames", stability.DefaultThreshold, "Identical frames before a hand is trusted")
	rootCmd.PersistentFlags().Float64Var(&flagStep, "step", turn.DefaultStepInterval.Seconds(), "Seconds between movement steps")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Camera frames per second")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cardsCmd)
}
