package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/feed"
	"github.com/vovakirdan/qr-race/internal/platform/headless"
)

var flagChanges bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Decode a feed frame by frame",
	Long: `Show what every frame of a feed decodes to, without debouncing:
the recognized tokens per player, left to right, and either the extracted
path or why the hand is rejected.

Use it to check that printed cards read back as intended.

Examples:
  qrrace check --feed ./feeds/race.yaml
  qrrace check --feed ./feeds/race.yaml --changes`,
	Args: cobra.NoArgs,
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&flagFeed, "feed", "", "Feed script to check")
	checkCmd.Flags().BoolVar(&flagChanges, "changes", false, "Only print frames that differ from the previous one")
	//nolint:errcheck // Flag exists
	checkCmd.MarkFlagRequired("feed")
}

func runCheck(_ *cobra.Command, _ []string) {
	script, err := feed.LoadScript(flagFeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reports, err := headless.Check(context.Background(), feed.NewScriptSource(script), script.Len())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prev := ""
	for _, rep := range reports {
		body := formatReport(rep)
		if flagChanges && body == prev {
			continue
		}
		prev = body
		fmt.Printf("frame %d\n%s", rep.Index, body)
	}
}

func formatReport(rep headless.FrameReport) string {
	var b strings.Builder
	for _, h := range rep.Hands {
		tokens := "(no cards)"
		if len(h.Tokens) > 0 {
			tokens = strings.Join(h.Tokens, " ")
		}

		result := "-> " + h.Sequence.String()
		if h.Verdict != cards.VerdictOK {
			result = "rejected: " + h.Verdict.String()
		}
		fmt.Fprintf(&b, "  player %s: %-40s %s\n", h.Player, tokens, result)
	}
	if len(rep.Ignored) > 0 {
		fmt.Fprintf(&b, "  ignored: %s\n", strings.Join(rep.Ignored, " "))
	}
	return b.String()
}
