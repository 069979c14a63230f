package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/platform/tui"
)

var flagPlain bool

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the valid card texts",
	Long: `List every card text the decoder accepts, per player, with the
alternative spellings that read as the same card.

In a terminal this opens a browsable table; --plain (or a pipe) prints
a plain list suitable for feeding a QR generator.

Examples:
  qrrace cards
  qrrace cards --plain > cards.txt`,
	Args: cobra.NoArgs,
	Run:  runCards,
}

func init() {
	cardsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain list instead of the table view")
}

func runCards(_ *cobra.Command, _ []string) {
	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24 // Defaults
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		if err := tui.RunCatalogue(width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	catalogue := cards.Catalogue()

	// Calculate column widths
	maxTextLen := 4 // "Card" header
	for _, c := range catalogue {
		if len(c.Text) > maxTextLen {
			maxTextLen = len(c.Text)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxTextLen, "Card", "Also read")
	fmt.Printf("  %-*s  %s\n", maxTextLen, "----", "---------")

	var player cards.Player
	for _, c := range catalogue {
		if c.Player != player {
			if player != 0 {
				fmt.Println()
			}
			player = c.Player
		}
		fmt.Printf("  %-*s  %s\n", maxTextLen, c.Text, strings.Join(c.Aliases, " "))
	}
}
