package cards

import "testing"

func TestNormalizeAccepts(t *testing.T) {
	tests := []struct {
		text    string
		player  Player
		command Command
	}{
		{"1-start", Player1, CmdStart},
		{"2-end", Player2, CmdEnd},
		{"1-up", Player1, CmdUp},
		{"2-down", Player2, CmdDown},
		{"1-left", Player1, CmdLeft},
		{"2-right", Player2, CmdRight},
		{"1-inicio", Player1, CmdStart},
		{"2-fim", Player2, CmdEnd},
		{"1-cima", Player1, CmdUp},
		{"1-baixo", Player1, CmdDown},
		{"2-esquerda", Player2, CmdLeft},
		{"2-direita", Player2, CmdRight},
		{"  1-CIMA \n", Player1, CmdUp},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			tok, ok := Normalize(tc.text, 42)
			if !ok {
				t.Fatalf("Normalize(%q) rejected a valid card", tc.text)
			}
			if tok.Player != tc.player || tok.Command != tc.command {
				t.Errorf("Normalize(%q) = (%v, %v), expected (%v, %v)",
					tc.text, tok.Player, tok.Command, tc.player, tc.command)
			}
			if tok.OrderHint != 42 {
				t.Errorf("OrderHint = %v, expected 42", tok.OrderHint)
			}
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	rejects := []string{
		"",
		"start",
		"1",
		"1-",
		"-up",
		"3-up",
		"0-start",
		"12-up",
		"1-jump",
		"1--up",
		"1-up-2",
		"1_up",
		"1 - up",
		"p1-up",
		"https://example.com/1-up",
	}

	for _, text := range rejects {
		t.Run(text, func(t *testing.T) {
			if tok, ok := Normalize(text, 0); ok {
				t.Errorf("Normalize(%q) = %+v, expected no token", text, tok)
			}
		})
	}
}

func TestCatalogue(t *testing.T) {
	cat := Catalogue()
	if len(cat) != 12 {
		t.Fatalf("Catalogue() has %d cards, expected 12", len(cat))
	}

	for _, card := range cat {
		tok, ok := Normalize(card.Text, 0)
		if !ok || tok.Player != card.Player || tok.Command != card.Command {
			t.Errorf("card %q does not normalize to itself", card.Text)
		}
		if len(card.Aliases) != 1 {
			t.Errorf("card %q has aliases %v, expected exactly one", card.Text, card.Aliases)
		}
		for _, alias := range card.Aliases {
			tok, ok := Normalize(alias, 0)
			if !ok || tok.Command != card.Command {
				t.Errorf("alias %q does not normalize to %v", alias, card.Command)
			}
		}
	}

	if cat[0].Text != "1-start" || cat[11].Text != "2-end" {
		t.Errorf("Catalogue() order = %q ... %q, expected 1-start ... 2-end", cat[0].Text, cat[11].Text)
	}
}
