package view

import (
	"fmt"
	"strings"

	"github.com/jyamaiken/triple-triad-app/internal/game"
)

// statGlyph renders a stat value as a single character, hex style: 10
// prints as A.
func statGlyph(v int) string {
	if v == 10 {
		return "A"
	}
	return fmt.Sprintf("%d", v)
}

// RenderBoard draws the 3x3 grid. Occupied tiles show the owner letter,
// the four effective stats, and the card's element initial; empty tiles
// show their index and any elemental tag.
//
//	+-------+-------+-------+
//	|A  7   |       |B  4   |
//	| 2 f 6 | 1 [t] | 8 . 3 |
//	|   3   |       |   5   |
//	+-------+-------+-------+
func RenderBoard(b *game.Board) string {
	var sb strings.Builder
	divider := "+-------+-------+-------+\n"
	sb.WriteString(divider)
	for row := 0; row < 3; row++ {
		var lines [3]string
		for col := 0; col < 3; col++ {
			cell := renderTile(b.Tiles[row*3+col], row*3+col)
			for i := range lines {
				lines[i] += "|" + cell[i]
			}
		}
		for i := range lines {
			sb.WriteString(lines[i] + "|\n")
		}
		sb.WriteString(divider)
	}
	return sb.String()
}

func renderTile(t game.Tile, idx int) [3]string {
	if t.Card == nil {
		mid := fmt.Sprintf("   %d   ", idx)
		if t.Element != game.ElementNone {
			mid = fmt.Sprintf(" %d [%s] ", idx, elementInitial(t.Element))
		}
		return [3]string{"       ", mid, "       "}
	}
	eff := t.Card.Effective()
	center := "."
	if t.Card.Card.Element != game.ElementNone {
		center = elementInitial(t.Card.Card.Element)
	}
	return [3]string{
		fmt.Sprintf("%s  %s   ", t.Card.Owner, statGlyph(eff[game.SideUp])),
		fmt.Sprintf(" %s %s %s ", statGlyph(eff[game.SideLeft]), center, statGlyph(eff[game.SideRight])),
		fmt.Sprintf("   %s   ", statGlyph(eff[game.SideDown])),
	}
}

// elementInitial is the one-letter board tag. Wind takes "n" since "w"
// belongs to water.
func elementInitial(e game.Element) string {
	if e == game.ElementWind {
		return "n"
	}
	return e.String()[:1]
}

// RenderHand lists a hand with 0-based pick indices.
func RenderHand(hand []*game.CardInstance) string {
	var sb strings.Builder
	for i, ci := range hand {
		fmt.Fprintf(&sb, "  [%d] %-18s L%-2d %s", i, ci.Card.Name, ci.Card.Level, ci.Card.Stats)
		if ci.Card.Element != game.ElementNone {
			fmt.Fprintf(&sb, "  %s", ci.Card.Element)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderScore is a one-line score summary.
func RenderScore(m *game.Match) string {
	scores := m.Scores()
	wins := m.Wins()
	return fmt.Sprintf("Score A %d : %d B   (wins %d-%d, round %d)",
		scores[game.PlayerA], scores[game.PlayerB],
		wins[game.PlayerA], wins[game.PlayerB], m.Round)
}
