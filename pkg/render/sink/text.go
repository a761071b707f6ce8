package sink

import (
	"fmt"
	"strings"

	"github.com/brewvino/placecards/pkg/cards"
)

// ============================================================================
// TEXT SINK
// ============================================================================

// cardCols is the interior width of a text-rendered card, in characters.
const cardCols = 30

// RenderText draws the layout as box-drawn cards, one per slot, grouped by
// page. It is the terminal-friendly stand-in for the PDF output: same
// content, no geometry. An empty layout renders a short notice instead of
// nothing.
func RenderText(l cards.Layout) ([]byte, error) {
	var b strings.Builder

	if len(l.Pages) == 0 {
		b.WriteString("no cards to render\n")
		return []byte(b.String()), nil
	}

	for _, page := range l.Pages {
		fmt.Fprintf(&b, "--- page %d ---\n\n", page.Number)
		for _, slot := range page.Slots {
			writeCard(&b, slot.Content)
			b.WriteByte('\n')
		}
	}

	return []byte(b.String()), nil
}

func writeCard(b *strings.Builder, c cards.Content) {
	border := "+" + strings.Repeat("-", cardCols) + "+\n"

	b.WriteString(border)
	writeLine(b, centered(c.Header))
	writeLine(b, centered(strings.Repeat("~", cardCols*3/4)))
	writeLine(b, "")
	writeLine(b, centered(clip(c.Title)))
	writeLine(b, centered(clip(c.Table)))
	writeLine(b, centered(clip(c.Time)))
	writeLine(b, "")
	writeLine(b, corners(c.Left, c.Right))
	b.WriteString(border)
}

func writeLine(b *strings.Builder, s string) {
	fmt.Fprintf(b, "|%-*s|\n", cardCols, s)
}

func centered(s string) string {
	pad := (cardCols - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// corners packs the two corner labels onto one line, left- and
// right-aligned.
func corners(left, right string) string {
	gap := cardCols - len([]rune(left)) - len([]rune(right)) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= cardCols {
		return s
	}
	return string(runes[:cardCols-1]) + cards.Ellipsis
}
