package cards

import (
	"github.com/brewvino/placecards/pkg/booking"
	"github.com/brewvino/placecards/pkg/style"
)

// Text placement constants, in points.
//
// charWidthRatio is the estimated average glyph width as a fraction of the
// font size. Real font metrics vary by family and renderer; this is a
// tunable approximation, not a contract, so the truncation boundary is
// deliberately conservative.
const (
	charWidthRatio = 0.55
	textInset      = 12.0 // horizontal padding between card edge and text
)

// Ellipsis marks truncated titles.
const Ellipsis = "…"

// HeaderText is the banner line at the top of every card.
const HeaderText = "RESERVED"

// Content is the derived visual content of one card.
type Content struct {
	Header string `json:"header"`          // "RESERVED" banner
	Title  string `json:"title"`           // guest name, truncated to fit
	Table  string `json:"table"`           // "Table {n}" line
	Time   string `json:"time,omitempty"`  // booking time range
	Left   string `json:"left,omitempty"`  // bottom-left corner label ("T5")
	Right  string `json:"right,omitempty"` // bottom-right corner label ("4P")

	TitleSize   float64 `json:"title_size"`
	ContentSize float64 `json:"content_size"`
}

// deriveContent resolves what a single card displays. Pure: depends only on
// the record and the resolved style.
func deriveContent(rec booking.Record, cfg style.Resolved, layout CardLayout) Content {
	c := Content{
		Header:      HeaderText,
		Title:       TruncateTitle(rec.Name, layout.CardWidth, cfg.TitleFontSize),
		Table:       "Table " + rec.TableNumber,
		Time:        booking.TimeRange(rec.BookingTime),
		TitleSize:   cfg.TitleFontSize,
		ContentSize: cfg.ContentFontSize,
	}

	if rec.TableNumber != "" {
		c.Left = "T" + rec.TableNumber
	}
	if rec.PartySize != "" {
		c.Right = rec.PartySize + "P"
	}

	return c
}

// TruncateTitle shortens text to the maximum number of characters whose
// estimated rendered width fits the card width minus a fixed inset,
// appending an ellipsis when anything was cut. Width estimation uses a flat
// per-character width of fontSize*charWidthRatio points.
//
// An empty name passes through as an empty title: blank cards are valid.
func TruncateTitle(text string, cardWidth, fontSize float64) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	avail := cardWidth - 2*textInset
	maxChars := int(avail / (fontSize * charWidthRatio))
	if maxChars < 1 {
		maxChars = 1
	}
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars-1]) + Ellipsis
}
