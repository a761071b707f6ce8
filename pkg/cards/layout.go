package cards

import (
	"math"

	"github.com/brewvino/placecards/pkg/booking"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/style"
)

// PointsPerInch converts configured inch dimensions to layout points.
const PointsPerInch = 72.0

// CardLayout is the resolved page geometry, in points.
// It is a pure function of the style configuration, computed once per run.
type CardLayout struct {
	CardWidth  float64 `json:"card_width"`
	CardHeight float64 `json:"card_height"`
	Spacing    float64 `json:"spacing"`
	Margin     float64 `json:"margin"`

	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`

	CardsPerRow int `json:"cards_per_row"`
	RowsPerPage int `json:"rows_per_page"`
}

// PerPage returns the number of card slots on a full page.
func (l CardLayout) PerPage() int {
	return l.CardsPerRow * l.RowsPerPage
}

// Slot is one placecard's computed position and content within a page.
// Position is the card's top-left corner in points.
type Slot struct {
	Record  booking.Record `json:"record"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Content Content        `json:"content"`
}

// Page is an ordered sequence of slots on one fixed-size canvas.
// Pages exist only as intermediate output of a generation call.
type Page struct {
	Number int     `json:"number"` // 1-based
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Slots  []Slot  `json:"slots"`
}

// ResolveLayout computes the page geometry from a resolved style config.
//
// It fails with an INVALID_CONFIG error when a required numeric layout field
// is nonsensical (cards_per_row, card_width, or card_height non-positive;
// spacing or margin negative), and with a LAYOUT error when the resolved
// geometry cannot place a single card on a page.
func ResolveLayout(cfg style.Resolved) (CardLayout, error) {
	if cfg.CardsPerRow <= 0 {
		return CardLayout{}, errors.New(errors.ErrCodeInvalidConfig,
			"cards_per_row must be positive, got %d", cfg.CardsPerRow)
	}
	if cfg.CardWidth <= 0 {
		return CardLayout{}, errors.New(errors.ErrCodeInvalidConfig,
			"card_width must be positive, got %g", cfg.CardWidth)
	}
	if cfg.CardHeight <= 0 {
		return CardLayout{}, errors.New(errors.ErrCodeInvalidConfig,
			"card_height must be positive, got %g", cfg.CardHeight)
	}
	if cfg.Spacing < 0 {
		return CardLayout{}, errors.New(errors.ErrCodeInvalidConfig,
			"spacing_between_cards must not be negative, got %g", cfg.Spacing)
	}
	if cfg.Margin < 0 {
		return CardLayout{}, errors.New(errors.ErrCodeInvalidConfig,
			"margin must not be negative, got %g", cfg.Margin)
	}

	l := CardLayout{
		CardWidth:   cfg.CardWidth * PointsPerInch,
		CardHeight:  cfg.CardHeight * PointsPerInch,
		Spacing:     cfg.Spacing * PointsPerInch,
		Margin:      cfg.Margin * PointsPerInch,
		PageWidth:   cfg.PageWidth * PointsPerInch,
		PageHeight:  cfg.PageHeight * PointsPerInch,
		CardsPerRow: cfg.CardsPerRow,
	}

	printableHeight := l.PageHeight - 2*l.Margin
	l.RowsPerPage = int(math.Floor(printableHeight / (l.CardHeight + l.Spacing)))
	if l.RowsPerPage < 1 {
		return CardLayout{}, errors.New(errors.ErrCodeLayout,
			"card height %g in does not fit on a %gx%g in page", cfg.CardHeight, cfg.PageWidth, cfg.PageHeight)
	}

	rowWidth := float64(l.CardsPerRow)*l.CardWidth + float64(l.CardsPerRow-1)*l.Spacing
	if l.Margin*2+rowWidth > l.PageWidth {
		return CardLayout{}, errors.New(errors.ErrCodeLayout,
			"%d cards of %g in do not fit across a %g in page", l.CardsPerRow, cfg.CardWidth, cfg.PageWidth)
	}

	return l, nil
}

// Generate lays out booking records as a paginated card grid.
//
// Records are partitioned into pages in input order; within a page, slots are
// assigned row-major. Every input record produces exactly one slot: no
// reordering, deduplication, or filtering. Empty input yields zero pages and
// no error. Generate performs no I/O and holds no state; identical inputs
// produce identical output.
func Generate(records []booking.Record, cfg style.Resolved) ([]Page, error) {
	layout, err := ResolveLayout(cfg)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, nil
	}

	perPage := layout.PerPage()
	pages := make([]Page, 0, (len(records)+perPage-1)/perPage)

	for start := 0; start < len(records); start += perPage {
		end := start + perPage
		if end > len(records) {
			end = len(records)
		}

		page := Page{
			Number: len(pages) + 1,
			Width:  layout.PageWidth,
			Height: layout.PageHeight,
			Slots:  make([]Slot, 0, end-start),
		}

		for i, rec := range records[start:end] {
			row := i / layout.CardsPerRow
			col := i % layout.CardsPerRow
			page.Slots = append(page.Slots, Slot{
				Record:  rec,
				X:       layout.Margin + float64(col)*(layout.CardWidth+layout.Spacing),
				Y:       layout.Margin + float64(row)*(layout.CardHeight+layout.Spacing),
				Content: deriveContent(rec, cfg, layout),
			})
		}

		pages = append(pages, page)
	}

	return pages, nil
}
