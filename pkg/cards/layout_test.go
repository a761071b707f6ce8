package cards

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/brewvino/placecards/pkg/booking"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/style"
)

func makeRecords(n int) []booking.Record {
	records := make([]booking.Record, n)
	for i := range records {
		records[i] = booking.Record{
			Name:        fmt.Sprintf("Guest %d", i),
			TableNumber: fmt.Sprintf("%d", i+1),
			BookingTime: "7:30 PM",
		}
	}
	return records
}

func TestResolveLayoutDefaults(t *testing.T) {
	l, err := ResolveLayout(style.Default())
	if err != nil {
		t.Fatalf("ResolveLayout failed: %v", err)
	}

	// 4x3 in cards, 0.5 in spacing/margin, letter landscape:
	// printable height 7.5 in / 3.5 in per row = 2 rows.
	if l.CardsPerRow != 2 || l.RowsPerPage != 2 {
		t.Errorf("grid = %dx%d, want 2x2", l.CardsPerRow, l.RowsPerPage)
	}
	if l.PerPage() != 4 {
		t.Errorf("PerPage = %d, want 4", l.PerPage())
	}
	if l.CardWidth != 4*PointsPerInch || l.CardHeight != 3*PointsPerInch {
		t.Errorf("card = %gx%g pt", l.CardWidth, l.CardHeight)
	}
}

func TestResolveLayoutConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*style.Resolved)
	}{
		{"zero cards per row", func(c *style.Resolved) { c.CardsPerRow = 0 }},
		{"negative cards per row", func(c *style.Resolved) { c.CardsPerRow = -1 }},
		{"zero card width", func(c *style.Resolved) { c.CardWidth = 0 }},
		{"negative card height", func(c *style.Resolved) { c.CardHeight = -2 }},
		{"negative spacing", func(c *style.Resolved) { c.Spacing = -0.1 }},
		{"negative margin", func(c *style.Resolved) { c.Margin = -0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := style.Default()
			tt.mutate(&cfg)
			_, err := ResolveLayout(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestResolveLayoutErrors(t *testing.T) {
	// Card taller than the printable page height: zero rows fit.
	cfg := style.Default()
	cfg.CardHeight = 10
	_, err := ResolveLayout(cfg)
	if err == nil {
		t.Fatal("expected error for oversized card")
	}
	if !errors.Is(err, errors.ErrCodeLayout) {
		t.Errorf("error code = %q, want LAYOUT", errors.GetCode(err))
	}

	// Row too wide for the page.
	cfg = style.Default()
	cfg.CardWidth = 6
	cfg.CardsPerRow = 2
	_, err = ResolveLayout(cfg)
	if err == nil {
		t.Fatal("expected error for overwide row")
	}
	if !errors.Is(err, errors.ErrCodeLayout) {
		t.Errorf("error code = %q, want LAYOUT", errors.GetCode(err))
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	pages, err := Generate(nil, style.Default())
	if err != nil {
		t.Fatalf("empty input should not error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("got %d pages, want 0", len(pages))
	}
}

func TestGenerateFailsAtomically(t *testing.T) {
	cfg := style.Default()
	cfg.CardsPerRow = 0
	pages, err := Generate(makeRecords(5), cfg)
	if err == nil {
		t.Fatal("expected ConfigError")
	}
	if pages != nil {
		t.Error("no pages should be returned alongside an error")
	}
}

func TestGeneratePagination(t *testing.T) {
	// 5 records, 2 per row, 2 rows per page: pages of 4 and 1.
	pages, err := Generate(makeRecords(5), style.Default())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if len(pages[0].Slots) != 4 || len(pages[1].Slots) != 1 {
		t.Errorf("slot counts = %d,%d, want 4,1", len(pages[0].Slots), len(pages[1].Slots))
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Errorf("page numbers = %d,%d", pages[0].Number, pages[1].Number)
	}

	layout, _ := ResolveLayout(style.Default())

	// Slot 0 at row 0, col 0.
	s0 := pages[0].Slots[0]
	if s0.X != layout.Margin || s0.Y != layout.Margin {
		t.Errorf("slot 0 at (%g,%g), want (%g,%g)", s0.X, s0.Y, layout.Margin, layout.Margin)
	}

	// Slot 3 at row 1, col 1.
	s3 := pages[0].Slots[3]
	wantX := layout.Margin + layout.CardWidth + layout.Spacing
	wantY := layout.Margin + layout.CardHeight + layout.Spacing
	if s3.X != wantX || s3.Y != wantY {
		t.Errorf("slot 3 at (%g,%g), want (%g,%g)", s3.X, s3.Y, wantX, wantY)
	}
}

func TestGeneratePreservesOrderAndCount(t *testing.T) {
	records := makeRecords(11)
	pages, err := Generate(records, style.Default())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var flattened []booking.Record
	for _, p := range pages {
		for _, s := range p.Slots {
			flattened = append(flattened, s.Record)
		}
	}

	if len(flattened) != len(records) {
		t.Fatalf("slot count = %d, want %d", len(flattened), len(records))
	}
	if !reflect.DeepEqual(flattened, records) {
		t.Error("slot records should equal input records in order")
	}
}

func TestGenerateDuplicatesRenderedIndependently(t *testing.T) {
	rec := booking.Record{Name: "Twin", TableNumber: "7", BookingTime: "8PM"}
	pages, err := Generate([]booking.Record{rec, rec}, style.Default())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if pages[0].Slots[0].Record != rec || pages[0].Slots[1].Record != rec {
		t.Error("duplicate records should both be laid out verbatim")
	}
}

func TestGenerateSlotsWithinBoundsAndDisjoint(t *testing.T) {
	configs := []style.Resolved{
		style.Default(),
		func() style.Resolved {
			c := style.Default()
			c.CardsPerRow = 3
			c.CardWidth = 3
			c.Spacing = 0.25
			return c
		}(),
		func() style.Resolved {
			c := style.Default()
			c.Spacing = 0 // borders touching, like the 2x2 original layout
			c.Margin = 0.25
			return c
		}(),
	}

	for ci, cfg := range configs {
		pages, err := Generate(makeRecords(9), cfg)
		if err != nil {
			t.Fatalf("config %d: %v", ci, err)
		}
		w := cfg.CardWidth * PointsPerInch
		h := cfg.CardHeight * PointsPerInch

		for _, p := range pages {
			for i, s := range p.Slots {
				if s.X < 0 || s.Y < 0 || s.X+w > p.Width+1e-9 || s.Y+h > p.Height+1e-9 {
					t.Errorf("config %d page %d slot %d out of bounds: (%g,%g)", ci, p.Number, i, s.X, s.Y)
				}
				for j, other := range p.Slots[:i] {
					if overlap(s.X, s.Y, other.X, other.Y, w, h) {
						t.Errorf("config %d page %d slots %d and %d overlap", ci, p.Number, i, j)
					}
				}
			}
		}
	}
}

func overlap(x1, y1, x2, y2, w, h float64) bool {
	return x1 < x2+w && x2 < x1+w && y1 < y2+h && y2 < y1+h
}

func TestGenerateIdempotent(t *testing.T) {
	records := makeRecords(7)
	cfg := style.Default()

	a, err := Generate(records, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(records, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs should yield identical output")
	}
}

func TestGenerateOpaqueTableNumbers(t *testing.T) {
	rec := booking.Record{Name: "Ada", TableNumber: "patio-west", BookingTime: "6PM"}
	pages, err := Generate([]booking.Record{rec}, style.Default())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	got := pages[0].Slots[0].Content.Table
	if got != "Table patio-west" {
		t.Errorf("Table line = %q, want non-numeric label passed through", got)
	}
}
