// Package style defines the visual configuration for placecard rendering.
//
// A Config is the raw, file-facing option set: every field is optional and
// absent fields fall back to documented defaults at resolution time. A
// Resolved config is the immutable result of applying those defaults; it is
// what the layout engine and the render sinks consume. Resolution never
// fails: out-of-range values are clamped or replaced, not rejected.
// Structural validation (positive card dimensions, positive grid columns)
// belongs to the layout engine, which can distinguish "absent" from
// "explicitly nonsensical".
package style

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Default option values.
const (
	DefaultFontFamily      = "Helvetica"
	DefaultTitleFontSize   = 14.0
	DefaultContentFontSize = 12.0
	DefaultCardWidth       = 4.0 // inches
	DefaultCardHeight      = 3.0 // inches
	DefaultCardsPerRow     = 2
	DefaultSpacing         = 0.5 // inches
	DefaultMargin          = 0.5 // inches

	DefaultPrimaryColor   = "#2C3E50"
	DefaultSecondaryColor = "#E74C3C"
	DefaultAccentColor    = "#F39C12"
	DefaultBorderColor    = "gray"
	DefaultBackground     = "white"
)

// MinFontSize is the smallest font size the renderer will accept.
// Zero or negative configured sizes clamp here instead of producing
// invisible text.
const MinFontSize = 6.0

// Page sizes and orientations.
const (
	PageLetter = "letter"
	PageA4     = "a4"

	OrientLandscape = "landscape"
	OrientPortrait  = "portrait"
)

// ColorScheme groups the three accent colors of a card.
type ColorScheme struct {
	PrimaryColor   string `json:"primary_color,omitempty" toml:"primary_color"`
	SecondaryColor string `json:"secondary_color,omitempty" toml:"secondary_color"`
	AccentColor    string `json:"accent_color,omitempty" toml:"accent_color"`
}

// Config is the file-facing style configuration. All fields are optional;
// pointer fields distinguish "absent" (use the default) from an explicit
// value, which matters for numeric layout fields where zero is invalid
// rather than missing.
type Config struct {
	FontFamily      string   `json:"font_family,omitempty" toml:"font_family"`
	TitleFontSize   *float64 `json:"title_font_size,omitempty" toml:"title_font_size"`
	ContentFontSize *float64 `json:"content_font_size,omitempty" toml:"content_font_size"`

	CardWidth   *float64 `json:"card_width,omitempty" toml:"card_width"`
	CardHeight  *float64 `json:"card_height,omitempty" toml:"card_height"`
	CardsPerRow *int     `json:"cards_per_row,omitempty" toml:"cards_per_row"`
	Spacing     *float64 `json:"spacing_between_cards,omitempty" toml:"spacing_between_cards"`
	Margin      *float64 `json:"margin,omitempty" toml:"margin"`

	Border          *bool  `json:"border,omitempty" toml:"border"`
	BorderColor     string `json:"border_color,omitempty" toml:"border_color"`
	BackgroundColor string `json:"background_color,omitempty" toml:"background_color"`

	PageSize    string `json:"page_size,omitempty" toml:"page_size"`
	Orientation string `json:"orientation,omitempty" toml:"orientation"`

	ColorScheme ColorScheme `json:"color_scheme,omitempty" toml:"color_scheme"`
}

// Resolved is a fully-populated style configuration. Dimensions are in
// inches, font sizes in points. Treated as immutable for the duration of a
// generation run.
type Resolved struct {
	FontFamily      string  `json:"font_family"`
	TitleFontSize   float64 `json:"title_font_size"`
	ContentFontSize float64 `json:"content_font_size"`

	CardWidth   float64 `json:"card_width"`
	CardHeight  float64 `json:"card_height"`
	CardsPerRow int     `json:"cards_per_row"`
	Spacing     float64 `json:"spacing_between_cards"`
	Margin      float64 `json:"margin"`

	Border          bool `json:"border"`
	BorderColor     RGB  `json:"border_color"`
	BackgroundColor RGB  `json:"background_color"`

	PageWidth  float64 `json:"page_width"` // inches, orientation applied
	PageHeight float64 `json:"page_height"`

	Primary   RGB `json:"primary_color"`
	Secondary RGB `json:"secondary_color"`
	Accent    RGB `json:"accent_color"`
}

// Default returns the resolved configuration with every option at its
// documented default: letter landscape, 2 columns of 4x3 inch cards.
func Default() Resolved {
	return Config{}.Resolve()
}

// Resolve applies defaults to absent fields and clamps font sizes.
// Explicit numeric values are passed through untouched, including invalid
// ones: the layout engine owns that validation.
func (c Config) Resolve() Resolved {
	r := Resolved{
		FontFamily:      DefaultFontFamily,
		TitleFontSize:   DefaultTitleFontSize,
		ContentFontSize: DefaultContentFontSize,
		CardWidth:       DefaultCardWidth,
		CardHeight:      DefaultCardHeight,
		CardsPerRow:     DefaultCardsPerRow,
		Spacing:         DefaultSpacing,
		Margin:          DefaultMargin,
		Border:          true,
		BorderColor:     ParseColor(DefaultBorderColor, RGB{}),
		BackgroundColor: ParseColor(DefaultBackground, RGB{}),
		Primary:         MustParseHex(DefaultPrimaryColor),
		Secondary:       MustParseHex(DefaultSecondaryColor),
		Accent:          MustParseHex(DefaultAccentColor),
	}

	if c.FontFamily != "" {
		r.FontFamily = c.FontFamily
	}
	if c.TitleFontSize != nil {
		r.TitleFontSize = clampFontSize(*c.TitleFontSize)
	}
	if c.ContentFontSize != nil {
		r.ContentFontSize = clampFontSize(*c.ContentFontSize)
	}
	if c.CardWidth != nil {
		r.CardWidth = *c.CardWidth
	}
	if c.CardHeight != nil {
		r.CardHeight = *c.CardHeight
	}
	if c.CardsPerRow != nil {
		r.CardsPerRow = *c.CardsPerRow
	}
	if c.Spacing != nil {
		r.Spacing = *c.Spacing
	}
	if c.Margin != nil {
		r.Margin = *c.Margin
	}
	if c.Border != nil {
		r.Border = *c.Border
	}
	if c.BorderColor != "" {
		r.BorderColor = ParseColor(c.BorderColor, r.BorderColor)
	}
	if c.BackgroundColor != "" {
		r.BackgroundColor = ParseColor(c.BackgroundColor, r.BackgroundColor)
	}
	if c.ColorScheme.PrimaryColor != "" {
		r.Primary = ParseColor(c.ColorScheme.PrimaryColor, r.Primary)
	}
	if c.ColorScheme.SecondaryColor != "" {
		r.Secondary = ParseColor(c.ColorScheme.SecondaryColor, r.Secondary)
	}
	if c.ColorScheme.AccentColor != "" {
		r.Accent = ParseColor(c.ColorScheme.AccentColor, r.Accent)
	}

	r.PageWidth, r.PageHeight = pageDimensions(c.PageSize, c.Orientation)
	return r
}

func clampFontSize(size float64) float64 {
	if size < MinFontSize {
		return MinFontSize
	}
	return size
}

// pageDimensions returns the page size in inches with orientation applied.
// Unknown sizes fall back to letter; unknown orientations to landscape.
func pageDimensions(size, orientation string) (w, h float64) {
	switch strings.ToLower(size) {
	case PageA4:
		w, h = 8.27, 11.69
	default: // letter
		w, h = 8.5, 11.0
	}
	if strings.ToLower(orientation) == OrientPortrait {
		return w, h
	}
	return h, w
}

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// String formats the color as a lowercase hex triple.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalJSON encodes the color as a hex string, keeping layout interchange
// files readable.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts a hex string or color name.
func (c *RGB) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseHex(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		if named, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]; ok {
			*c = named
			return nil
		}
		return err
	}
	*c = parsed
	return nil
}

// namedColors covers the color names accepted by the style file in addition
// to hex triples.
var namedColors = map[string]RGB{
	"white":       {255, 255, 255},
	"black":       {0, 0, 0},
	"gray":        {128, 128, 128},
	"red":         {200, 30, 30},
	"green":       {30, 140, 60},
	"blue":        {40, 90, 200},
	"lightgray":   {211, 211, 211},
	"lightblue":   {173, 216, 230},
	"lightyellow": {255, 255, 224},
}

// ParseColor parses a hex triple ("#2C3E50") or a known color name.
// Unparseable values return the fallback: a bad optional key must never
// fail a generation run.
func ParseColor(s string, fallback RGB) RGB {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if c, err := parseHex(s); err == nil {
		return c
	}
	return fallback
}

// MustParseHex parses a hex triple and panics on failure. For package-level
// constants only.
func MustParseHex(s string) RGB {
	c, err := parseHex(strings.ToLower(s))
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB{r, g, b}, nil
}
