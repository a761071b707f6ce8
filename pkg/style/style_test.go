package style

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultResolution(t *testing.T) {
	r := Default()

	if r.FontFamily != "Helvetica" {
		t.Errorf("FontFamily = %q", r.FontFamily)
	}
	if r.TitleFontSize != 14 || r.ContentFontSize != 12 {
		t.Errorf("font sizes = %v/%v, want 14/12", r.TitleFontSize, r.ContentFontSize)
	}
	if r.CardWidth != 4 || r.CardHeight != 3 {
		t.Errorf("card size = %vx%v, want 4x3", r.CardWidth, r.CardHeight)
	}
	if r.CardsPerRow != 2 {
		t.Errorf("CardsPerRow = %d, want 2", r.CardsPerRow)
	}
	if r.Spacing != 0.5 || r.Margin != 0.5 {
		t.Errorf("spacing/margin = %v/%v, want 0.5/0.5", r.Spacing, r.Margin)
	}
	// Letter landscape
	if r.PageWidth != 11 || r.PageHeight != 8.5 {
		t.Errorf("page = %vx%v, want 11x8.5", r.PageWidth, r.PageHeight)
	}
	if r.Primary != (RGB{0x2C, 0x3E, 0x50}) {
		t.Errorf("Primary = %v", r.Primary)
	}
	if !r.Border {
		t.Error("Border should default to true")
	}
}

func TestResolveOverrides(t *testing.T) {
	width := 3.5
	cols := 3
	noBorder := false
	cfg := Config{
		FontFamily:  "Courier",
		CardWidth:   &width,
		CardsPerRow: &cols,
		Border:      &noBorder,
		PageSize:    "a4",
		Orientation: "portrait",
		ColorScheme: ColorScheme{PrimaryColor: "#000000"},
	}
	r := cfg.Resolve()

	if r.FontFamily != "Courier" {
		t.Errorf("FontFamily = %q", r.FontFamily)
	}
	if r.CardWidth != 3.5 {
		t.Errorf("CardWidth = %v", r.CardWidth)
	}
	if r.CardsPerRow != 3 {
		t.Errorf("CardsPerRow = %d", r.CardsPerRow)
	}
	if r.Border {
		t.Error("Border override lost")
	}
	if r.PageWidth != 8.27 || r.PageHeight != 11.69 {
		t.Errorf("page = %vx%v, want A4 portrait", r.PageWidth, r.PageHeight)
	}
	if r.Primary != (RGB{0, 0, 0}) {
		t.Errorf("Primary = %v", r.Primary)
	}
	// Untouched fields keep defaults
	if r.CardHeight != 3 {
		t.Errorf("CardHeight = %v, want default 3", r.CardHeight)
	}
}

func TestFontSizeClamping(t *testing.T) {
	zero := 0.0
	negative := -4.0
	cfg := Config{TitleFontSize: &zero, ContentFontSize: &negative}
	r := cfg.Resolve()

	if r.TitleFontSize != MinFontSize {
		t.Errorf("zero title size should clamp to %v, got %v", MinFontSize, r.TitleFontSize)
	}
	if r.ContentFontSize != MinFontSize {
		t.Errorf("negative content size should clamp to %v, got %v", MinFontSize, r.ContentFontSize)
	}
}

func TestResolvePassesThroughInvalidLayoutValues(t *testing.T) {
	// The layout engine, not Resolve, rejects these.
	bad := -2.0
	zero := 0
	cfg := Config{CardWidth: &bad, CardsPerRow: &zero}
	r := cfg.Resolve()

	if r.CardWidth != -2 {
		t.Errorf("CardWidth = %v, want -2 passed through", r.CardWidth)
	}
	if r.CardsPerRow != 0 {
		t.Errorf("CardsPerRow = %d, want 0 passed through", r.CardsPerRow)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#2C3E50", RGB{0x2C, 0x3E, 0x50}},
		{"2c3e50", RGB{0x2C, 0x3E, 0x50}},
		{"white", RGB{255, 255, 255}},
		{"GRAY", RGB{128, 128, 128}},
		{"not-a-color", RGB{1, 2, 3}}, // fallback
		{"#12345", RGB{1, 2, 3}},      // wrong length, fallback
	}

	fallback := RGB{1, 2, 3}
	for _, tt := range tests {
		if got := ParseColor(tt.in, fallback); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.json")
	content := `{"font_family": "Times-Roman", "cards_per_row": 3, "color_scheme": {"primary_color": "#112233"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	r := cfg.Resolve()
	if r.FontFamily != "Times-Roman" || r.CardsPerRow != 3 {
		t.Errorf("resolved = %+v", r)
	}
	if r.Primary != (RGB{0x11, 0x22, 0x33}) {
		t.Errorf("Primary = %v", r.Primary)
	}
}

func TestLoadFileTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.toml")
	content := "font_family = \"Courier\"\ncard_width = 3.5\n\n[color_scheme]\naccent_color = \"#ABCDEF\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	r := cfg.Resolve()
	if r.FontFamily != "Courier" || r.CardWidth != 3.5 {
		t.Errorf("resolved = %+v", r)
	}
	if r.Accent != (RGB{0xAB, 0xCD, 0xEF}) {
		t.Errorf("Accent = %v", r.Accent)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
