package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brewvino/placecards/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q, should honor XDG_CACHE_HOME", dir)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{pipeline.FormatPDF}},
		{"pdf", []string{"pdf"}},
		{"pdf,json,txt", []string{"pdf", "json", "txt"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "bookings.csv", "bookings"},
		{"", "bookings.layout.json", "bookings.layout"},
		{"out.pdf", "bookings.csv", "out"},
		{"dinner", "bookings.csv", "dinner"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bookings.csv")
	csv := "name,table_number,booking_time\njohn smith,T5,7:30 PM\n"
	if err := os.WriteFile(input, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"generate", input, "-f", "txt"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "bookings.txt"))
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if !strings.Contains(string(out), "John Smith") {
		t.Errorf("output missing normalized guest name:\n%s", out)
	}
}

func TestLayoutThenRenderCommands(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bookings.csv")
	csv := "name,table_number,booking_time\nada lovelace,3,6:00 PM\n"
	if err := os.WriteFile(input, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	c := New(io.Discard, LogInfo)

	root := c.RootCommand()
	root.SetArgs([]string{"layout", input})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout failed: %v", err)
	}

	layoutFile := filepath.Join(dir, "bookings.layout.json")
	if _, err := os.Stat(layoutFile); err != nil {
		t.Fatalf("expected layout file: %v", err)
	}

	root = c.RootCommand()
	root.SetArgs([]string{"render", layoutFile, "-f", "pdf", "-o", filepath.Join(dir, "out.pdf")})
	if err := root.Execute(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "out.pdf"))
	if err != nil {
		t.Fatalf("expected pdf output: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Error("output is not a PDF")
	}
}

func TestGenerateCommandMissingInput(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"generate", "/nonexistent/bookings.csv", "-f", "txt"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("missing input file should fail")
	}
}
