package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/brewvino/placecards/pkg/booking"
	"github.com/brewvino/placecards/pkg/cache"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/style"
)

const sampleCSV = `name,table_number,booking_time,party_size,service
john smith,T5,7:30 PM,4,Dinner
jane doe,12,6:00 PM,2,Dinner
walk in,,12:15 PM,3,Lunch
`

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatPDF, FormatJSON, FormatText} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}

	err := ValidateFormat("svg")
	if err == nil {
		t.Fatal("unknown format should be rejected")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %q, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestOptionsValidation(t *testing.T) {
	// No input at all
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("options without csv or records should be rejected")
	}

	// CSV input with defaults
	opts = Options{CSV: []byte(sampleCSV)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPDF {
		t.Errorf("default formats = %v, want [pdf]", opts.Formats)
	}
	if opts.Title != DefaultTitle {
		t.Errorf("default title = %q", opts.Title)
	}

	// Idempotent
	before := opts.Formats
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validation failed: %v", err)
	}
	if len(opts.Formats) != len(before) {
		t.Error("revalidation should not change options")
	}
}

func TestParseFiltersService(t *testing.T) {
	records, err := Parse(Options{CSV: []byte(sampleCSV), Service: "dinner"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, rec := range records {
		if !strings.EqualFold(rec.Service, "dinner") {
			t.Errorf("record %q has service %q", rec.Name, rec.Service)
		}
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		CSV:     []byte(sampleCSV),
		Formats: []string{FormatJSON, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Stats.RecordCount != 3 {
		t.Errorf("RecordCount = %d, want 3", result.Stats.RecordCount)
	}
	if result.Stats.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", result.Stats.PageCount)
	}
	if result.RecordsHash == "" {
		t.Error("RecordsHash should be set")
	}
	for _, f := range []string{FormatJSON, FormatText} {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}

	// Names are normalized on the way in.
	if result.Records[0].Name != "John Smith" {
		t.Errorf("Name = %q, want normalized", result.Records[0].Name)
	}
	if result.Records[2].Name != "Walk In" {
		t.Errorf("Name = %q, want Walk In", result.Records[2].Name)
	}
}

func TestExecuteEmptyCSV(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		CSV:     []byte("name,table_number,booking_time\n"),
		Formats: []string{FormatText},
	})
	if err != nil {
		t.Fatalf("header-only input should not fail: %v", err)
	}
	if result.Stats.PageCount != 0 {
		t.Errorf("PageCount = %d, want 0", result.Stats.PageCount)
	}
}

func TestExecutePreParsedRecords(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Records: []booking.Record{{Name: "Ada", TableNumber: "1", BookingTime: "6PM"}},
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Stats.RecordCount != 1 {
		t.Errorf("RecordCount = %d, want 1", result.Stats.RecordCount)
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{CSV: []byte(sampleCSV), Formats: []string{FormatJSON}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute failed: %v", err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss on every stage")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if !second.CacheInfo.ParseHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit every stage, got %+v", second.CacheInfo)
	}
	if string(second.Artifacts[FormatJSON]) != string(first.Artifacts[FormatJSON]) {
		t.Error("cached artifact should match the original")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute failed: %v", err)
	}
	if third.CacheInfo.ParseHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run should not hit the cache, got %+v", third.CacheInfo)
	}
}

func TestExecuteBadStyle(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	zero := 0
	_, err := runner.Execute(context.Background(), Options{
		CSV:     []byte(sampleCSV),
		Style:   style.Config{CardsPerRow: &zero},
		Formats: []string{FormatText},
	})
	if err == nil {
		t.Fatal("explicit zero cards_per_row should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
	}
}
