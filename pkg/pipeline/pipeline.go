// Package pipeline provides the core placecard generation pipeline.
//
// This package implements the complete parse → layout → render pipeline that
// is shared by the CLI and the HTTP server. Centralizing this logic keeps
// behavior identical across entry points and gives both the same caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read booking records from CSV and apply the service filter
//  2. Layout: Place one card slot per record on a paginated grid
//  3. Render: Draw the layout in the requested output formats (PDF, JSON, text)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    CSV:     csvBytes,
//	    Service: "dinner",
//	    Formats: []string{"pdf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/brewvino/placecards/pkg/booking"
	"github.com/brewvino/placecards/pkg/cache"
	"github.com/brewvino/placecards/pkg/cards"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultTitle is the PDF document title when none is configured.
const DefaultTitle = "Placecards"

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one of CSV or Records must be set: CSV is the
	// raw file content, Records a pre-parsed booking set.
	CSV     []byte           `json:"csv,omitempty"`
	Records []booking.Record `json:"records,omitempty"`
	Service string           `json:"service,omitempty"` // lunch/dinner filter, empty = all

	// Layout options
	Style style.Config `json:"style,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"` // PDF document metadata

	// Refresh bypasses the cache for every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// resolved style, populated by ValidateAndSetDefaults.
	resolved style.Resolved

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records is the parsed, filtered booking set.
	Records []booking.Record

	// RecordsHash is the content hash of the parsed records.
	RecordsHash string

	// Layout is the computed card layout.
	Layout cards.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount int
	PageCount   int
	ParseTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether parsed records came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: pdf, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.CSV == nil && o.Records == nil {
		return errors.New(errors.ErrCodeInvalidInput, "csv or records is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults resolves the style configuration.
func (o *Options) SetLayoutDefaults() {
	if o.resolved == (style.Resolved{}) {
		o.resolved = o.Style.Resolve()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Resolved returns the resolved style, resolving it on first use.
func (o *Options) Resolved() style.Resolved {
	o.SetLayoutDefaults()
	return o.resolved
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	data, _ := json.Marshal(o.Resolved())
	return cache.LayoutKeyOpts{StyleHash: cache.Hash(data)}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
