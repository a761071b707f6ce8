package cards

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/brewvino/placecards/pkg/style"
)

// Layout is the serialization format for a computed card layout.
//
// It bundles the resolved style with the page sequence so a layout file is
// self-contained: the render step needs nothing beyond this document to
// produce output. This is the interchange format between the `layout` and
// `render` commands and the unit cached by the pipeline.
type Layout struct {
	Style style.Resolved `json:"style"`
	Pages []Page         `json:"pages"`
}

// SlotCount returns the total number of card slots across all pages.
func (l Layout) SlotCount() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p.Slots)
	}
	return n
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks basic
// structural sanity. A layout with zero pages is valid: it represents
// "nothing to render".
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	for _, p := range l.Pages {
		if p.Width <= 0 || p.Height <= 0 {
			return Layout{}, fmt.Errorf("page %d has invalid dimensions %gx%g", p.Number, p.Width, p.Height)
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
