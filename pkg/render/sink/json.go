package sink

import "github.com/brewvino/placecards/pkg/cards"

// ============================================================================
// JSON SINK
// ============================================================================

// RenderJSON serializes the layout as the JSON interchange document. The
// output round-trips through cards.UnmarshalLayout, so it doubles as an
// export format and as the input to a later render step.
func RenderJSON(l cards.Layout) ([]byte, error) {
	return cards.MarshalLayout(l)
}
