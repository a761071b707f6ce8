package pipeline

import (
	"github.com/brewvino/placecards/pkg/cards"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/render/sink"
)

// RenderFromLayout renders the layout in every requested format and returns
// the artifacts keyed by format name.
func RenderFromLayout(l cards.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithDocTitle(opts.Title))
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatText:
			data, err = sink.RenderText(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
