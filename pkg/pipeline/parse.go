package pipeline

import (
	"bytes"

	"github.com/brewvino/placecards/pkg/booking"
)

// Parse produces the booking set for a run: CSV content is decoded and
// normalized, pre-parsed records pass through untouched. The service filter
// applies in both cases.
func Parse(opts Options) ([]booking.Record, error) {
	records := opts.Records
	if records == nil {
		parsed, err := booking.ReadCSV(bytes.NewReader(opts.CSV))
		if err != nil {
			return nil, err
		}
		records = parsed
	}
	return booking.FilterService(records, opts.Service), nil
}
