package booking

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/brewvino/placecards/pkg/errors"
)

// Required CSV column names.
const (
	ColName        = "name"
	ColTableNumber = "table_number"
	ColBookingTime = "booking_time"
)

// Optional CSV column names.
const (
	ColPartySize = "party_size"
	ColService   = "service"
)

var requiredColumns = []string{ColName, ColTableNumber, ColBookingTime}

// ReadCSV reads booking records from CSV data.
//
// The header row must contain the name, table_number, and booking_time
// columns (case-insensitive, extra columns ignored); party_size and service
// are picked up when present. Guest names are normalized and table labels
// cleaned as records are read. A header-only file yields zero records and
// no error.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty CSV: missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV header")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"missing required columns: %s", strings.Join(missing, ", "))
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV row %d", len(records)+2)
		}

		records = append(records, Record{
			Name:        NormalizeName(field(row, ColName)),
			TableNumber: CleanTables(field(row, ColTableNumber)),
			BookingTime: field(row, ColBookingTime),
			PartySize:   field(row, ColPartySize),
			Service:     field(row, ColService),
		})
	}

	return records, nil
}

// ReadFile reads booking records from a CSV file on disk.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "bookings file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open bookings file %s", path)
	}
	defer f.Close()

	return ReadCSV(f)
}

// HasService reports whether any record carries a service label.
// Used to decide whether a service filter makes sense for this data set.
func HasService(records []Record) bool {
	for _, r := range records {
		if r.Service != "" {
			return true
		}
	}
	return false
}
