// Package booking defines the booking record model and ingestion helpers.
//
// Records are immutable once read: the layout engine never mutates them and
// renders duplicates independently. Normalization (name capitalization,
// table-number cleanup, service filtering) happens here, before records
// reach the layout engine.
package booking

import (
	"regexp"
	"strings"
	"time"
)

// Record is a single booking: one guest, one placecard.
//
// Name, TableNumber, and BookingTime are required. TableNumber is an opaque
// label, not validated as an integer. PartySize and Service are optional
// columns carried through from the source data.
type Record struct {
	Name        string `json:"name"`
	TableNumber string `json:"table_number"`
	BookingTime string `json:"booking_time"`
	PartySize   string `json:"party_size,omitempty"`
	Service     string `json:"service,omitempty"`
}

// lowercase particles kept capitalized like regular words; listed separately
// so the set is easy to extend when a new prefix shows up in booking data.
var nameParticles = map[string]bool{
	"mc": true, "mac": true, "o'": true, "de": true,
	"van": true, "von": true, "la": true, "le": true,
}

// NormalizeName returns a display-ready guest name.
// Empty names become "Guest"; "walk in" (any case) becomes "Walk In";
// everything else is title-cased word by word.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Guest"
	}
	if strings.EqualFold(name, "walk in") {
		return "Walk In"
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r := []rune(strings.ToLower(w))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

var tableDigits = regexp.MustCompile(`\d+`)

// CleanTables extracts table numbers from a raw table label.
// Comma-separated entries are reduced to their first run of digits
// ("T5, T12a" becomes "5,12"). Labels with no digits pass through "TBD".
func CleanTables(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "TBD"
	}

	var cleaned []string
	for _, part := range strings.Split(raw, ",") {
		if num := tableDigits.FindString(part); num != "" {
			cleaned = append(cleaned, num)
		}
	}
	if len(cleaned) == 0 {
		return "TBD"
	}
	return strings.Join(cleaned, ",")
}

// clockFormats are the booking time layouts accepted by TimeRange,
// tried in order.
var clockFormats = []string{
	"3:04 PM", // 7:30 PM
	"15:04",   // 19:30
	"3PM",     // 7PM
	"3:04PM",  // 7:30PM (no space)
}

// seatingDuration is the assumed length of a booking when deriving the
// displayed time range.
const seatingDuration = 2 * time.Hour

// TimeRange derives the "7:30 PM - 9:30 PM" display line from a booking time.
// Times that fail to parse in any known format are echoed verbatim on both
// sides of the range rather than rejected.
func TimeRange(bookingTime string) string {
	trimmed := strings.TrimSpace(bookingTime)
	if trimmed == "" {
		return ""
	}

	var start time.Time
	parsed := false
	for _, layout := range clockFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			start = t
			parsed = true
			break
		}
	}
	if !parsed {
		return bookingTime + " - " + bookingTime
	}

	end := start.Add(seatingDuration)
	return start.Format("3:04 PM") + " - " + end.Format("3:04 PM")
}

// MatchesService reports whether the record belongs to the given service
// period. An empty or "all" filter matches everything; otherwise the record's
// service field must contain the filter term, case-insensitively.
func (r Record) MatchesService(service string) bool {
	if service == "" || strings.EqualFold(service, "all") {
		return true
	}
	return strings.Contains(strings.ToLower(r.Service), strings.ToLower(service))
}

// Services returns the distinct service labels present in the records, in
// first-seen order. Labels differing only in case collapse to the first
// spelling.
func Services(records []Record) []string {
	seen := make(map[string]bool)
	var services []string
	for _, r := range records {
		s := strings.TrimSpace(r.Service)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if !seen[key] {
			seen[key] = true
			services = append(services, s)
		}
	}
	return services
}

// FilterService returns the records matching the given service period,
// preserving input order.
func FilterService(records []Record, service string) []Record {
	if service == "" || strings.EqualFold(service, "all") {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.MatchesService(service) {
			out = append(out, r)
		}
	}
	return out
}
