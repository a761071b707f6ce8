package booking

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john smith", "John Smith"},
		{"JANE DOE", "Jane Doe"},
		{"  mike  johnson ", "Mike Johnson"},
		{"walk in", "Walk In"},
		{"WALK IN", "Walk In"},
		{"", "Guest"},
		{"   ", "Guest"},
		{"o'brien", "O'brien"},
		{"van der berg", "Van Der Berg"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTables(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5", "5"},
		{"T5", "5"},
		{"T5, T12", "5,12"},
		{"12a", "12"},
		{"patio", "TBD"},
		{"", "TBD"},
		{"T5, patio, 8", "5,8"},
	}

	for _, tt := range tests {
		if got := CleanTables(tt.in); got != tt.want {
			t.Errorf("CleanTables(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimeRange(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7:30 PM", "7:30 PM - 9:30 PM"},
		{"19:30", "7:30 PM - 9:30 PM"},
		{"7PM", "7:00 PM - 9:00 PM"},
		{"7:30PM", "7:30 PM - 9:30 PM"},
		{"11:00 PM", "11:00 PM - 1:00 AM"},
		{"sometime", "sometime - sometime"},
	}

	for _, tt := range tests {
		if got := TimeRange(tt.in); got != tt.want {
			t.Errorf("TimeRange(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterService(t *testing.T) {
	records := []Record{
		{Name: "A", Service: "Dinner Service"},
		{Name: "B", Service: "Lunch"},
		{Name: "C", Service: "dinner"},
		{Name: "D"},
	}

	if got := FilterService(records, ""); len(got) != 4 {
		t.Errorf("empty filter: got %d records, want 4", len(got))
	}
	if got := FilterService(records, "all"); len(got) != 4 {
		t.Errorf("all filter: got %d records, want 4", len(got))
	}

	dinner := FilterService(records, "dinner")
	if len(dinner) != 2 || dinner[0].Name != "A" || dinner[1].Name != "C" {
		t.Errorf("dinner filter: got %+v", dinner)
	}

	lunch := FilterService(records, "Lunch")
	if len(lunch) != 1 || lunch[0].Name != "B" {
		t.Errorf("lunch filter: got %+v", lunch)
	}
}
