package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	d := New(2025, time.September, 10) // a Wednesday
	testCases := []struct {
		period Period
		want   Range
	}{
		{Daily, Range{From: d, To: d}},
		{Weekly, Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)}},
		{Monthly, Range{From: New(2025, time.September, 1), To: New(2025, time.September, 30)}},
		{Quarterly, Range{From: New(2025, time.July, 1), To: New(2025, time.September, 30)}},
		{Yearly, Range{From: New(2025, time.January, 1), To: New(2025, time.December, 31)}},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := NewRange(d, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", d, tc.period, got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"day": Daily, "Week": Weekly, "monthly": Monthly, "quarter": Quarterly, "YEAR": Yearly} {
		got, err := ParsePeriod(in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Errorf("ParsePeriod(fortnight) should fail")
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{From: New(2024, time.January, 1), To: New(2024, time.January, 31)}
	testCases := []struct {
		name string
		r    Range
		on   Date
		want bool
	}{
		{"lower bound", r, New(2024, time.January, 1), true},
		{"upper bound", r, New(2024, time.January, 31), true},
		{"before", r, New(2023, time.December, 31), false},
		{"after", r, New(2024, time.February, 1), false},
		{"open range", Range{}, New(1999, time.June, 6), true},
		{"open start", Range{To: r.To}, New(1999, time.June, 6), true},
		{"open end", Range{From: r.From}, New(1999, time.June, 6), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Contains(tc.on); got != tc.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tc.r, tc.on, got, tc.want)
			}
		})
	}
}
