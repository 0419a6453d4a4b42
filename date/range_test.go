package date

import (
	"testing"
	"time"
)

func TestRangeString(t *testing.T) {
	jan1 := New(2024, time.January, 1)
	jan31 := New(2024, time.January, 31)
	testCases := []struct {
		r    Range
		want string
	}{
		{Range{}, "all dates"},
		{Range{To: jan31}, "until 2024-01-31"},
		{Range{From: jan1}, "since 2024-01-01"},
		{Range{From: jan1, To: jan1}, "2024-01-01"},
		{Range{From: jan1, To: jan31}, "2024-01-01 to 2024-01-31"},
	}
	for _, tc := range testCases {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.r, got, tc.want)
		}
	}
}

func TestRangeIsZero(t *testing.T) {
	if !(Range{}).IsZero() {
		t.Error("Range{}.IsZero() = false, want true")
	}
	if (Range{From: New(2024, time.January, 1)}).IsZero() {
		t.Error("half open range IsZero() = true, want false")
	}
}
