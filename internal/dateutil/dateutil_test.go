package dateutil

import (
	"testing"
	"time"
)

func TestFormatDateParseDateRoundTrip(t *testing.T) {
	for _, s := range []string{"2026-01-01", "2026-02-28", "2026-09-05", "2026-12-31", "2028-02-29"} {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", s, err)
		}
		if got := FormatDate(d); got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestParseDateLocalMidnight(t *testing.T) {
	d, err := ParseDate("2026-09-05")
	if err != nil {
		t.Fatal(err)
	}
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
		t.Errorf("expected local midnight, got %s", d)
	}
	if d.Location() != time.Local {
		t.Errorf("expected local location, got %s", d.Location())
	}
}

func TestDatesInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tc := range cases {
		dates := DatesInMonth(tc.year, tc.month)
		if len(dates) != tc.days {
			t.Errorf("%s %d: expected %d days, got %d", tc.month, tc.year, tc.days, len(dates))
			continue
		}
		for i, d := range dates {
			if d.Day() != i+1 {
				t.Errorf("%s %d: day %d out of order (got %d)", tc.month, tc.year, i+1, d.Day())
			}
			if d.Month() != tc.month || d.Year() != tc.year {
				t.Errorf("%s %d: date %s escaped the month", tc.month, tc.year, FormatDate(d))
			}
		}
	}
}

func TestFirstDayOfMonth(t *testing.T) {
	// 2026-09-01 is a Tuesday.
	if got := FirstDayOfMonth(2026, time.September); got != 2 {
		t.Errorf("expected 2 (Tuesday), got %d", got)
	}
	// 2026-02-01 is a Sunday.
	if got := FirstDayOfMonth(2026, time.February); got != 0 {
		t.Errorf("expected 0 (Sunday), got %d", got)
	}
}

func TestIsFutureDate(t *testing.T) {
	now := time.Date(2026, time.September, 5, 15, 30, 0, 0, time.Local)
	cases := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local), true}, // today counts
		{time.Date(2026, time.September, 6, 0, 0, 0, 0, time.Local), true},
		{time.Date(2026, time.September, 4, 0, 0, 0, 0, time.Local), false},
	}
	for _, tc := range cases {
		if got := IsFutureDate(tc.date, now); got != tc.want {
			t.Errorf("IsFutureDate(%s): got %v, want %v", FormatDate(tc.date), got, tc.want)
		}
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2026, time.September, 5, 23, 59, 0, 0, time.Local)
	if !IsToday(time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local), now) {
		t.Error("expected same calendar day to be today")
	}
	if IsToday(time.Date(2026, time.September, 6, 0, 0, 0, 0, time.Local), now) {
		t.Error("tomorrow is not today")
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	slots := GenerateTimeSlots()
	if len(slots) != 48 {
		t.Fatalf("expected 48 slots, got %d", len(slots))
	}
	if slots[0] != "00:00" {
		t.Errorf("first slot: got %q", slots[0])
	}
	if slots[47] != "23:30" {
		t.Errorf("last slot: got %q", slots[47])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Errorf("slots out of order at %d: %q <= %q", i, slots[i], slots[i-1])
		}
	}
}

func TestFormatTimeDisplay(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"09:05", "9:05 AM"},
		{"12:00", "12:00 PM"},
		{"13:30", "1:30 PM"},
		{"23:45", "11:45 PM"},
	}
	for _, tc := range cases {
		if got := FormatTimeDisplay(tc.in); got != tc.want {
			t.Errorf("FormatTimeDisplay(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
