// Package dateutil holds the pure date and time helpers used by the widget.
// Everything works on local calendar fields, never UTC, so a customer booking
// near midnight never sees the date shift by a day.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDate renders d as YYYY-MM-DD using local calendar fields.
func FormatDate(d time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}

// ParseDate parses a YYYY-MM-DD string to local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// DatesInMonth returns every calendar day of the month in order.
func DatesInMonth(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	var dates []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// FirstDayOfMonth returns the weekday index of the 1st (Sunday = 0),
// used to left-pad the calendar grid.
func FirstDayOfMonth(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday())
}

// Midnight truncates t to local midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsFutureDate reports whether date is bookable relative to now.
// Today counts as bookable.
func IsFutureDate(date, now time.Time) bool {
	return !date.Before(Midnight(now))
}

// IsToday reports whether date falls on the same local calendar day as now.
func IsToday(date, now time.Time) bool {
	return date.Year() == now.Year() && date.Month() == now.Month() && date.Day() == now.Day()
}

// GenerateTimeSlots returns the full-day 30-minute slot grid, 00:00 through 23:30.
func GenerateTimeSlots() []string {
	slots := make([]string, 0, 48)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// FormatTimeDisplay converts an HH:MM string to 12-hour display form,
// e.g. "00:00" -> "12:00 AM", "13:30" -> "1:30 PM".
func FormatTimeDisplay(time24 string) string {
	hour, minute, ok := SplitTime(time24)
	if !ok {
		return time24
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour > 12:
		display = hour - 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// SplitTime parses an HH:MM string into its hour and minute components.
func SplitTime(time24 string) (hour, minute int, ok bool) {
	parts := strings.SplitN(time24, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// MonthName returns the English month name.
func MonthName(month time.Month) string {
	return month.String()
}

// DayNames returns the calendar header labels, Sunday first.
func DayNames() []string {
	return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
}
