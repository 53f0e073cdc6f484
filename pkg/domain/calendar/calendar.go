// Package calendar provides day-granularity date helpers for the planning
// engine. All dates are normalized to UTC midnight so day arithmetic is exact
// across DST boundaries.
package calendar

import (
	"fmt"
	"time"
)

// ISO layout used on the wire.
const dateLayout = "2006-01-02"

// monthLayout accepts month buckets ("2025-07"), resolved to the first day.
const monthLayout = "2006-01"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseFlexible parses either a full date (YYYY-MM-DD) or a month bucket
// (YYYY-MM). Month buckets resolve to the first day of the month.
func ParseFlexible(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(monthLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or YYYY-MM", s)
	}
	return t, nil
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(dateLayout)
}

// MonthKey renders the YYYY-MM bucket a date falls in.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// Midnight truncates a time to UTC midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// PeriodDays returns the inclusive day count of [start, end].
func PeriodDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}

// MinDate returns the earlier of two dates.
func MinDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// MaxDate returns the later of two dates.
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// EachDay calls fn for every day in [start, end] in order.
func EachDay(start, end time.Time, fn func(day time.Time)) {
	for d := Midnight(start); !d.After(Midnight(end)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
