// Package salarycal implements the salary-month calendar: a budgeting
// period that runs from the 23rd of one month through the 22nd of the
// next, identified by the year and month the period starts in.
//
// All arithmetic operates on local calendar fields only; dates are
// normalized to UTC midnight internally so whole-day math is exact and
// never crosses a timezone or DST boundary.
package salarycal

import (
	"fmt"
	"time"
)

// PeriodStartDay is the day of month a new budgeting period begins on.
const PeriodStartDay = 23

const (
	periodKeyLayout = "2006-01"
	dayKeyLayout    = "2006-01-02"
)

// PeriodKey identifies a budgeting period by its starting month.
type PeriodKey struct {
	Year  int
	Month time.Month
}

// String renders the key in sortable YYYY-MM form.
func (k PeriodKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Before reports whether k starts before other.
func (k PeriodKey) Before(other PeriodKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// ParsePeriodKey parses a YYYY-MM string back into a PeriodKey.
func ParsePeriodKey(s string) (PeriodKey, error) {
	t, err := time.Parse(periodKeyLayout, s)
	if err != nil {
		return PeriodKey{}, fmt.Errorf("invalid period key %q: %w", s, err)
	}
	return PeriodKey{Year: t.Year(), Month: t.Month()}, nil
}

// PeriodOf returns the key of the period containing the given date.
// Days before the 23rd belong to the period started in the previous month.
func PeriodOf(t time.Time) PeriodKey {
	year, month := t.Year(), t.Month()
	if t.Day() < PeriodStartDay {
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}
	return PeriodKey{Year: year, Month: month}
}

// RangeOf returns the inclusive bounds of a period: the 23rd of the
// starting month at 00:00:00 through the 22nd of the following month at
// 23:59:59. Month and year rollover is handled by time.Date
// normalization.
func RangeOf(k PeriodKey) (start, end time.Time) {
	start = time.Date(k.Year, k.Month, PeriodStartDay, 0, 0, 0, 0, time.UTC)
	end = time.Date(k.Year, k.Month+1, PeriodStartDay-1, 23, 59, 59, 0, time.UTC)
	return start, end
}

// Contains reports whether the date falls inside the period, inclusive
// on both ends.
func Contains(t time.Time, k PeriodKey) bool {
	start, end := RangeOf(k)
	d := dateOnly(t)
	return !d.Before(start) && !d.After(end)
}

// DayIndex returns the 1-based position of the date within its own
// period. The 23rd itself is day 1.
func DayIndex(t time.Time) int {
	start, _ := RangeOf(PeriodOf(t))
	return wholeDays(start, dateOnly(t)) + 1
}

// Length returns the number of days in the period, 28 to 31 depending
// on the months spanned.
func Length(k PeriodKey) int {
	start, end := RangeOf(k)
	return wholeDays(start, dateOnly(end)) + 1
}

// DayKey renders a date as a sortable YYYY-MM-DD string.
func DayKey(t time.Time) string {
	return dateOnly(t).Format(dayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD string back into a date at midnight.
func ParseDayKey(s string) (time.Time, error) {
	t, err := time.Parse(dayKeyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return t, nil
}

// dateOnly truncates a timestamp to its calendar date at UTC midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// wholeDays counts whole days from a to b, both at UTC midnight.
func wholeDays(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
