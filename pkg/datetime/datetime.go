// Package datetime provides date-only values and deposit tenure arithmetic.
// All dates are UTC and serialize as YYYY-MM-DD.
package datetime

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DateFormat is the standard date-only format (YYYY-MM-DD).
const DateFormat = "2006-01-02"

// ErrDateOrder is returned when an end date precedes its start date.
var ErrDateOrder = errors.New("end date is before start date")

// Date represents a date-only value (no time component).
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns today's date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateFormat))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}

	t, err := time.Parse(DateFormat, s)
	if err == nil {
		d.Time = t
		return nil
	}

	// Fall back to RFC3339 (extract date portion)
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}

	return err
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateFormat)
}

// MonthsBetween counts completed calendar months from start to end.
// A month completes on the same day-of-month; when that day does not exist in the
// end month (e.g. 31st to 30th) the last day of the month completes it.
func MonthsBetween(start, end Date) (int, error) {
	if end.Before(start.Time) {
		return 0, ErrDateOrder
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	if end.Day() < start.Day() && end.Day() != daysIn(end.Year(), end.Month()) {
		months--
	}
	return months, nil
}

// AddMonths returns d shifted by n months, clamped to the end of the target month.
func AddMonths(d Date, n int) Date {
	first := time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := min(d.Day(), daysIn(first.Year(), first.Month()))
	return NewDate(first.Year(), first.Month(), day)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
