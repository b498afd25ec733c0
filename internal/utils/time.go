package utils

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	layoutDate = "2006-01-02"
	layoutTime = "15:04"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, NormalizeDate(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// NormalizeDate trims a date string and drops any time suffix
// ("2025-01-10T08:00:00Z" -> "2025-01-10").
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "T"); i > 0 {
		return s[:i]
	}
	return s
}

// CombineDateTime builds a local timestamp out of a YYYY-MM-DD date and an
// HH:MM unit time. A missing or malformed time defaults to midnight.
func CombineDateTime(date, unitTime string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layoutTime, strings.TrimSpace(unitTime))
	if err != nil {
		return d, nil
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// StartOfDay returns midnight for the given instant in local time.
func StartOfDay(t time.Time) time.Time {
	return now.New(t.In(time.Local)).BeginningOfDay()
}

// EndOfDay returns the last instant of the day in local time.
func EndOfDay(t time.Time) time.Time {
	return now.New(t.In(time.Local)).EndOfDay()
}
