// Package workdate handles calendar days for attendance, leave and day
// status. A work date is always stored as midnight UTC so the DATE column
// never drifts with the server or client timezone.
package workdate

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidYear  = errors.New("invalid year")
	ErrInvalidMonth = errors.New("invalid month")
)

// Parse accepts YYYY-MM-DD or an RFC3339 timestamp and returns the UTC
// midnight of that calendar day.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return Normalize(t), nil
}

// Normalize drops the time of day, keeping the UTC calendar date.
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// In returns the work date of instant t as seen in loc.
func In(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Clock formats an instant as HH:mm in loc.
func Clock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// DaysInMonth uses day 0 of the next month, so leap years come for free.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns [first day, first day of next month).
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Day returns the work date for day d of the month.
func Day(year, month, d int) time.Time {
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

// ParseYearMonth validates raw query values: both must be integers, year in
// 1..9999 and month in 1..12.
func ParseYearMonth(yearStr, monthStr string) (int, int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, ErrInvalidYear
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrInvalidMonth
	}
	return year, month, nil
}

// LoadLocation falls back to UTC for an empty name.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
