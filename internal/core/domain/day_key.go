package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDayKey = errors.New("invalid day key (must be YYYY-MM-DD)")
)

const DayKeyLayout = "2006-01-02"

// DayKey identifies a local calendar day as YYYY-MM-DD.
type DayKey string

// TodayKey returns the calendar day containing now, in now's own location.
// The offset is applied before formatting, so every instant inside the same
// local day maps to the same key, DST transitions included.
func TodayKey(now time.Time) DayKey {
	return DayKey(now.Format(DayKeyLayout))
}

func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(DayKeyLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayKey, s)
	}
	return DayKey(t.Format(DayKeyLayout)), nil
}

// PreviousDayKey returns the day before d. An invalid key yields the empty key.
func PreviousDayKey(d DayKey) DayKey {
	return AddDays(d, -1)
}

// AddDays shifts d by n calendar days. Arithmetic runs on a UTC date so that
// month, year and leap-day boundaries are handled by the calendar alone.
func AddDays(d DayKey, n int) DayKey {
	t, ok := d.Date()
	if !ok {
		return ""
	}
	return DayKey(t.AddDate(0, 0, n).Format(DayKeyLayout))
}

// Date returns midnight UTC of the day.
func (d DayKey) Date() (time.Time, bool) {
	t, err := time.Parse(DayKeyLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d DayKey) Valid() bool {
	_, ok := d.Date()
	return ok
}

func (d DayKey) Weekday() time.Weekday {
	t, _ := d.Date()
	return t.Weekday()
}

func (d DayKey) String() string {
	return string(d)
}

// DayProgress is the share of now's calendar day already elapsed, in percent,
// measured against a 24h day.
func DayProgress(now time.Time) float64 {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return now.Sub(start).Hours() / 24 * 100
}

// YearProgress is the share of now's calendar year already elapsed, in percent.
func YearProgress(now time.Time) float64 {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(1, 0, 0)
	return float64(now.Sub(start)) / float64(end.Sub(start)) * 100
}
