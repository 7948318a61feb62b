package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

func TestTodayKey(t *testing.T) {
	t.Run("Success: Uses the local calendar day, not the UTC day", func(t *testing.T) {
		loc := time.FixedZone("UTC+9", 9*60*60)
		// 2024-06-01 20:30 UTC is already 2024-06-02 in UTC+9.
		now := time.Date(2024, 6, 1, 20, 30, 0, 0, time.UTC).In(loc)

		assert.Equal(t, domain.DayKey("2024-06-02"), domain.TodayKey(now))
	})

	t.Run("Success: Same key on both sides of a DST shift", func(t *testing.T) {
		loc, err := time.LoadLocation("Europe/Rome")
		if err != nil {
			t.Skipf("tzdata unavailable: %v", err)
		}

		before := time.Date(2024, 3, 31, 1, 30, 0, 0, loc)
		after := time.Date(2024, 3, 31, 23, 59, 0, 0, loc)

		assert.Equal(t, domain.TodayKey(before), domain.TodayKey(after))
		assert.Equal(t, domain.DayKey("2024-03-31"), domain.TodayKey(after))
	})
}

func TestPreviousDayKey(t *testing.T) {
	tests := []struct {
		name string
		day  domain.DayKey
		want domain.DayKey
	}{
		{"Mid month", "2024-06-10", "2024-06-09"},
		{"Leap year February", "2024-03-01", "2024-02-29"},
		{"Non leap year February", "2023-03-01", "2023-02-28"},
		{"Year boundary", "2024-01-01", "2023-12-31"},
		{"Thirty day month", "2024-05-01", "2024-04-30"},
		{"Invalid key yields empty", "not-a-day", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.PreviousDayKey(tt.day))
		})
	}

	t.Run("Three steps back cross month and year", func(t *testing.T) {
		d := domain.DayKey("2024-01-02")
		got := domain.PreviousDayKey(domain.PreviousDayKey(domain.PreviousDayKey(d)))
		assert.Equal(t, domain.DayKey("2023-12-30"), got)
	})
}

func TestParseDayKey(t *testing.T) {
	d, err := domain.ParseDayKey(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, domain.DayKey("2024-02-29"), d)
	assert.Equal(t, time.Thursday, d.Weekday())

	_, err = domain.ParseDayKey("2023-02-29")
	assert.ErrorIs(t, err, domain.ErrInvalidDayKey)

	_, err = domain.ParseDayKey("06/01/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDayKey)
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, domain.DayKey("2025-06-09"), domain.AddDays("2024-06-10", 364))
	assert.Equal(t, domain.DayKey("2023-06-12"), domain.AddDays("2024-06-10", -364))
	assert.False(t, domain.DayKey("").Valid())
}

func TestProgress(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	t.Run("Day progress follows the local clock", func(t *testing.T) {
		assert.InDelta(t, 0, domain.DayProgress(time.Date(2024, 6, 10, 0, 0, 0, 0, loc)), 1e-9)
		assert.InDelta(t, 50, domain.DayProgress(time.Date(2024, 6, 10, 12, 0, 0, 0, loc)), 1e-9)
		assert.InDelta(t, 75, domain.DayProgress(time.Date(2024, 6, 10, 18, 0, 0, 0, loc)), 1e-9)
	})

	t.Run("Year progress accounts for leap years", func(t *testing.T) {
		assert.InDelta(t, 0, domain.YearProgress(time.Date(2024, 1, 1, 0, 0, 0, 0, loc)), 1e-9)
		// 2024-07-02 00:00 is day 183 of 366.
		assert.InDelta(t, 50, domain.YearProgress(time.Date(2024, 7, 2, 0, 0, 0, 0, loc)), 1e-9)
		assert.InDelta(t, 100.0*181/365, domain.YearProgress(time.Date(2023, 7, 1, 0, 0, 0, 0, loc)), 1e-9)
	})
}
