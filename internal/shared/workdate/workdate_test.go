package workdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{1900, 2, 28},
		{2000, 2, 29},
		{2025, 1, 31},
		{2025, 4, 30},
		{2025, 12, 31},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2025-01-10")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), got)

	got, err = Parse("2025-01-10T17:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = Parse("10/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestInUsesLocalCalendarDay(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*3600)
	instant := time.Date(2025, 1, 9, 18, 30, 0, 0, time.UTC) // 01:30 on the 10th in Bangkok

	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), In(instant, bangkok))
	assert.Equal(t, "01:30", Clock(instant, bangkok))
}

func TestParseYearMonth(t *testing.T) {
	y, m, err := ParseYearMonth("2025", "1")
	assert.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 1, m)

	_, _, err = ParseYearMonth("2025", "13")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, _, err = ParseYearMonth("2025", "0")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, _, err = ParseYearMonth("abc", "2")
	assert.ErrorIs(t, err, ErrInvalidYear)

	_, _, err = ParseYearMonth("2025", "1.5")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, 12)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
