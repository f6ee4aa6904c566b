package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePayPeriodRange_SlashRange(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	start, end, ok := ParsePayPeriodRange("06/01 - 06/07", now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC), end)
}

func TestParsePayPeriodRange_UnderscoreToken(t *testing.T) {
	start, end, ok := ParsePayPeriodRange("06_01_26", time.Now())
	assert.True(t, ok)
	assert.Equal(t, start, end)
	assert.Equal(t, 2026, start.Year())
}

func TestParsePayPeriodRange_Unparseable(t *testing.T) {
	_, _, ok := ParsePayPeriodRange("whatever this is", time.Now())
	assert.False(t, ok)
}

func TestDefaultTrailingWeek(t *testing.T) {
	end := time.Date(2026, 6, 7, 15, 30, 0, 0, time.UTC)
	start, newEnd := DefaultTrailingWeek(end)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC), newEnd)
}

func TestParseCellDate(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2026-06-02", time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)},
		{"06/02/2026", time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)},
		{"06_02_26", time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseCellDate(tc.raw)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseCellDate_Empty(t *testing.T) {
	_, err := ParseCellDate("")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "06/02/2026", FormatDate(time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)))
}

func TestParseMonthHeader(t *testing.T) {
	got, err := ParseMonthHeader("Dec-25")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), got)
}
