package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodToday, p)

	p, err = ParsePeriod("month")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	_, err = ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestPeriodWindow(t *testing.T) {
	// A Wednesday afternoon.
	now := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
		end    time.Time
	}{
		{
			period: PeriodToday,
			start:  time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			period: PeriodYesterday,
			start:  time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			// Week starts Monday.
			period: PeriodWeek,
			start:  time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			period: PeriodMonth,
			start:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			period: PeriodYear,
			start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			w := tt.period.Window(now)
			assert.True(t, w.Start.Equal(tt.start), "start: got %v want %v", w.Start, tt.start)
			assert.True(t, w.End.Equal(tt.end), "end: got %v want %v", w.End, tt.end)
		})
	}
}

func TestPeriodWindowOnSunday(t *testing.T) {
	// A Sunday must fold back to the previous Monday, not forward.
	now := time.Date(2024, time.March, 17, 8, 0, 0, 0, time.UTC)
	w := PeriodWeek.Window(now)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), w.Start)
}
