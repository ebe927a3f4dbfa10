package scheduling_test

import (
	"testing"
	"time"

	"github.com/shiftguard/backend/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := map[string]struct {
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		"identical intervals":        {"09:00:00", "17:00:00", "09:00:00", "17:00:00", true},
		"partial overlap":            {"09:00:00", "17:00:00", "16:00:00", "22:00:00", true},
		"contained interval":         {"09:00:00", "17:00:00", "10:00:00", "12:00:00", true},
		"touching endpoints":         {"09:00:00", "12:00:00", "12:00:00", "15:00:00", false},
		"disjoint":                   {"09:00:00", "12:00:00", "13:00:00", "15:00:00", false},
		// the morning shift precedes the night shift on the same date; the
		// night shift's tail belongs to the next day's rows
		"night shift vs same-day morning": {"22:00:00", "06:00:00", "05:00:00", "09:00:00", false},
		"night shift vs day":         {"22:00:00", "06:00:00", "10:00:00", "18:00:00", false},
		"two night shifts":           {"22:00:00", "06:00:00", "23:00:00", "07:00:00", true},
		"evening into night shift":   {"18:00:00", "23:00:00", "22:00:00", "06:00:00", true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := scheduling.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			assert.Equal(t, tc.want, got)

			// overlap is symmetric
			mirrored := scheduling.Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd)
			assert.Equal(t, got, mirrored)
		})
	}
}

func TestDurationHours(t *testing.T) {
	tests := map[string]struct {
		start, end string
		want       float64
	}{
		"regular day shift":    {"09:00:00", "17:00:00", 8.0},
		"midnight crossing":    {"22:00:00", "06:00:00", 8.0},
		"half hour":            {"09:00:00", "09:30:00", 0.5},
		"ends at midnight":     {"16:00:00", "00:00:00", 8.0},
		"starts at midnight":   {"00:00:00", "06:00:00", 6.0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.want, scheduling.DurationHours(tc.start, tc.end), 1e-9)
		})
	}
}

func TestParseClock(t *testing.T) {
	m, err := scheduling.ParseClock("13:30:00")
	require.NoError(t, err)
	assert.Equal(t, 13*60+30, m)

	_, err = scheduling.ParseClock("25:00:00")
	assert.Error(t, err)
}

func TestCrossesMidnight(t *testing.T) {
	assert.True(t, scheduling.CrossesMidnight("22:00:00", "06:00:00"))
	assert.False(t, scheduling.CrossesMidnight("09:00:00", "17:00:00"))
}

func TestWeekBounds(t *testing.T) {
	// 2026-03-04 is a Wednesday
	wed := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	monday, sunday := scheduling.WeekBounds(wed)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), monday)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), sunday)

	// a Monday maps onto itself
	monday2, _ := scheduling.WeekBounds(monday)
	assert.Equal(t, monday, monday2)

	// a Sunday belongs to the week that started six days earlier
	monday3, sunday3 := scheduling.WeekBounds(sunday)
	assert.Equal(t, monday, monday3)
	assert.Equal(t, sunday, sunday3)
}

func TestWeekdayKey(t *testing.T) {
	assert.Equal(t, "monday", scheduling.WeekdayKey(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "sunday", scheduling.WeekdayKey(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
}
