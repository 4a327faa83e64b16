package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campsite-reservation/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func stay(start, end time.Time) model.Reservation {
	return model.Reservation{StartDate: start, EndDate: end}
}

func TestDaySpan_EnumeratesDaysAtNoon(t *testing.T) {
	span := DaySpan(day(2026, time.September, 1), day(2026, time.September, 4))
	require.Len(t, span, 3)
	assert.Equal(t, day(2026, time.September, 1), span[0])
	assert.Equal(t, day(2026, time.September, 2), span[1])
	assert.Equal(t, day(2026, time.September, 3), span[2])
}

func TestDaySpan_NormalizesTimeOfDay(t *testing.T) {
	start := time.Date(2026, time.September, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, time.September, 3, 0, 1, 0, 0, time.UTC)
	span := DaySpan(start, end)
	require.Len(t, span, 2)
	assert.Equal(t, day(2026, time.September, 1), span[0])
}

func TestDaySpan_EmptyAndInvertedWindows(t *testing.T) {
	assert.Empty(t, DaySpan(day(2026, time.September, 1), day(2026, time.September, 1)))
	assert.Empty(t, DaySpan(day(2026, time.September, 4), day(2026, time.September, 1)))
}

func TestFreeDays_NoReservationsReturnsFullSpan(t *testing.T) {
	start := day(2026, time.September, 1)
	end := start.AddDate(0, 0, 29)
	free := FreeDays(start, end, nil)
	assert.Len(t, free, 29)
}

func TestFreeDays_SubtractsBookedDays(t *testing.T) {
	start := day(2026, time.September, 1)
	end := start.AddDate(0, 0, 29)
	booked := stay(start.AddDate(0, 0, 3), start.AddDate(0, 0, 6))

	free := FreeDays(start, end, []model.Reservation{booked})
	assert.Len(t, free, 26)
	assert.NotContains(t, free, start.AddDate(0, 0, 3))
	assert.NotContains(t, free, start.AddDate(0, 0, 4))
	assert.NotContains(t, free, start.AddDate(0, 0, 5))
	// The exclusive end day stays free.
	assert.Contains(t, free, start.AddDate(0, 0, 6))
}

func TestFreeDays_Ascending(t *testing.T) {
	start := day(2026, time.September, 1)
	end := start.AddDate(0, 0, 10)
	free := FreeDays(start, end, []model.Reservation{
		stay(start.AddDate(0, 0, 5), start.AddDate(0, 0, 7)),
		stay(start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)),
	})
	for i := 1; i < len(free); i++ {
		assert.True(t, free[i-1].Before(free[i]), "free days must be ascending")
	}
	assert.Len(t, free, 7)
}
