package service

import (
	"time"

	"github.com/iliyamo/campsite-reservation/internal/model"
)

// DaySpan enumerates every calendar day covered by [start, end): each day
// from start up to but not including end, normalized to noon UTC.  Both
// availability windows and reservation ranges expand through this same
// function so that a day is counted identically on both sides.
func DaySpan(start, end time.Time) []time.Time {
	start = model.Noon(start)
	end = model.Noon(end)
	n := model.DaysBetween(start, end)
	if n <= 0 {
		return []time.Time{}
	}
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// FreeDays returns the days in [start, end) not covered by any of the
// given reservations, in ascending order.  The reservations are expected
// to be the ones overlapping the window; with none, the full window span
// comes back unfiltered.
func FreeDays(start, end time.Time, reservations []model.Reservation) []time.Time {
	span := DaySpan(start, end)
	if len(reservations) == 0 {
		return span
	}
	booked := make(map[time.Time]struct{})
	for _, res := range reservations {
		for _, day := range DaySpan(res.StartDate, res.EndDate) {
			booked[day] = struct{}{}
		}
	}
	free := make([]time.Time, 0, len(span))
	for _, day := range span {
		if _, taken := booked[day]; !taken {
			free = append(free, day)
		}
	}
	return free
}
