package service

import (
	"regexp"
	"time"

	"github.com/iliyamo/campsite-reservation/internal/model"
)

// emailPattern accepts anything shaped like local@domain.  Email here is
// only a weak ownership token, so the shape check is intentionally loose.
var emailPattern = regexp.MustCompile(`^.+@.+$`)

// maxStayDays and maxAdvanceDays bound how long a stay may last and how
// far ahead it may be booked.
const (
	maxStayDays    = 3
	maxAdvanceDays = 30
)

// validateCandidate applies the booking rules to a candidate reservation.
// The checks run in a fixed order and stop at the first violation, so a
// caller only ever sees one message per request.  All failures carry
// KindInvalidModel.
func validateCandidate(res *model.Reservation, now time.Time) error {
	if !emailPattern.MatchString(res.Email) {
		return invalidModel("Not a valid Email")
	}
	if model.DaysBetween(res.StartDate, res.EndDate) > maxStayDays {
		return invalidModel("Camp reservation days cannot be greater than 3 days")
	}
	if model.DaysBetween(now, res.StartDate) > maxAdvanceDays {
		return invalidModel("Camp cannot be booked more than 30 days in advance")
	}
	if model.DaysBetween(model.Noon(now), res.StartDate) < 1 {
		return invalidModel("Camp cannot be booked for the same day")
	}
	if res.EndDate.Before(res.StartDate) {
		return invalidModel("End Date should be bigger than Start Date")
	}
	return nil
}
