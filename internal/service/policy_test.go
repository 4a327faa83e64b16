package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campsite-reservation/internal/model"
)

var policyNow = time.Date(2026, time.August, 29, 15, 4, 5, 0, time.UTC)

func candidate(start, end time.Time) *model.Reservation {
	return &model.Reservation{
		UID:         "test-uid",
		StartDate:   model.Noon(start),
		EndDate:     model.Noon(end),
		BookingDate: policyNow,
		Email:       "guest@example.com",
		FullName:    "Test Guest",
	}
}

func TestValidateCandidate_Valid(t *testing.T) {
	base := model.Noon(policyNow).AddDate(0, 0, 2)
	assert.NoError(t, validateCandidate(candidate(base, base.AddDate(0, 0, 3)), policyNow))
}

func TestValidateCandidate_InvalidEmail(t *testing.T) {
	base := model.Noon(policyNow).AddDate(0, 0, 2)
	res := candidate(base, base.AddDate(0, 0, 2))
	res.Email = "not-an-email"

	err := validateCandidate(res, policyNow)
	require.Error(t, err)
	assert.Equal(t, KindInvalidModel, KindOf(err))
	assert.EqualError(t, err, "Not a valid Email")
}

func TestValidateCandidate_StayTooLong(t *testing.T) {
	base := model.Noon(policyNow).AddDate(0, 0, 2)
	err := validateCandidate(candidate(base, base.AddDate(0, 0, 4)), policyNow)
	require.Error(t, err)
	assert.EqualError(t, err, "Camp reservation days cannot be greater than 3 days")
}

func TestValidateCandidate_TooFarInAdvance(t *testing.T) {
	base := model.Noon(policyNow).AddDate(0, 0, 32)
	err := validateCandidate(candidate(base, base.AddDate(0, 0, 1)), policyNow)
	require.Error(t, err)
	assert.EqualError(t, err, "Camp cannot be booked more than 30 days in advance")
}

func TestValidateCandidate_SameDay(t *testing.T) {
	base := model.Noon(policyNow)
	err := validateCandidate(candidate(base, base.AddDate(0, 0, 1)), policyNow)
	require.Error(t, err)
	assert.EqualError(t, err, "Camp cannot be booked for the same day")
}

func TestValidateCandidate_NextDayIsAllowed(t *testing.T) {
	base := model.Noon(policyNow).AddDate(0, 0, 1)
	assert.NoError(t, validateCandidate(candidate(base, base.AddDate(0, 0, 1)), policyNow))
}

func TestValidateCandidate_EndBeforeStart(t *testing.T) {
	base := model.Noon(policyNow).AddDate(0, 0, 3)
	err := validateCandidate(candidate(base, base.AddDate(0, 0, -1)), policyNow)
	require.Error(t, err)
	assert.EqualError(t, err, "End Date should be bigger than Start Date")
}

// The checks run in a fixed order and stop at the first violation, so a
// candidate breaking several rules reports only the earliest one.
func TestValidateCandidate_FailFastOrder(t *testing.T) {
	base := model.Noon(policyNow).AddDate(0, 0, 2)
	res := candidate(base, base.AddDate(0, 0, 10))
	res.Email = "broken"

	err := validateCandidate(res, policyNow)
	require.Error(t, err)
	assert.EqualError(t, err, "Not a valid Email")
}
