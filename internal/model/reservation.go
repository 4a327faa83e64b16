package model

import "time"

// Reservation records a single stay at the campsite.  The campsite is one
// shared resource, so no two persisted reservations may cover the same
// calendar day.
//
// Fields:
//  UID         – opaque identifier assigned by the service on creation,
//                never reassigned.
//  StartDate   – first day of the stay, normalized to noon UTC.
//  EndDate     – day after the last day of the stay (exclusive), also at
//                noon UTC.  Strictly after StartDate once persisted.
//  BookingDate – when the reservation was created; immutable afterwards.
//  Email       – contact address, doubles as the ownership token required
//                to cancel.  Not unique across reservations.
//  FullName    – display name of the guest, no business meaning.
type Reservation struct {
	UID         string    `json:"uid"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	BookingDate time.Time `json:"bookingDate"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
}

// ReservationRequest carries the mutable fields a caller supplies when
// creating or updating a reservation.  UID and BookingDate are owned by
// the service and never accepted from the outside.
type ReservationRequest struct {
	StartDate time.Time
	EndDate   time.Time
	Email     string
	FullName  string
}

// ReplaceWith overwrites the caller-mutable fields of the reservation from
// the request, leaving UID and BookingDate untouched.  Dates are
// re-normalized to noon so stored ranges stay comparable.
func (r *Reservation) ReplaceWith(req ReservationRequest) {
	r.StartDate = Noon(req.StartDate)
	r.EndDate = Noon(req.EndDate)
	r.Email = req.Email
	r.FullName = req.FullName
}

// Noon maps an arbitrary timestamp to the same calendar day at 12:00:00 UTC.
// All date arithmetic in the service runs on noon-aligned timestamps so that
// midnight and timezone edge cases cannot shift a stay by a day.
func Noon(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole 24h periods from start to end,
// truncated toward zero.  Negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}
