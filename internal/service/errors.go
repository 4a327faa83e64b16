package service

import "errors"

// Kind tags an Error with the business meaning of a failure so the
// handler layer can map outcomes to responses without inspecting message
// text or backend error types.
type Kind int

const (
	// KindInvalidModel means the candidate reservation violates a booking
	// rule.  The message is user-correctable and surfaced verbatim.
	KindInvalidModel Kind = iota + 1
	// KindAlreadyBooked means the requested dates overlap an existing
	// reservation, detected either by the pre-check or by the store's own
	// constraint at commit time.
	KindAlreadyBooked
	// KindNotFound means no reservation exists for the id, or the
	// ownership token did not match on delete.  The two cases are merged
	// deliberately so callers cannot probe which ids exist.
	KindNotFound
	// KindStorageUnavailable means the store could not be reached or timed
	// out.  It is an infrastructure failure, never a booking decision.
	KindStorageUnavailable
)

// Error is the tagged failure returned by every ReservationService
// operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from an error returned by the service, or zero
// when the error is not a service Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func invalidModel(msg string) error {
	return &Error{Kind: KindInvalidModel, Message: msg}
}

func alreadyBooked() error {
	return &Error{Kind: KindAlreadyBooked, Message: "Cannot book, due conflicts with other reservations"}
}

func notFound() error {
	return &Error{Kind: KindNotFound, Message: "Reservation not found"}
}

func storageUnavailable(err error) error {
	return &Error{Kind: KindStorageUnavailable, Message: "reservation store unavailable", Err: err}
}
