// Package repository defines error values that are shared by every store
// implementation.  Sentinel errors let the service layer distinguish
// business outcomes from infrastructure failures without depending on a
// concrete backend: ErrNotFound means the requested reservation does not
// exist, ErrConflict means the store refused a write because the date
// range collides with an existing reservation.  Any other error from a
// store method is treated as the storage layer being unavailable.
package repository

import "errors"

// ErrNotFound is returned when no reservation exists for the given uid.
var ErrNotFound = errors.New("reservation not found")

// ErrConflict is returned when an insert or update would produce two
// reservations with overlapping date ranges.  The conflict is detected
// atomically at the storage boundary, so it remains authoritative even
// when two requests race past the service-level overlap pre-check.
var ErrConflict = errors.New("reservation dates conflict")
