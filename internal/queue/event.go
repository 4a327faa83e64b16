// Package queue defines message payloads exchanged over the message broker
// and the publisher that delivers them.
package queue

// Reservation lifecycle actions carried in ReservationEvent.Action.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionCancelled = "cancelled"
)

// ReservationEvent is published after a reservation mutation succeeds.
// It carries enough information for downstream consumers (confirmation
// mails, occupancy analytics) without querying the primary database.
type ReservationEvent struct {
	Action     string `json:"action"`
	UID        string `json:"uid"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	OccurredAt string `json:"occurred_at"`
}
