// Package service implements the booking engine: the validation rules,
// overlap handling and cache coherence that sit between the HTTP layer
// and the reservation store.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/campsite-reservation/internal/model"
	"github.com/iliyamo/campsite-reservation/internal/repository"
)

// ReservationStore is the persistence contract the engine depends on.
// Implementations must enforce the overlap constraint atomically inside
// Create and Update: the engine's own pre-check is advisory, two
// concurrent creates can both pass it, and the store decides which one
// commits.  Business outcomes are reported through the repository
// sentinels (ErrNotFound, ErrConflict); any other error is treated as the
// store being unavailable.
type ReservationStore interface {
	FindByID(ctx context.Context, uid string) (*model.Reservation, error)
	FindOverlapping(ctx context.Context, start, end time.Time, excludeUID string) ([]model.Reservation, error)
	Create(ctx context.Context, res *model.Reservation) error
	Update(ctx context.Context, res *model.Reservation) error
	Delete(ctx context.Context, uid string) error
}

// AvailabilityCache caches free-day lists per queried window.  It is best
// effort: a lost or stale entry may yield an imprecise listing until the
// next invalidation or expiry, never an incorrect booking decision.
type AvailabilityCache interface {
	Get(ctx context.Context, start, end time.Time) ([]time.Time, bool)
	Set(ctx context.Context, start, end time.Time, days []time.Time)
	InvalidateWindow(ctx context.Context, start, end time.Time)
}

// ReservationService orchestrates the booking rules, the store and the
// availability cache.  One instance is shared by all requests; it holds
// no per-request state.
type ReservationService struct {
	store ReservationStore
	cache AvailabilityCache
}

// NewReservationService builds a service around the given store.  The
// cache may be nil, in which case every availability query recomputes.
func NewReservationService(store ReservationStore, cache AvailabilityCache) *ReservationService {
	if store == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{store: store, cache: cache}
}

// Create validates and persists a new reservation.  The uid and booking
// date are assigned here and never accepted from the caller.  On success
// the cached windows touching the new range are evicted before the
// reservation is returned.
func (s *ReservationService) Create(ctx context.Context, req model.ReservationRequest) (*model.Reservation, error) {
	res := &model.Reservation{
		UID:         uuid.NewString(),
		BookingDate: time.Now().UTC(),
	}
	res.ReplaceWith(req)
	if err := validateCandidate(res, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, res.StartDate, res.EndDate, ""); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, res); err != nil {
		return nil, translateStoreError(err)
	}
	s.invalidate(ctx, res.StartDate, res.EndDate)
	return res, nil
}

// FindByID looks up a reservation by uid.
func (s *ReservationService) FindByID(ctx context.Context, uid string) (*model.Reservation, error) {
	res, err := s.store.FindByID(ctx, uid)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return res, nil
}

// Update replaces every mutable field of an existing reservation and
// re-runs validation and the overlap check as if it were newly created,
// with the record excluded from its own overlap check.  The cache windows
// touching the requested range are invalidated in a deferred cleanup path,
// whether or not the save succeeds.
func (s *ReservationService) Update(ctx context.Context, uid string, req model.ReservationRequest) (res *model.Reservation, err error) {
	existing, err := s.store.FindByID(ctx, uid)
	if err != nil {
		return nil, translateStoreError(err)
	}
	updated := *existing
	updated.ReplaceWith(req)
	defer s.invalidate(ctx, updated.StartDate, updated.EndDate)
	if err := validateCandidate(&updated, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, updated.StartDate, updated.EndDate, uid); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, &updated); err != nil {
		return nil, translateStoreError(err)
	}
	return &updated, nil
}

// Delete removes a reservation after matching the caller's email against
// the stored ownership token.  A mismatch reports NotFound, identical to
// a missing id, so the endpoint leaks nothing about which ids exist.
func (s *ReservationService) Delete(ctx context.Context, uid, email string) (*model.Reservation, error) {
	existing, err := s.store.FindByID(ctx, uid)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if existing.Email != email {
		return nil, notFound()
	}
	if err := s.store.Delete(ctx, uid); err != nil {
		return nil, translateStoreError(err)
	}
	s.invalidate(ctx, existing.StartDate, existing.EndDate)
	return existing, nil
}

// FindAvailability returns the free days in the window [start, end),
// served from the cache when a fresh entry exists and computed from the
// store otherwise.  It never mutates reservation state.
func (s *ReservationService) FindAvailability(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	start = model.Noon(start)
	end = model.Noon(end)
	if s.cache != nil {
		if days, ok := s.cache.Get(ctx, start, end); ok {
			return days, nil
		}
	}
	reservations, err := s.store.FindOverlapping(ctx, start, end, "")
	if err != nil {
		return nil, translateStoreError(err)
	}
	days := FreeDays(start, end, reservations)
	if s.cache != nil {
		s.cache.Set(ctx, start, end, days)
	}
	return days, nil
}

// checkOverlap is the advisory pre-check run before handing a write to the
// store.  It rejects fast so most conflicts never reach a transaction.
func (s *ReservationService) checkOverlap(ctx context.Context, start, end time.Time, excludeUID string) error {
	overlapping, err := s.store.FindOverlapping(ctx, start, end, excludeUID)
	if err != nil {
		return translateStoreError(err)
	}
	if len(overlapping) > 0 {
		return alreadyBooked()
	}
	return nil
}

func (s *ReservationService) invalidate(ctx context.Context, start, end time.Time) {
	if s.cache != nil {
		s.cache.InvalidateWindow(ctx, start, end)
	}
}

// translateStoreError maps repository sentinels onto the service taxonomy.
// ErrConflict becomes AlreadyBooked: a constraint rejection at commit time
// is an expected outcome of the check-then-act race, not an infrastructure
// failure.  Everything unrecognized is StorageUnavailable.
func translateStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound()
	case errors.Is(err, repository.ErrConflict):
		return alreadyBooked()
	default:
		return storageUnavailable(err)
	}
}
