package repository

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/campsite-reservation/internal/model"
)

// MemoryStore is an in-memory reservation store guarded by a mutex.  It
// enforces the same overlap constraint as the MySQL repository, atomically
// with respect to concurrent writers, which makes it a faithful stand-in
// for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Reservation
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]model.Reservation)}
}

// FindByID returns a copy of the stored reservation or ErrNotFound.
func (s *MemoryStore) FindByID(ctx context.Context, uid string) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.data[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

// FindOverlapping returns copies of every reservation whose range overlaps
// the closed interval [start, end], optionally excluding one uid.
func (s *MemoryStore) FindOverlapping(ctx context.Context, start, end time.Time, excludeUID string) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Reservation
	for uid, res := range s.data {
		if uid == excludeUID {
			continue
		}
		if overlaps(res, start, end) {
			out = append(out, res)
		}
	}
	return out, nil
}

// Create inserts the reservation unless its range overlaps an existing one.
// The check and the insert happen under one lock, so of two racing creates
// for the same window exactly one succeeds.
func (s *MemoryStore) Create(ctx context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data {
		if overlaps(existing, res.StartDate, res.EndDate) {
			return ErrConflict
		}
	}
	s.data[res.UID] = *res
	return nil
}

// Update replaces the stored reservation, excluding it from its own
// overlap check.  The stored record is untouched when the new range
// conflicts.
func (s *MemoryStore) Update(ctx context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[res.UID]; !ok {
		return ErrNotFound
	}
	for uid, existing := range s.data {
		if uid == res.UID {
			continue
		}
		if overlaps(existing, res.StartDate, res.EndDate) {
			return ErrConflict
		}
	}
	s.data[res.UID] = *res
	return nil
}

// Delete removes the reservation or returns ErrNotFound.
func (s *MemoryStore) Delete(ctx context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[uid]; !ok {
		return ErrNotFound
	}
	delete(s.data, uid)
	return nil
}

// overlaps reports whether the reservation's closed range intersects
// [start, end]: neither stay lies entirely before the other, so a stay
// fully contained inside a longer one conflicts too.  Matches the SQL
// predicate used by ReservationRepo.
func overlaps(res model.Reservation, start, end time.Time) bool {
	return !res.StartDate.After(end) && !res.EndDate.Before(start)
}
