// Package store owns the process-wide operational state: parks, routes,
// drivers, trips, bookings and parcels. Every mutating operation in the
// engine is a single read-check-write section under one store-wide mutex,
// so the seat, capacity and driver-exclusivity invariants hold even with
// handlers running on parallel goroutines.
package store

import (
	"sync"
	"time"

	"parkops/internal/domain/models"
)

// Data is the raw state guarded by the store mutex. Callbacks passed to
// Update/View receive it directly; pointers must not escape the callback.
type Data struct {
	Parks    map[string]*models.Park
	Users    map[string]*models.User
	Routes   map[string]*models.Route
	Drivers  map[string]*models.Driver
	Trips    map[string]*models.Trip
	Bookings map[string]*models.Booking
	Parcels  map[string]*models.Parcel
}

// Store is created once at process start and handed to every service.
// Tests build a fresh one per test instead of sharing a singleton.
type Store struct {
	mu           sync.Mutex
	data         Data
	lastModified time.Time

	// NowFunc supplies the clock; tests override it to drive hold expiry.
	NowFunc func() time.Time
}

func New() *Store {
	s := &Store{
		data: Data{
			Parks:    map[string]*models.Park{},
			Users:    map[string]*models.User{},
			Routes:   map[string]*models.Route{},
			Drivers:  map[string]*models.Driver{},
			Trips:    map[string]*models.Trip{},
			Bookings: map[string]*models.Booking{},
			Parcels:  map[string]*models.Parcel{},
		},
		NowFunc: time.Now,
	}
	s.lastModified = s.Now()
	return s
}

// Now reads the injected clock.
func (s *Store) Now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}
	return time.Now()
}

// Update runs fn under the store lock as one transaction. The state is
// only considered modified when fn returns nil.
func (s *Store) Update(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.data); err != nil {
		return err
	}
	s.lastModified = s.Now()
	return nil
}

// View runs fn under the store lock for a consistent read. fn must not
// mutate; use EffectiveStatus-style materialization for lazy expiry.
func (s *Store) View(fn func(d *Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// LastModified is the timestamp of the latest successful Update, used by
// polling clients to skip unchanged reloads.
func (s *Store) LastModified() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastModified
}
