package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lbjllc/travelbook/internal/domain"
)

// ErrNotFound mirrors the document store rejecting a field update on a missing document.
var ErrNotFound = errors.New("document not found")

// Store is an in-memory domain.RemoteStore with the same array semantics as
// the document database: value-equality union/removal and atomic batches.
// Every committed write pushes a fresh snapshot to the active watchers.
// It is NOT persistent and is only suitable for development / tests.
type Store struct {
	mu       sync.Mutex
	users    map[domain.UserID]*userDocs
	watchers map[domain.UserID]map[*watcher]struct{}
	seq      int
	failWith error
}

type userDocs struct {
	trips   map[domain.TripID]domain.Trip
	profile *domain.UserProfile
}

type watcher struct {
	changed chan struct{}
	fail    chan error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[domain.UserID]*userDocs),
		watchers: make(map[domain.UserID]map[*watcher]struct{}),
	}
}

// FailWrites makes every following write return err until called with nil.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// BreakWatches terminates the active watches of user with err.
func (s *Store) BreakWatches(user domain.UserID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for w := range s.watchers[user] {
		select {
		case w.fail <- err:
		default:
		}
	}
}

// Seed stores trip under docID exactly as given, embedded ID included.
func (s *Store) Seed(user domain.UserID, docID domain.TripID, trip domain.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs(user).trips[docID] = cloneTrip(trip)
	s.notify(user)
}

// Trip returns the stored document body and whether it exists.
func (s *Store) Trip(user domain.UserID, id domain.TripID) (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.docs(user).trips[id]
	return cloneTrip(t), ok
}

// ─────────────────────────────────────────
// Watches
// ─────────────────────────────────────────

func (s *Store) WatchTrips(ctx context.Context, user domain.UserID, fn func([]domain.Trip)) error {
	return s.watch(ctx, user, func() { fn(s.tripsSnapshot(user)) })
}

func (s *Store) WatchProfile(ctx context.Context, user domain.UserID, fn func(*domain.UserProfile)) error {
	return s.watch(ctx, user, func() { fn(s.profileSnapshot(user)) })
}

func (s *Store) watch(ctx context.Context, user domain.UserID, deliver func()) error {
	w := &watcher{
		changed: make(chan struct{}, 1),
		fail:    make(chan error, 1),
	}

	s.mu.Lock()
	if s.watchers[user] == nil {
		s.watchers[user] = make(map[*watcher]struct{})
	}
	s.watchers[user][w] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.watchers[user], w)
		s.mu.Unlock()
	}()

	for {
		deliver()
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.fail:
			return err
		case <-w.changed:
		}
	}
}

// notify must run with s.mu held.
func (s *Store) notify(user domain.UserID) {
	for w := range s.watchers[user] {
		select {
		case w.changed <- struct{}{}:
		default:
		}
	}
}

func (s *Store) tripsSnapshot(user domain.UserID) []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.docs(user)
	ids := make([]string, 0, len(docs.trips))
	for id := range docs.trips {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	out := make([]domain.Trip, 0, len(ids))
	for _, id := range ids {
		t := cloneTrip(docs.trips[domain.TripID(id)])
		t.ID = domain.TripID(id)
		out = append(out, t)
	}
	return out
}

func (s *Store) profileSnapshot(user domain.UserID) *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.docs(user).profile
	if p == nil {
		return nil
	}
	cp := *p
	cp.Interests = append([]string(nil), p.Interests...)
	return &cp
}

// ─────────────────────────────────────────
// Writes
// ─────────────────────────────────────────

func (s *Store) AddTrip(_ context.Context, user domain.UserID, trip domain.Trip) (domain.TripID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return "", s.failWith
	}

	s.seq++
	id := domain.TripID(fmt.Sprintf("trip-%06d", s.seq))
	trip.ID = ""
	s.docs(user).trips[id] = cloneTrip(trip)
	s.notify(user)
	return id, nil
}

func (s *Store) SetTrip(_ context.Context, user domain.UserID, id domain.TripID, trip domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	trip.ID = ""
	s.docs(user).trips[id] = cloneTrip(trip)
	s.notify(user)
	return nil
}

func (s *Store) UpdateTripDetails(_ context.Context, user domain.UserID, id domain.TripID, trip domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	docs := s.docs(user)
	cur, ok := docs.trips[id]
	if !ok {
		return fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}
	trip.ID = ""
	trip.Itinerary = cur.Itinerary
	docs.trips[id] = cloneTrip(trip)
	s.notify(user)
	return nil
}

func (s *Store) DeleteTrip(_ context.Context, user domain.UserID, id domain.TripID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	delete(s.docs(user).trips, id)
	s.notify(user)
	return nil
}

func (s *Store) UnionItinerary(_ context.Context, user domain.UserID, id domain.TripID, items ...domain.ItineraryItem) error {
	return s.updateItinerary(user, id, func(cur []domain.ItineraryItem) []domain.ItineraryItem {
		return domain.UnionItems(cur, items...)
	})
}

func (s *Store) RemoveItinerary(_ context.Context, user domain.UserID, id domain.TripID, items ...domain.ItineraryItem) error {
	return s.updateItinerary(user, id, func(cur []domain.ItineraryItem) []domain.ItineraryItem {
		return domain.RemoveItems(cur, items...)
	})
}

func (s *Store) ReplaceItinerary(_ context.Context, user domain.UserID, id domain.TripID, oldItem, newItem domain.ItineraryItem) error {
	return s.updateItinerary(user, id, func(cur []domain.ItineraryItem) []domain.ItineraryItem {
		return domain.UnionItems(domain.RemoveItems(cur, oldItem), newItem)
	})
}

func (s *Store) ReplaceItineraryByID(_ context.Context, user domain.UserID, id domain.TripID, item domain.ItineraryItem) error {
	return s.updateItinerary(user, id, func(cur []domain.ItineraryItem) []domain.ItineraryItem {
		return domain.ReplaceByID(cur, item)
	})
}

// updateItinerary applies fn to one trip's array as a single atomic write.
func (s *Store) updateItinerary(user domain.UserID, id domain.TripID, fn func([]domain.ItineraryItem) []domain.ItineraryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	docs := s.docs(user)
	trip, ok := docs.trips[id]
	if !ok {
		return fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}
	trip.Itinerary = fn(trip.Itinerary)
	docs.trips[id] = trip
	s.notify(user)
	return nil
}

func (s *Store) SetProfile(_ context.Context, user domain.UserID, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	profile.Interests = append([]string(nil), profile.Interests...)
	s.docs(user).profile = &profile
	s.notify(user)
	return nil
}

// docs must run with s.mu held.
func (s *Store) docs(user domain.UserID) *userDocs {
	d, ok := s.users[user]
	if !ok {
		d = &userDocs{trips: make(map[domain.TripID]domain.Trip)}
		s.users[user] = d
	}
	return d
}

func cloneTrip(t domain.Trip) domain.Trip {
	t.Locations = append([]string(nil), t.Locations...)
	t.Itinerary = append([]domain.ItineraryItem(nil), t.Itinerary...)
	return t
}
