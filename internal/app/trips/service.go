// Package trips writes trips, itineraries and the profile to the remote store.
package trips

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lbjllc/travelbook/internal/app/events"
	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/observability"
)

// Keying selects how UpdateItineraryItem locates the entry it replaces.
type Keying string

const (
	// KeyByValue removes the old entry by whole-record equality and unions
	// the new one in a single batch. An old entry that is no longer stored
	// exactly as given is not removed, so the new one lands next to it.
	KeyByValue Keying = "value"
	// KeyByID replaces the entry carrying old.ID inside a transaction.
	KeyByID Keying = "id"
)

// Service is the fire-and-forget mutation API. No method reports errors to
// its caller: failures are logged and published as events, and successful
// writes only show up in local state when the store pushes them back.
type Service struct {
	store    domain.RemoteStore
	identity domain.Identity
	bus      *events.Bus
	keying   Keying
	log      *slog.Logger

	wg sync.WaitGroup
}

type Option func(*Service)

func WithEvents(bus *events.Bus) Option {
	return func(s *Service) { s.bus = bus }
}

func WithKeying(k Keying) Option {
	return func(s *Service) {
		if k == KeyByID {
			s.keying = KeyByID
		} else {
			s.keying = KeyByValue
		}
	}
}

func NewService(store domain.RemoteStore, identity domain.Identity, opts ...Option) *Service {
	s := &Service{
		store:    store,
		identity: identity,
		keying:   KeyByValue,
		log:      observability.Component("trips"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wait blocks until every mutation issued so far has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) AddTrip(trip domain.Trip) {
	s.run("add_trip", "", func(ctx context.Context, user domain.UserID) error {
		id, err := s.store.AddTrip(ctx, user, trip)
		if err == nil {
			s.log.Info("trip added", "trip_id", id)
		}
		return err
	})
}

func (s *Service) UpdateTrip(id domain.TripID, trip domain.Trip) {
	s.run("update_trip", id, func(ctx context.Context, user domain.UserID) error {
		return s.store.SetTrip(ctx, user, id, trip)
	})
}

// UpdateTripDetails changes the trip's fields without touching its
// itinerary, so entries written since the last snapshot survive.
func (s *Service) UpdateTripDetails(id domain.TripID, trip domain.Trip) {
	s.run("update_trip_details", id, func(ctx context.Context, user domain.UserID) error {
		return s.store.UpdateTripDetails(ctx, user, id, trip)
	})
}

func (s *Service) DeleteTrip(id domain.TripID) {
	s.run("delete_trip", id, func(ctx context.Context, user domain.UserID) error {
		return s.store.DeleteTrip(ctx, user, id)
	})
}

// AddItineraryItem unions item into the trip's itinerary; an identical item
// already stored is left as the only copy.
func (s *Service) AddItineraryItem(tripID domain.TripID, item domain.ItineraryItem) {
	s.run("add_itinerary_item", tripID, func(ctx context.Context, user domain.UserID) error {
		return s.store.UnionItinerary(ctx, user, tripID, item)
	})
}

// RemoveItineraryItem removes every stored entry equal to item.
func (s *Service) RemoveItineraryItem(tripID domain.TripID, item domain.ItineraryItem) {
	s.run("remove_itinerary_item", tripID, func(ctx context.Context, user domain.UserID) error {
		return s.store.RemoveItinerary(ctx, user, tripID, item)
	})
}

// UpdateItineraryItem swaps oldItem for newItem. See Keying for how the old
// entry is found.
func (s *Service) UpdateItineraryItem(tripID domain.TripID, oldItem, newItem domain.ItineraryItem) {
	s.run("update_itinerary_item", tripID, func(ctx context.Context, user domain.UserID) error {
		if s.keying == KeyByID {
			newItem.ID = oldItem.ID
			return s.store.ReplaceItineraryByID(ctx, user, tripID, newItem)
		}
		return s.store.ReplaceItinerary(ctx, user, tripID, oldItem, newItem)
	})
}

// UpdateUserProfile overwrites the profile document.
func (s *Service) UpdateUserProfile(profile domain.UserProfile) {
	profile = profile.Normalize()
	s.run("update_profile", "", func(ctx context.Context, user domain.UserID) error {
		return s.store.SetProfile(ctx, user, profile)
	})
}

// run executes fn in the background for the signed-in user. Without a user
// the call is dropped.
func (s *Service) run(op string, tripID domain.TripID, fn func(context.Context, domain.UserID) error) {
	user, ok := s.identity.CurrentUser()
	if !ok {
		s.log.Warn("no signed-in user, mutation dropped", "op", op)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ev := events.Event{Kind: events.KindMutation, Op: op, TripID: string(tripID)}
		if err := fn(context.Background(), user); err != nil {
			ev.Err = &domain.RemoteWriteError{Op: op, TripID: tripID, Err: err}
			s.log.Error("mutation failed", "op", op, "trip_id", tripID, "error", err)
		}
		s.bus.Publish(ev)
	}()
}
