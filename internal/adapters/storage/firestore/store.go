package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/observability"
)

const (
	profileDocID   = "user_prefs"
	itineraryField = "itinerary"
)

// Store implements domain.RemoteStore on Cloud Firestore.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store for the given project.
// FIRESTORE_EMULATOR_HOST is honoured by the client library.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) userDoc(user domain.UserID) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(string(user))
}

func (s *Store) tripsCol(user domain.UserID) *firestore.CollectionRef {
	return s.userDoc(user).Collection("trips")
}

func (s *Store) tripDoc(user domain.UserID, id domain.TripID) *firestore.DocumentRef {
	return s.tripsCol(user).Doc(string(id))
}

func (s *Store) profileDoc(user domain.UserID) *firestore.DocumentRef {
	return s.userDoc(user).Collection("profile").Doc(profileDocID)
}

// watchErr is the result of a watch whose listener returned err: nil once
// ctx is done, a failure otherwise. A Canceled status sent by the server
// while ctx is still live is a failure too.
func watchErr(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("firestore %s: %w", op, err)
}

// ─────────────────────────────────────────
// Watches
// ─────────────────────────────────────────

func (s *Store) WatchTrips(ctx context.Context, user domain.UserID, fn func([]domain.Trip)) error {
	it := s.tripsCol(user).Snapshots(ctx)
	defer it.Stop()

	for {
		qs, err := it.Next()
		if err != nil {
			return watchErr(ctx, "WatchTrips", err)
		}

		trips, err := decodeTrips(ctx, qs.Documents)
		if err != nil {
			return fmt.Errorf("firestore WatchTrips: %w", err)
		}
		fn(trips)
	}
}

// decodeTrips reads a query snapshot. The trip id always comes from the
// document reference; a document that cannot be decoded is skipped.
func decodeTrips(ctx context.Context, docs *firestore.DocumentIterator) ([]domain.Trip, error) {
	defer docs.Stop()

	out := []domain.Trip{}
	for {
		snap, err := docs.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, err
		}

		var doc tripDoc
		if err := snap.DataTo(&doc); err != nil {
			observability.LoggerFromContext(ctx).Warn("skipping undecodable trip document",
				"trip_id", snap.Ref.ID, "error", err)
			continue
		}

		trip := doc.toDomain()
		trip.ID = domain.TripID(snap.Ref.ID)
		out = append(out, trip)
	}
	return out, nil
}

func (s *Store) WatchProfile(ctx context.Context, user domain.UserID, fn func(*domain.UserProfile)) error {
	it := s.profileDoc(user).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			return watchErr(ctx, "WatchProfile", err)
		}

		if !snap.Exists() {
			fn(nil)
			continue
		}

		var doc profileDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("firestore WatchProfile decode: %w", err)
		}
		p := doc.toDomain()
		fn(&p)
	}
}

// ─────────────────────────────────────────
// Trip documents
// ─────────────────────────────────────────

func (s *Store) AddTrip(ctx context.Context, user domain.UserID, trip domain.Trip) (domain.TripID, error) {
	ref, _, err := s.tripsCol(user).Add(ctx, newTripDoc(trip))
	if err != nil {
		return "", fmt.Errorf("firestore AddTrip: %w", err)
	}
	return domain.TripID(ref.ID), nil
}

func (s *Store) SetTrip(ctx context.Context, user domain.UserID, id domain.TripID, trip domain.Trip) error {
	if _, err := s.tripDoc(user, id).Set(ctx, newTripDoc(trip)); err != nil {
		return fmt.Errorf("firestore SetTrip: %w", err)
	}
	return nil
}

// UpdateTripDetails writes every trip field except the itinerary, leaving
// the stored array untouched. A missing trip is NotFound.
func (s *Store) UpdateTripDetails(ctx context.Context, user domain.UserID, id domain.TripID, trip domain.Trip) error {
	doc := newTripDoc(trip)
	updates := []firestore.Update{
		{Path: "originatingLocation", Value: doc.OriginatingLocation},
		{Path: "locations", Value: doc.Locations},
		{Path: "startDate", Value: doc.StartDate},
		{Path: "endDate", Value: doc.EndDate},
		{Path: "purpose", Value: doc.Purpose},
		{Path: "travelMethod", Value: doc.TravelMethod},
	}
	if _, err := s.tripDoc(user, id).Update(ctx, updates); err != nil {
		return fmt.Errorf("firestore UpdateTripDetails: %w", notFound(err, id))
	}
	return nil
}

func (s *Store) DeleteTrip(ctx context.Context, user domain.UserID, id domain.TripID) error {
	if _, err := s.tripDoc(user, id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore DeleteTrip: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// Itinerary array
// ─────────────────────────────────────────

func unionUpdate(items ...domain.ItineraryItem) []firestore.Update {
	return []firestore.Update{{Path: itineraryField, Value: firestore.ArrayUnion(itemValues(items)...)}}
}

func removeUpdate(items ...domain.ItineraryItem) []firestore.Update {
	return []firestore.Update{{Path: itineraryField, Value: firestore.ArrayRemove(itemValues(items)...)}}
}

func (s *Store) UnionItinerary(ctx context.Context, user domain.UserID, id domain.TripID, items ...domain.ItineraryItem) error {
	if _, err := s.tripDoc(user, id).Update(ctx, unionUpdate(items...)); err != nil {
		return fmt.Errorf("firestore UnionItinerary: %w", notFound(err, id))
	}
	return nil
}

func (s *Store) RemoveItinerary(ctx context.Context, user domain.UserID, id domain.TripID, items ...domain.ItineraryItem) error {
	if _, err := s.tripDoc(user, id).Update(ctx, removeUpdate(items...)); err != nil {
		return fmt.Errorf("firestore RemoveItinerary: %w", notFound(err, id))
	}
	return nil
}

func (s *Store) ReplaceItinerary(ctx context.Context, user domain.UserID, id domain.TripID, oldItem, newItem domain.ItineraryItem) error {
	ref := s.tripDoc(user, id)

	batch := s.client.Batch()
	batch.Update(ref, removeUpdate(oldItem))
	batch.Update(ref, unionUpdate(newItem))
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("firestore ReplaceItinerary: %w", notFound(err, id))
	}
	return nil
}

func (s *Store) ReplaceItineraryByID(ctx context.Context, user domain.UserID, id domain.TripID, item domain.ItineraryItem) error {
	ref := s.tripDoc(user, id)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var doc tripDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("decode trip: %w", err)
		}

		items := domain.ReplaceByID(doc.toDomain().Itinerary, item)
		return tx.Update(ref, []firestore.Update{{Path: itineraryField, Value: newItemDocs(items)}})
	})
	if err != nil {
		return fmt.Errorf("firestore ReplaceItineraryByID: %w", notFound(err, id))
	}
	return nil
}

// ─────────────────────────────────────────
// Profile document
// ─────────────────────────────────────────

func (s *Store) SetProfile(ctx context.Context, user domain.UserID, profile domain.UserProfile) error {
	if _, err := s.profileDoc(user).Set(ctx, newProfileDoc(profile)); err != nil {
		return fmt.Errorf("firestore SetProfile: %w", err)
	}
	return nil
}

func notFound(err error, id domain.TripID) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("trip %s not found: %w", id, err)
	}
	return err
}
