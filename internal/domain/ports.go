package domain

import "context"

// Completer is the generative-language completion collaborator.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Identity yields the signed-in user, if any.
type Identity interface {
	CurrentUser() (UserID, bool)
}

// RemoteStore is the document database collaborator, laid out as
// users/{U}/trips/{tripId} and users/{U}/profile/user_prefs.
//
// Watch methods block until ctx is done or the subscription fails, calling
// fn with a complete snapshot on every remote change. A nil error means the
// watch ended because ctx was cancelled.
type RemoteStore interface {
	WatchTrips(ctx context.Context, user UserID, fn func([]Trip)) error
	// WatchProfile calls fn with nil while the profile document does not exist.
	WatchProfile(ctx context.Context, user UserID, fn func(*UserProfile)) error

	AddTrip(ctx context.Context, user UserID, trip Trip) (TripID, error)
	SetTrip(ctx context.Context, user UserID, id TripID, trip Trip) error
	// UpdateTripDetails writes every field but the itinerary; the trip must exist.
	UpdateTripDetails(ctx context.Context, user UserID, id TripID, trip Trip) error
	DeleteTrip(ctx context.Context, user UserID, id TripID) error

	// UnionItinerary appends each item not already present by value.
	UnionItinerary(ctx context.Context, user UserID, id TripID, items ...ItineraryItem) error
	// RemoveItinerary removes every element equal by value to any of items.
	RemoveItinerary(ctx context.Context, user UserID, id TripID, items ...ItineraryItem) error
	// ReplaceItinerary applies remove(oldItem) then union(newItem) as one atomic batch.
	ReplaceItinerary(ctx context.Context, user UserID, id TripID, oldItem, newItem ItineraryItem) error
	// ReplaceItineraryByID swaps the element whose ID equals item.ID, appending when none does.
	ReplaceItineraryByID(ctx context.Context, user UserID, id TripID, item ItineraryItem) error

	SetProfile(ctx context.Context, user UserID, profile UserProfile) error
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
