package firestore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsstore "github.com/lbjllc/travelbook/internal/adapters/storage/firestore"
	"github.com/lbjllc/travelbook/internal/domain"
)

// newEmulatorStore needs a running emulator, e.g.
// gcloud emulators firestore start --host-port=localhost:8681
func newEmulatorStore(t *testing.T) *fsstore.Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	s, err := fsstore.NewStore(context.Background(), "travelbook-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewStoreRequiresProject(t *testing.T) {
	_, err := fsstore.NewStore(context.Background(), "")
	assert.Error(t, err)
}

func TestEmulatorItineraryArraySemantics(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()
	user := domain.UserID(uuid.NewString())

	id, err := s.AddTrip(ctx, user, domain.Trip{Locations: []string{"Porto"}, StartDate: "2024-05-01", EndDate: "2024-05-02"})
	require.NoError(t, err)

	item := domain.ItineraryItem{ID: 1, Date: "2024-05-01", Title: "Livraria Lello", Kind: domain.KindSuggestion}
	require.NoError(t, s.UnionItinerary(ctx, user, id, item))
	require.NoError(t, s.UnionItinerary(ctx, user, id, item))

	edited := item.WithNotes("book tickets")
	require.NoError(t, s.ReplaceItinerary(ctx, user, id, item, edited))

	wctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var got []domain.Trip
	_ = s.WatchTrips(wctx, user, func(trips []domain.Trip) {
		got = trips
		cancel()
	})

	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, []domain.ItineraryItem{edited}, got[0].Itinerary)
}

func TestEmulatorUpdateTripDetailsKeepsItinerary(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()
	user := domain.UserID(uuid.NewString())

	id, err := s.AddTrip(ctx, user, domain.Trip{Locations: []string{"Porto"}, StartDate: "2024-05-01", EndDate: "2024-05-02"})
	require.NoError(t, err)
	item := domain.ItineraryItem{ID: 2, Date: "2024-05-01", Title: "Ribeira", Kind: domain.KindCustom}
	require.NoError(t, s.UnionItinerary(ctx, user, id, item))

	require.NoError(t, s.UpdateTripDetails(ctx, user, id, domain.Trip{Locations: []string{"Braga"}, StartDate: "2024-05-01", EndDate: "2024-05-03"}))

	wctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var got []domain.Trip
	_ = s.WatchTrips(wctx, user, func(trips []domain.Trip) {
		got = trips
		cancel()
	})

	require.Len(t, got, 1)
	assert.Equal(t, []string{"Braga"}, got[0].Locations)
	assert.Equal(t, "2024-05-03", got[0].EndDate)
	assert.Equal(t, []domain.ItineraryItem{item}, got[0].Itinerary)

	assert.Error(t, s.UpdateTripDetails(ctx, user, "missing", domain.Trip{Locations: []string{"Braga"}}))
}
