package tripsync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbjllc/travelbook/internal/adapters/auth"
	"github.com/lbjllc/travelbook/internal/adapters/storage/memory"
	"github.com/lbjllc/travelbook/internal/app/events"
	"github.com/lbjllc/travelbook/internal/app/tripsync"
	"github.com/lbjllc/travelbook/internal/domain"
)

const user = domain.UserID("u1")

func startEngine(t *testing.T, store *memory.Store, opts ...tripsync.Option) *tripsync.Engine {
	t.Helper()
	e := tripsync.NewEngine(store, auth.Static(user), opts...)
	require.NoError(t, e.Start(context.Background()))
	t.Cleanup(e.Stop)
	return e
}

func waitTrips(t *testing.T, e *tripsync.Engine, n int) []domain.Trip {
	t.Helper()
	require.Eventually(t, func() bool { return len(e.Trips().Get()) == n }, time.Second, 5*time.Millisecond)
	return e.Trips().Get()
}

func TestTripIDsComeFromDocumentIdentifiers(t *testing.T) {
	store := memory.NewStore()
	store.Seed(user, "doc-a", domain.Trip{ID: "embedded-a", Locations: []string{"Rome"}})
	store.Seed(user, "doc-b", domain.Trip{ID: "embedded-b", Locations: []string{"Oslo"}})

	e := startEngine(t, store)
	trips := waitTrips(t, e, 2)

	assert.Equal(t, domain.TripID("doc-a"), trips[0].ID)
	assert.Equal(t, domain.TripID("doc-b"), trips[1].ID)
}

func TestRemoteChangesReplaceCollection(t *testing.T) {
	store := memory.NewStore()
	e := startEngine(t, store)
	waitTrips(t, e, 0)

	id, err := store.AddTrip(context.Background(), user, domain.Trip{Locations: []string{"Lima"}})
	require.NoError(t, err)
	waitTrips(t, e, 1)

	require.NoError(t, store.DeleteTrip(context.Background(), user, id))
	waitTrips(t, e, 0)
}

func TestSubscriptionErrorKeepsStateAndResubscribes(t *testing.T) {
	store := memory.NewStore()
	store.Seed(user, "doc-a", domain.Trip{Locations: []string{"Rome"}})

	bus := events.NewBus()
	evs := bus.Subscribe(8)
	e := startEngine(t, store, tripsync.WithEvents(bus), tripsync.WithWatchRetries(3, time.Millisecond))
	waitTrips(t, e, 1)

	store.BreakWatches(user, errors.New("stream reset"))

	ev := <-evs
	assert.Equal(t, events.KindWatch, ev.Kind)
	var werr *domain.RemoteWatchError
	require.ErrorAs(t, ev.Err, &werr)
	assert.Len(t, e.Trips().Get(), 1, "prior snapshot survives the failure")

	// the re-opened subscription keeps delivering
	store.Seed(user, "doc-b", domain.Trip{Locations: []string{"Oslo"}})
	waitTrips(t, e, 2)
}

func TestStartWithoutUserIsNoop(t *testing.T) {
	e := tripsync.NewEngine(memory.NewStore(), auth.Static(""))
	assert.ErrorIs(t, e.Start(context.Background()), domain.ErrAuthMissing)
	assert.Empty(t, e.Trips().Get())
	e.Stop()
}

func TestSelectTrip(t *testing.T) {
	store := memory.NewStore()
	store.Seed(user, "doc-a", domain.Trip{Locations: []string{"Rome"}, Purpose: "art"})
	e := startEngine(t, store)
	waitTrips(t, e, 1)

	e.SelectTrip("doc-a")
	sel := e.Selected().Get()
	require.NotNil(t, sel)
	assert.Equal(t, "art", sel.Purpose)

	e.SelectTrip("missing")
	assert.Nil(t, e.Selected().Get())
}

func TestSelectionFollowsSnapshots(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.Seed(user, "doc-a", domain.Trip{Locations: []string{"Rome"}, Purpose: "art"})
	e := startEngine(t, store)
	waitTrips(t, e, 1)
	e.SelectTrip("doc-a")

	require.NoError(t, store.SetTrip(ctx, user, "doc-a", domain.Trip{Locations: []string{"Rome"}, Purpose: "food"}))
	require.Eventually(t, func() bool {
		sel := e.Selected().Get()
		return sel != nil && sel.Purpose == "food"
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, store.DeleteTrip(ctx, user, "doc-a"))
	require.Eventually(t, func() bool { return e.Selected().Get() == nil }, time.Second, 5*time.Millisecond)
}

func TestProfileAbsentUntilSaved(t *testing.T) {
	store := memory.NewStore()
	e := startEngine(t, store)
	waitTrips(t, e, 0)
	assert.Equal(t, domain.UserProfile{}, e.Profile().Get())

	require.NoError(t, store.SetProfile(context.Background(), user, domain.UserProfile{HomeCity: "Austin"}))
	require.Eventually(t, func() bool { return e.Profile().Get().HomeCity == "Austin" }, time.Second, 5*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	e := tripsync.NewEngine(memory.NewStore(), auth.Static(user))
	require.NoError(t, e.Start(context.Background()))
	require.NoError(t, e.Start(context.Background()))
	e.Stop()
	e.Stop()
}
