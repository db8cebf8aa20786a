// Package tripsync mirrors the user's remote trips and profile into observable state.
package tripsync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/lbjllc/travelbook/internal/app/events"
	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/observability"
	"github.com/lbjllc/travelbook/internal/observable"
)

// Engine owns the canonical in-memory trip collection. Every remote push
// replaces the whole collection; local writes are only visible once the
// store pushes them back.
type Engine struct {
	store     domain.RemoteStore
	identity  domain.Identity
	bus       *events.Bus
	retries   int
	retryBase time.Duration
	log       *slog.Logger

	trips    *observable.Value[[]domain.Trip]
	selected *observable.Value[*domain.Trip]
	profile  *observable.Value[domain.UserProfile]

	selMu      sync.Mutex
	selectedID domain.TripID

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Engine)

// WithEvents publishes subscription failures on bus.
func WithEvents(bus *events.Bus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithWatchRetries sets how many times a failed subscription is re-opened
// and the first backoff delay, which doubles on every attempt.
func WithWatchRetries(n int, base time.Duration) Option {
	return func(e *Engine) {
		e.retries = n
		if base > 0 {
			e.retryBase = base
		}
	}
}

func NewEngine(store domain.RemoteStore, identity domain.Identity, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		identity:  identity,
		retries:   5,
		retryBase: 500 * time.Millisecond,
		log:       observability.Component("tripsync"),
		trips:     observable.New([]domain.Trip{}),
		selected:  observable.New[*domain.Trip](nil),
		profile:   observable.New(domain.UserProfile{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Trips is the last snapshot of the collection. Treat the slice as read-only.
func (e *Engine) Trips() observable.Readable[[]domain.Trip] { return e.trips }

// Selected is the trip chosen with SelectTrip, or nil.
func (e *Engine) Selected() observable.Readable[*domain.Trip] { return e.selected }

// Profile is the zero profile until the profile document first exists.
func (e *Engine) Profile() observable.Readable[domain.UserProfile] { return e.profile }

// Start opens both subscriptions and returns immediately. Without a signed-in
// user it does nothing and returns domain.ErrAuthMissing. Calling Start on a
// running engine is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	user, ok := e.identity.CurrentUser()
	if !ok {
		e.log.Warn("no signed-in user, not subscribing")
		return domain.ErrAuthMissing
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})

	var g errgroup.Group
	g.Go(func() error {
		e.watch(runCtx, "trips", func(ctx context.Context) error {
			return e.store.WatchTrips(ctx, user, e.onTrips)
		})
		return nil
	})
	g.Go(func() error {
		e.watch(runCtx, "profile", func(ctx context.Context) error {
			return e.store.WatchProfile(ctx, user, e.onProfile)
		})
		return nil
	})

	done := e.done
	go func() {
		_ = g.Wait()
		close(done)
	}()

	e.log.Info("subscriptions started", "user_id", user)
	return nil
}

// Stop cancels the subscriptions and waits for them to end. Published state is kept.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	e.log.Info("subscriptions stopped")
}

// watch keeps one subscription open. A failure leaves the published state
// as it was, is reported on the event bus, and the subscription is
// re-opened with exponential backoff until the retry budget runs out.
func (e *Engine) watch(ctx context.Context, target string, open func(context.Context) error) {
	backoff := retry.WithMaxRetries(uint64(e.retries), retry.NewExponential(e.retryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := open(ctx)
		if err == nil {
			return nil
		}

		werr := &domain.RemoteWatchError{Target: target, Err: err}
		e.log.Error("subscription failed, keeping last snapshot", "target", target, "error", err)
		e.bus.Publish(events.Event{Kind: events.KindWatch, Op: "watch_" + target, Err: werr})
		return retry.RetryableError(werr)
	})
	if err != nil && ctx.Err() == nil {
		e.log.Error("subscription abandoned", "target", target, "error", err)
	}
}

func (e *Engine) onTrips(trips []domain.Trip) {
	if trips == nil {
		trips = []domain.Trip{}
	}
	e.trips.Set(trips)
	e.refreshSelection(trips)
	e.log.Debug("trips snapshot applied", "count", len(trips))
}

func (e *Engine) onProfile(p *domain.UserProfile) {
	if p == nil {
		return
	}
	e.profile.Set(*p)
}

// SelectTrip looks id up in the last snapshot and publishes the match, or
// clears the selection when there is none.
func (e *Engine) SelectTrip(id domain.TripID) {
	e.selMu.Lock()
	defer e.selMu.Unlock()

	trip, ok := findTrip(e.trips.Get(), id)
	if !ok {
		e.selectedID = ""
		e.selected.Set(nil)
		return
	}
	e.selectedID = id
	e.selected.Set(trip)
}

// ClearSelection publishes no selected trip.
func (e *Engine) ClearSelection() {
	e.selMu.Lock()
	defer e.selMu.Unlock()
	e.selectedID = ""
	e.selected.Set(nil)
}

// refreshSelection re-points the selection at the newest copy of the trip.
func (e *Engine) refreshSelection(trips []domain.Trip) {
	e.selMu.Lock()
	defer e.selMu.Unlock()
	if e.selectedID == "" {
		return
	}

	trip, ok := findTrip(trips, e.selectedID)
	if !ok {
		e.selectedID = ""
		e.selected.Set(nil)
		return
	}
	e.selected.Set(trip)
}

// Trip returns a copy of the trip with id from the last snapshot.
func (e *Engine) Trip(id domain.TripID) (*domain.Trip, bool) {
	return findTrip(e.trips.Get(), id)
}

func findTrip(trips []domain.Trip, id domain.TripID) (*domain.Trip, bool) {
	trip, ok := lo.Find(trips, func(t domain.Trip) bool { return t.ID == id })
	if !ok {
		return nil, false
	}
	return &trip, true
}
