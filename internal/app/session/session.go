// Package session wires the sync engine, mutation API, booking pipelines and
// chat around one signed-in user.
package session

import (
	"context"
	"time"

	"github.com/lbjllc/travelbook/internal/app/booking"
	"github.com/lbjllc/travelbook/internal/app/conversation"
	"github.com/lbjllc/travelbook/internal/app/events"
	"github.com/lbjllc/travelbook/internal/app/trips"
	"github.com/lbjllc/travelbook/internal/app/tripsync"
	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/observability"
)

type Options struct {
	Keying trips.Keying
	// WatchRetries of zero keeps the engine default.
	WatchRetries int
	// RetryBase is the first delay before a failed subscription is re-opened.
	RetryBase time.Duration
}

// Session owns all state for one user. Nothing is shared between sessions.
type Session struct {
	bus     *events.Bus
	engine  *tripsync.Engine
	trips   *trips.Service
	booking *booking.Service
	chat    *conversation.Service
}

func New(store domain.RemoteStore, completer domain.Completer, identity domain.Identity, opts Options) *Session {
	bus := events.NewBus()

	engineOpts := []tripsync.Option{tripsync.WithEvents(bus)}
	if opts.WatchRetries > 0 {
		engineOpts = append(engineOpts, tripsync.WithWatchRetries(opts.WatchRetries, opts.RetryBase))
	}
	engine := tripsync.NewEngine(store, identity, engineOpts...)

	return &Session{
		bus:    bus,
		engine: engine,
		trips: trips.NewService(store, identity,
			trips.WithEvents(bus),
			trips.WithKeying(opts.Keying),
		),
		booking: booking.NewService(completer,
			booking.WithProfile(engine.Profile().Get),
		),
		chat: conversation.NewService(completer,
			conversation.WithSelectedTrip(engine.Selected()),
		),
	}
}

// Start opens the remote subscriptions. It returns domain.ErrAuthMissing
// when no user is signed in; the session is still usable but stays empty.
func (s *Session) Start(ctx context.Context) error {
	return s.engine.Start(ctx)
}

// Stop closes the subscriptions and waits for pending writes and chat
// replies. Published state stays readable.
func (s *Session) Stop() {
	s.engine.Stop()
	s.trips.Wait()
	s.chat.Wait()
	observability.Component("session").Info("session stopped")
}

func (s *Session) Engine() *tripsync.Engine    { return s.engine }
func (s *Session) Trips() *trips.Service       { return s.trips }
func (s *Session) Booking() *booking.Service   { return s.booking }
func (s *Session) Chat() *conversation.Service { return s.chat }
func (s *Session) Events() *events.Bus         { return s.bus }
