// Package booking runs the suggestion, flight and hotel pipelines: build a
// prompt, ask the completer, parse the JSON it returns, publish the result.
package booking

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/observability"
	"github.com/lbjllc/travelbook/internal/observable"
	"github.com/lbjllc/travelbook/internal/prompt"
)

// State is what one pipeline publishes: idle (zero value), loading, or
// settled with either Items or Err.
type State[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Err     string `json:"error,omitempty"`
}

// pipeline tracks the one request whose result may still be published. A
// new request cancels the previous one; results carrying an old token are
// dropped.
type pipeline[T any] struct {
	name  string
	state *observable.Value[State[T]]

	mu     sync.Mutex
	token  string
	cancel context.CancelFunc
}

func newPipeline[T any](name string) *pipeline[T] {
	return &pipeline[T]{
		name:  name,
		state: observable.New(State[T]{Items: []T{}}),
	}
}

func (p *pipeline[T]) begin() (context.Context, string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.token = uuid.NewString()

	p.state.Set(State[T]{Items: []T{}, Loading: true})
	return ctx, p.token
}

// finish publishes the outcome if token is still current.
func (p *pipeline[T]) finish(token string, items []T, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if token != p.token {
		return false
	}

	p.cancel()
	p.cancel = nil
	p.token = ""

	if err != nil {
		p.state.Set(State[T]{Items: []T{}, Err: "Error: " + err.Error()})
		return true
	}
	p.state.Set(State[T]{Items: items})
	return true
}

type Service struct {
	completer domain.Completer
	profile   func() domain.UserProfile
	log       *slog.Logger

	suggestions *pipeline[domain.Suggestion]
	flights     *pipeline[domain.Flight]
	hotels      *pipeline[domain.Hotel]
}

type Option func(*Service)

// WithProfile supplies the user's profile, used to default the flight origin.
func WithProfile(fn func() domain.UserProfile) Option {
	return func(s *Service) { s.profile = fn }
}

func NewService(completer domain.Completer, opts ...Option) *Service {
	s := &Service{
		completer:   completer,
		profile:     func() domain.UserProfile { return domain.UserProfile{} },
		log:         observability.Component("booking"),
		suggestions: newPipeline[domain.Suggestion]("suggestions"),
		flights:     newPipeline[domain.Flight]("flights"),
		hotels:      newPipeline[domain.Hotel]("hotels"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Suggestions() observable.Readable[State[domain.Suggestion]] {
	return s.suggestions.state
}

func (s *Service) Flights() observable.Readable[State[domain.Flight]] {
	return s.flights.state
}

func (s *Service) Hotels() observable.Readable[State[domain.Hotel]] {
	return s.hotels.state
}

// GetSuggestions asks for ideas of the given kind ("Activities", "Dining", ...).
// The returned channel is closed once this call has settled, whether or not
// its result was published.
func (s *Service) GetSuggestions(trip domain.Trip, kind string) <-chan struct{} {
	return run(s, s.suggestions, trip.ID, prompt.Suggestions(trip, kind), parseSuggestions)
}

// GetFlights searches flights from one city to another. An empty from falls
// back to the trip origin, then the profile's home city, then "Home"; an
// empty to falls back to the trip's first destination.
func (s *Service) GetFlights(trip domain.Trip, from, to string) <-chan struct{} {
	if from == "" {
		from = trip.OriginatingLocation
	}
	if from == "" {
		from = s.profile().HomeCity
	}
	if from == "" {
		from = "Home"
	}
	if to == "" {
		to = trip.Destination()
	}
	return run(s, s.flights, trip.ID, prompt.Flights(trip, from, to), parseFlights)
}

// GetHotels searches hotels in city, by default the trip's first destination.
func (s *Service) GetHotels(trip domain.Trip, city string) <-chan struct{} {
	if city == "" {
		city = trip.Destination()
	}
	return run(s, s.hotels, trip.ID, prompt.Hotels(trip, city), parseHotels)
}

func run[T any](s *Service, p *pipeline[T], tripID domain.TripID, text string, parse func(string) ([]T, error)) <-chan struct{} {
	ctx, token := p.begin()
	log := s.log.With("pipeline", p.name, "trip_id", tripID)
	log.Info("request started")

	done := make(chan struct{})
	go func() {
		defer close(done)

		reply, err := s.completer.Complete(ctx, text)
		var items []T
		if err == nil {
			items, err = parse(reply)
		}

		if !p.finish(token, items, err) {
			log.Debug("superseded result dropped")
			return
		}
		if err != nil {
			log.Error("request failed", "error", err)
			return
		}
		log.Info("request completed", "count", len(items))
	}()
	return done
}
