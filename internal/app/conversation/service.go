// Package conversation keeps the assistant chat transcript.
package conversation

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/observability"
	"github.com/lbjllc/travelbook/internal/observable"
	"github.com/lbjllc/travelbook/internal/prompt"
)

// Service appends the user's message right away and the assistant's reply
// once the completer answers. A failed completion becomes
// domain.ChatFallbackReply; the cause is only logged.
type Service struct {
	completer domain.Completer
	selected  observable.Readable[*domain.Trip]
	log       *slog.Logger

	transcript *observable.Value[[]domain.ChatMessage]
	loading    *observable.Value[bool]

	mu       sync.Mutex
	inFlight int
	wg       sync.WaitGroup
}

type Option func(*Service)

// WithSelectedTrip adds the currently selected trip, when there is one, to
// every chat prompt.
func WithSelectedTrip(selected observable.Readable[*domain.Trip]) Option {
	return func(s *Service) { s.selected = selected }
}

func NewService(completer domain.Completer, opts ...Option) *Service {
	s := &Service{
		completer:  completer,
		log:        observability.Component("conversation"),
		transcript: observable.New([]domain.ChatMessage{}),
		loading:    observable.New(false),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Transcript() observable.Readable[[]domain.ChatMessage] { return s.transcript }

// Loading stays true while any sent message is still waiting for its reply.
func (s *Service) Loading() observable.Readable[bool] { return s.loading }

// Send posts message from the given screen ("planning", "liveTrip", ...).
// Blank messages are ignored and yield an already closed channel; otherwise
// the channel is closed once the reply has been appended.
func (s *Service) Send(message, screen string) <-chan struct{} {
	done := make(chan struct{})
	if strings.TrimSpace(message) == "" {
		close(done)
		return done
	}

	s.appendMessage(domain.ChatMessage{Text: message, IsUser: true})
	s.begin()

	var trip *domain.Trip
	if s.selected != nil {
		trip = s.selected.Get()
	}
	text := prompt.Chat(screen, trip, message)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		defer s.end()

		reply, err := s.completer.Complete(context.Background(), text)
		if err != nil {
			s.log.Error("chat completion failed", "screen", screen, "error", err)
			reply = domain.ChatFallbackReply
		}
		s.appendMessage(domain.ChatMessage{Text: reply})
	}()
	return done
}

// Reset empties the transcript. Replies still in flight are appended to the
// new transcript when they arrive.
func (s *Service) Reset() {
	s.transcript.Set([]domain.ChatMessage{})
}

// Wait blocks until every sent message has its reply.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) appendMessage(m domain.ChatMessage) {
	s.transcript.Update(func(cur []domain.ChatMessage) []domain.ChatMessage {
		next := make([]domain.ChatMessage, len(cur), len(cur)+1)
		copy(next, cur)
		return append(next, m)
	})
}

func (s *Service) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight++
	s.loading.Set(true)
}

func (s *Service) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if s.inFlight == 0 {
		s.loading.Set(false)
	}
}
