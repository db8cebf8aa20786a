package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lbjllc/travelbook/internal/app/session"
	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/observability"
)

const maxBodyBytes = 1 << 20

type Server struct {
	sess *session.Session
	now  func() time.Time
}

type Option func(*Server)

// WithClock overrides the clock used to classify trips.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer exposes sess over JSON. Mutations and pipeline starts answer 202
// right away; their outcome shows up in the GET endpoints once the store or
// the completion API has answered.
func NewServer(sess *session.Session, allowedOrigins []string, opts ...Option) http.Handler {
	s := &Server{sess: sess, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(withRequestContext)
	r.Use(newRequestLogger(observability.Component("http")))
	r.Use(chimiddleware.Recoverer)
	r.Use(newCORSHandler(allowedOrigins))
	r.Use(withMaxBody(maxBodyBytes))

	r.Get("/healthz", s.handleHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.handleListTrips)
		r.Post("/", s.handleAddTrip)
		r.Get("/timeline", s.handleTimeline)
		r.Get("/selected", s.handleSelected)
		r.Delete("/selected", s.handleClearSelection)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Put("/", s.handleUpdateTrip)
			r.Delete("/", s.handleDeleteTrip)
			r.Post("/select", s.handleSelectTrip)
			r.Get("/dates", s.handleTripDates)

			r.Post("/itinerary", s.handleAddItem)
			r.Delete("/itinerary", s.handleRemoveItem)
			r.Put("/itinerary", s.handleUpdateItem)

			r.Post("/suggestions", s.handleStartSuggestions)
			r.Post("/flights", s.handleStartFlights)
			r.Post("/hotels", s.handleStartHotels)
		})
	})

	r.Get("/suggestions", s.handleSuggestions)
	r.Get("/flights", s.handleFlights)
	r.Get("/hotels", s.handleHotels)

	r.Get("/profile", s.handleGetProfile)
	r.Put("/profile", s.handleUpdateProfile)

	r.Get("/chat", s.handleTranscript)
	r.Post("/chat", s.handleSendChat)
	r.Delete("/chat", s.handleResetChat)

	return r
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func accepted(w http.ResponseWriter) {
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid JSON body")
	return false
}

func tripIDParam(r *http.Request) domain.TripID {
	return domain.TripID(chi.URLParam(r, "tripID"))
}

// lookupTrip finds the trip in the last synchronized snapshot.
func (s *Server) lookupTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	trip, ok := s.sess.Engine().Trip(tripIDParam(r))
	if !ok {
		writeError(w, http.StatusNotFound, "trip not found")
		return domain.Trip{}, false
	}
	return *trip, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
