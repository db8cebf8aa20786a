package httpadapter

import (
	"net/http"

	"github.com/lbjllc/travelbook/internal/domain"
)

// ─────────────────────────────────────────────
// Trips
// ─────────────────────────────────────────────

func (s *Server) handleListTrips(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toTripResponses(s.sess.Engine().Trips().Get()))
}

func (s *Server) handleAddTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !decode(w, r, &req) {
		return
	}
	trip := req.toDomain()
	if err := trip.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.sess.Trips().AddTrip(trip)
	accepted(w)
}

// handleUpdateTrip edits the trip's fields only; the stored itinerary is
// never rewritten. An unknown trip surfaces as a failed mutation event.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !decode(w, r, &req) {
		return
	}
	trip := req.toDomain()
	if err := trip.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.sess.Trips().UpdateTripDetails(tripIDParam(r), trip)
	accepted(w)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	s.sess.Trips().DeleteTrip(tripIDParam(r))
	accepted(w)
}

func (s *Server) handleTimeline(w http.ResponseWriter, _ *http.Request) {
	tl := domain.ClassifyTrips(s.sess.Engine().Trips().Get(), s.now())
	writeJSON(w, http.StatusOK, toTimelineResponse(tl))
}

func (s *Server) handleSelected(w http.ResponseWriter, _ *http.Request) {
	trip := s.sess.Engine().Selected().Get()
	if trip == nil {
		writeError(w, http.StatusNotFound, "no trip selected")
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(*trip))
}

func (s *Server) handleSelectTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	s.sess.Engine().SelectTrip(trip.ID)
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

func (s *Server) handleClearSelection(w http.ResponseWriter, _ *http.Request) {
	s.sess.Engine().ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTripDates(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, datesResponse{
		Dates: domain.DatesBetween(trip.StartDate, trip.EndDate),
		Days:  toDayResponses(domain.GroupItinerary(trip.Itinerary)),
	})
}

// ─────────────────────────────────────────────
// Itinerary
// ─────────────────────────────────────────────

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Title == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, "date and title are required")
		return
	}
	item := req.newItem()
	s.sess.Trips().AddItineraryItem(tripIDParam(r), item)
	writeJSON(w, http.StatusAccepted, toItemResponse(item))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !decode(w, r, &req) {
		return
	}
	s.sess.Trips().RemoveItineraryItem(tripIDParam(r), req.toDomain())
	accepted(w)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req replaceItemRequest
	if !decode(w, r, &req) {
		return
	}
	s.sess.Trips().UpdateItineraryItem(tripIDParam(r), req.Old.toDomain(), req.New.toDomain())
	accepted(w)
}

// ─────────────────────────────────────────────
// Booking pipelines
// ─────────────────────────────────────────────

func (s *Server) handleStartSuggestions(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	req := suggestionsRequest{Type: "Activities"}
	if !decode(w, r, &req) {
		return
	}
	s.sess.Booking().GetSuggestions(trip, req.Type)
	accepted(w)
}

func (s *Server) handleStartFlights(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	var req flightsRequest
	if !decode(w, r, &req) {
		return
	}
	s.sess.Booking().GetFlights(trip, req.From, req.To)
	accepted(w)
}

func (s *Server) handleStartHotels(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	var req hotelsRequest
	if !decode(w, r, &req) {
		return
	}
	s.sess.Booking().GetHotels(trip, req.City)
	accepted(w)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Booking().Suggestions().Get())
}

func (s *Server) handleFlights(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Booking().Flights().Get())
}

func (s *Server) handleHotels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Booking().Hotels().Get())
}

// ─────────────────────────────────────────────
// Profile
// ─────────────────────────────────────────────

func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toProfileDTO(s.sess.Engine().Profile().Get()))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileDTO
	if !decode(w, r, &req) {
		return
	}
	s.sess.Trips().UpdateUserProfile(req.toDomain())
	accepted(w)
}

// ─────────────────────────────────────────────
// Chat
// ─────────────────────────────────────────────

func (s *Server) handleTranscript(w http.ResponseWriter, _ *http.Request) {
	chat := s.sess.Chat()
	writeJSON(w, http.StatusOK, chatResponse{
		Messages: chat.Transcript().Get(),
		Loading:  chat.Loading().Get(),
	})
}

func (s *Server) handleSendChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	s.sess.Chat().Send(req.Message, req.Screen)
	accepted(w)
}

func (s *Server) handleResetChat(w http.ResponseWriter, _ *http.Request) {
	s.sess.Chat().Reset()
	w.WriteHeader(http.StatusNoContent)
}
