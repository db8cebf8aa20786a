package httpadapter

import (
	"github.com/lbjllc/travelbook/internal/domain"
)

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type tripRequest struct {
	OriginatingLocation string   `json:"originatingLocation"`
	Locations           []string `json:"locations"`
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	Purpose             string   `json:"purpose"`
	TravelMethod        string   `json:"travelMethod,omitempty"`
}

type tripResponse struct {
	ID                  string         `json:"id"`
	OriginatingLocation string         `json:"originatingLocation"`
	Locations           []string       `json:"locations"`
	StartDate           string         `json:"startDate"`
	EndDate             string         `json:"endDate"`
	Purpose             string         `json:"purpose"`
	TravelMethod        string         `json:"travelMethod"`
	Itinerary           []itemResponse `json:"itinerary"`
}

type timelineResponse struct {
	Current  *tripResponse  `json:"current"`
	Upcoming []tripResponse `json:"upcoming"`
	Past     []tripResponse `json:"past"`
}

// itemRequest without an id creates a new entry.
type itemRequest struct {
	ID     int64  `json:"id,omitempty"`
	Date   string `json:"date"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
	Type   string `json:"type,omitempty"`
	Notes  string `json:"notes"`
}

type itemResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
	Type   string `json:"type"`
	Notes  string `json:"notes"`
}

type replaceItemRequest struct {
	Old itemRequest `json:"old"`
	New itemRequest `json:"new"`
}

type dayResponse struct {
	Date  string         `json:"date"`
	Items []itemResponse `json:"items"`
}

type datesResponse struct {
	Dates []string      `json:"dates"`
	Days  []dayResponse `json:"days"`
}

type profileDTO struct {
	HomeCity    string   `json:"homeCity"`
	TravelStyle string   `json:"travelStyle"`
	TripPace    string   `json:"tripPace"`
	Interests   []string `json:"interests"`
}

type suggestionsRequest struct {
	Type string `json:"type"`
}

type flightsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type hotelsRequest struct {
	City string `json:"city"`
}

type chatRequest struct {
	Message string `json:"message"`
	Screen  string `json:"screen"`
}

type chatResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
	Loading  bool                 `json:"loading"`
}

// ─────────────────────────────────────────────
// Conversions
// ─────────────────────────────────────────────

func (r tripRequest) toDomain() domain.Trip {
	method := r.TravelMethod
	if method == "" {
		method = domain.DefaultTravelMethod
	}
	return domain.Trip{
		OriginatingLocation: r.OriginatingLocation,
		Locations:           r.Locations,
		StartDate:           r.StartDate,
		EndDate:             r.EndDate,
		Purpose:             r.Purpose,
		TravelMethod:        method,
	}
}

func toTripResponse(t domain.Trip) tripResponse {
	locations := t.Locations
	if locations == nil {
		locations = []string{}
	}
	return tripResponse{
		ID:                  string(t.ID),
		OriginatingLocation: t.OriginatingLocation,
		Locations:           locations,
		StartDate:           t.StartDate,
		EndDate:             t.EndDate,
		Purpose:             t.Purpose,
		TravelMethod:        t.TravelMethod,
		Itinerary:           toItemResponses(t.Itinerary),
	}
}

func toTripResponses(trips []domain.Trip) []tripResponse {
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	return out
}

func toTimelineResponse(tl domain.Timeline) timelineResponse {
	resp := timelineResponse{
		Upcoming: toTripResponses(tl.Upcoming),
		Past:     toTripResponses(tl.Past),
	}
	if tl.Current != nil {
		cur := toTripResponse(*tl.Current)
		resp.Current = &cur
	}
	return resp
}

// toDomain keeps the id exactly as sent: removal and replacement match on
// the whole value.
func (r itemRequest) toDomain() domain.ItineraryItem {
	return domain.ItineraryItem{
		ID:     r.ID,
		Date:   r.Date,
		Title:  r.Title,
		Reason: r.Reason,
		Kind:   domain.ItemKind(r.Type),
		Notes:  r.Notes,
	}
}

// newItem builds an entry for insertion, assigning an id when none was sent.
func (r itemRequest) newItem() domain.ItineraryItem {
	if r.ID != 0 {
		item := r.toDomain()
		if item.Kind == "" {
			item.Kind = domain.KindCustom
		}
		return item
	}
	return domain.NewItineraryItem(r.Date, r.Title, r.Reason, domain.ItemKind(r.Type)).WithNotes(r.Notes)
}

func toItemResponse(i domain.ItineraryItem) itemResponse {
	return itemResponse{
		ID:     i.ID,
		Date:   i.Date,
		Title:  i.Title,
		Reason: i.Reason,
		Type:   string(i.Kind),
		Notes:  i.Notes,
	}
}

func toItemResponses(items []domain.ItineraryItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

func toDayResponses(days []domain.DayPlan) []dayResponse {
	out := make([]dayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dayResponse{Date: d.Date, Items: toItemResponses(d.Items)})
	}
	return out
}

func (p profileDTO) toDomain() domain.UserProfile {
	return domain.UserProfile{
		HomeCity:    p.HomeCity,
		TravelStyle: p.TravelStyle,
		TripPace:    p.TripPace,
		Interests:   p.Interests,
	}
}

func toProfileDTO(p domain.UserProfile) profileDTO {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return profileDTO{
		HomeCity:    p.HomeCity,
		TravelStyle: p.TravelStyle,
		TripPace:    p.TripPace,
		Interests:   interests,
	}
}
