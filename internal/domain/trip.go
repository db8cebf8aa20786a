package domain

import (
	"fmt"
	"strings"
	"time"
)

// Trip is one planned journey. ID is empty until the remote store has assigned one.
type Trip struct {
	ID                  TripID
	OriginatingLocation string
	Locations           []string
	StartDate           string
	EndDate             string
	Purpose             string
	TravelMethod        string
	Itinerary           []ItineraryItem
}

// ItineraryItem is a single entry of a trip's day-by-day plan.
//
// Items are compared structurally: two items are the same only when every
// field, ID included, matches.
type ItineraryItem struct {
	ID     int64
	Date   string
	Title  string
	Reason string
	Kind   ItemKind
	Notes  string
}

// UserProfile holds the travel preferences of the signed-in user.
type UserProfile struct {
	HomeCity    string
	TravelStyle string
	TripPace    string
	Interests   []string
}

// NewItineraryItem builds an item whose ID is the construction time in Unix milliseconds.
func NewItineraryItem(date, title, reason string, kind ItemKind) ItineraryItem {
	if kind == "" {
		kind = KindCustom
	}
	return ItineraryItem{
		ID:     time.Now().UnixMilli(),
		Date:   date,
		Title:  title,
		Reason: reason,
		Kind:   kind,
	}
}

// Equal reports structural equality.
func (i ItineraryItem) Equal(other ItineraryItem) bool {
	return i == other
}

// WithNotes returns a copy of the item carrying the given notes.
func (i ItineraryItem) WithNotes(notes string) ItineraryItem {
	i.Notes = notes
	return i
}

// Destination returns the first location, or "" for a trip still being edited.
func (t Trip) Destination() string {
	if len(t.Locations) == 0 {
		return ""
	}
	return t.Locations[0]
}

// Validate checks the fields a trip needs before it can be saved.
func (t Trip) Validate() error {
	var problems []string
	if len(t.Locations) == 0 {
		problems = append(problems, "at least one location is required")
	}
	start, errStart := time.Parse(DateLayout, t.StartDate)
	if errStart != nil {
		problems = append(problems, "startDate must be yyyy-MM-dd")
	}
	end, errEnd := time.Parse(DateLayout, t.EndDate)
	if errEnd != nil {
		problems = append(problems, "endDate must be yyyy-MM-dd")
	}
	if errStart == nil && errEnd == nil {
		switch {
		case end.Before(start):
			problems = append(problems, "endDate is before startDate")
		case end.Sub(start) >= MaxTripDays*24*time.Hour:
			problems = append(problems, fmt.Sprintf("trip is longer than %d days", MaxTripDays))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
