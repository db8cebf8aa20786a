package firestore

import "github.com/lbjllc/travelbook/internal/domain"

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

// tripDoc has no id field: the document id is the trip id.
type tripDoc struct {
	OriginatingLocation string    `firestore:"originatingLocation"`
	Locations           []string  `firestore:"locations"`
	StartDate           string    `firestore:"startDate"`
	EndDate             string    `firestore:"endDate"`
	Purpose             string    `firestore:"purpose"`
	TravelMethod        string    `firestore:"travelMethod"`
	Itinerary           []itemDoc `firestore:"itinerary"`
}

// itemDoc field order and names must stay stable: array union/removal
// compares whole values.
type itemDoc struct {
	ID     int64  `firestore:"id"`
	Date   string `firestore:"date"`
	Title  string `firestore:"title"`
	Reason string `firestore:"reason"`
	Type   string `firestore:"type"`
	Notes  string `firestore:"notes"`
}

type profileDoc struct {
	HomeCity    string   `firestore:"homeCity"`
	TravelStyle string   `firestore:"travelStyle"`
	TripPace    string   `firestore:"tripPace"`
	Interests   []string `firestore:"interests"`
}

func newTripDoc(t domain.Trip) tripDoc {
	method := t.TravelMethod
	if method == "" {
		method = domain.DefaultTravelMethod
	}
	locations := t.Locations
	if locations == nil {
		locations = []string{}
	}
	return tripDoc{
		OriginatingLocation: t.OriginatingLocation,
		Locations:           locations,
		StartDate:           t.StartDate,
		EndDate:             t.EndDate,
		Purpose:             t.Purpose,
		TravelMethod:        method,
		Itinerary:           newItemDocs(t.Itinerary),
	}
}

func (d tripDoc) toDomain() domain.Trip {
	items := make([]domain.ItineraryItem, 0, len(d.Itinerary))
	for _, it := range d.Itinerary {
		items = append(items, it.toDomain())
	}
	return domain.Trip{
		OriginatingLocation: d.OriginatingLocation,
		Locations:           d.Locations,
		StartDate:           d.StartDate,
		EndDate:             d.EndDate,
		Purpose:             d.Purpose,
		TravelMethod:        d.TravelMethod,
		Itinerary:           items,
	}
}

func newItemDoc(i domain.ItineraryItem) itemDoc {
	return itemDoc{
		ID:     i.ID,
		Date:   i.Date,
		Title:  i.Title,
		Reason: i.Reason,
		Type:   string(i.Kind),
		Notes:  i.Notes,
	}
}

func newItemDocs(items []domain.ItineraryItem) []itemDoc {
	out := make([]itemDoc, 0, len(items))
	for _, it := range items {
		out = append(out, newItemDoc(it))
	}
	return out
}

func itemValues(items []domain.ItineraryItem) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, newItemDoc(it))
	}
	return out
}

func (d itemDoc) toDomain() domain.ItineraryItem {
	return domain.ItineraryItem{
		ID:     d.ID,
		Date:   d.Date,
		Title:  d.Title,
		Reason: d.Reason,
		Kind:   domain.ItemKind(d.Type),
		Notes:  d.Notes,
	}
}

func newProfileDoc(p domain.UserProfile) profileDoc {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return profileDoc{
		HomeCity:    p.HomeCity,
		TravelStyle: p.TravelStyle,
		TripPace:    p.TripPace,
		Interests:   interests,
	}
}

func (d profileDoc) toDomain() domain.UserProfile {
	return domain.UserProfile{
		HomeCity:    d.HomeCity,
		TravelStyle: d.TravelStyle,
		TripPace:    d.TripPace,
		Interests:   d.Interests,
	}
}
