package firestore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lbjllc/travelbook/internal/domain"
)

func TestTripDocRoundTripDropsID(t *testing.T) {
	trip := domain.Trip{
		ID:        "abc",
		Locations: []string{"Kyoto"},
		StartDate: "2024-04-01",
		EndDate:   "2024-04-05",
		Itinerary: []domain.ItineraryItem{{ID: 7, Date: "2024-04-01", Title: "Fushimi Inari", Kind: domain.KindSuggestion}},
	}

	doc := newTripDoc(trip)
	assert.Equal(t, domain.DefaultTravelMethod, doc.TravelMethod)
	assert.Equal(t, "Suggestion", doc.Itinerary[0].Type)

	back := doc.toDomain()
	assert.Empty(t, back.ID)
	assert.Equal(t, trip.Itinerary, back.Itinerary)
}

func TestNewProfileDocNeverNilInterests(t *testing.T) {
	doc := newProfileDoc(domain.UserProfile{HomeCity: "Austin"})
	assert.NotNil(t, doc.Interests)
}
