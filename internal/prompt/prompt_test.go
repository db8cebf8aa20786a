package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lbjllc/travelbook/internal/domain"
	"github.com/lbjllc/travelbook/internal/prompt"
)

var lisbon = domain.Trip{
	Locations: []string{"Lisbon", "Porto"},
	StartDate: "2024-09-01",
	EndDate:   "2024-09-07",
	Purpose:   "food and wine",
}

func TestSuggestions(t *testing.T) {
	p := prompt.Suggestions(lisbon, "Dining")
	assert.Contains(t, p, "Lisbon and Porto")
	assert.Contains(t, p, `"food and wine"`)
	assert.Contains(t, p, "interesting dining")
	assert.Contains(t, p, `"title"`)
	assert.Contains(t, p, `"reason"`)
}

func TestFlightsAndHotelsCarryDates(t *testing.T) {
	f := prompt.Flights(lisbon, "Austin", "Lisbon")
	assert.Contains(t, f, "from Austin to Lisbon")
	assert.Contains(t, f, "2024-09-01")
	assert.Contains(t, f, `"flightNumber"`)

	h := prompt.Hotels(lisbon, "Porto")
	assert.Contains(t, h, "hotels in Porto")
	assert.Contains(t, h, "2024-09-07")
	assert.Contains(t, h, `"amenities"`)
}

func TestChat(t *testing.T) {
	withTrip := prompt.Chat("liveTrip", &lisbon, "where to eat tonight?")
	assert.Contains(t, withTrip, "live trip")
	assert.Contains(t, withTrip, "Lisbon, Porto")
	assert.Contains(t, withTrip, "food and wine")
	assert.Contains(t, withTrip, "where to eat tonight?")

	noTrip := prompt.Chat("", nil, "hi")
	assert.NotContains(t, noTrip, "Current trip")
	assert.Contains(t, noTrip, "Screen: trip planning")

	other := prompt.Chat("accommodation", nil, "hi")
	assert.Contains(t, other, "opened the assistant from: accommodation")
}
