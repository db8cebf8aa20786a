package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lbjllc/travelbook/internal/domain"
)

func TestDatesBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"inclusive range", "2024-03-01", "2024-03-03", []string{"2024-03-01", "2024-03-02", "2024-03-03"}},
		{"single day", "2024-03-01", "2024-03-01", []string{"2024-03-01"}},
		{"crosses month end", "2024-02-28", "2024-03-01", []string{"2024-02-28", "2024-02-29", "2024-03-01"}},
		{"start after end", "2024-03-05", "2024-03-01", []string{"2024-03-05"}},
		{"unparsable start", "03/01/2024", "2024-03-03", []string{}},
		{"unparsable end", "2024-03-01", "soon", []string{}},
		{"empty", "", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DatesBetween(tt.start, tt.end))
		})
	}
}

func TestClassifyTrips(t *testing.T) {
	today := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	trips := []domain.Trip{
		{ID: "past", StartDate: "2024-05-01", EndDate: "2024-05-04"},
		{ID: "now", StartDate: "2024-06-08", EndDate: "2024-06-10"},
		{ID: "later", StartDate: "2024-07-01", EndDate: "2024-07-02"},
		{ID: "broken", StartDate: "someday", EndDate: "2024-07-02"},
	}

	tl := domain.ClassifyTrips(trips, today)

	if assert.NotNil(t, tl.Current) {
		assert.Equal(t, domain.TripID("now"), tl.Current.ID)
	}
	assert.Len(t, tl.Upcoming, 1)
	assert.Equal(t, domain.TripID("later"), tl.Upcoming[0].ID)
	assert.Len(t, tl.Past, 1)
	assert.Equal(t, domain.TripID("past"), tl.Past[0].ID)
}

func TestTripValidate(t *testing.T) {
	ok := domain.Trip{Locations: []string{"Lisbon"}, StartDate: "2024-03-01", EndDate: "2024-03-03"}
	assert.NoError(t, ok.Validate())

	bad := domain.Trip{StartDate: "2024-03-05", EndDate: "2024-03-01"}
	err := bad.Validate()
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "location")
	assert.Contains(t, err.Error(), "before")

	endless := domain.Trip{Locations: []string{"Lisbon"}, StartDate: "0001-01-01", EndDate: "9999-12-31"}
	assert.ErrorIs(t, endless.Validate(), domain.ErrValidation)

	longest := domain.Trip{Locations: []string{"Lisbon"}, StartDate: "2024-01-01"}
	longest.EndDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, domain.MaxTripDays-1).Format(domain.DateLayout)
	assert.NoError(t, longest.Validate())
}

func TestDatesBetweenIsCapped(t *testing.T) {
	dates := domain.DatesBetween("0001-01-01", "9999-12-31")
	assert.Len(t, dates, domain.MaxTripDays)
	assert.Equal(t, "0001-01-01", dates[0])
}
