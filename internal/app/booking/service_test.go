package booking_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbjllc/travelbook/internal/app/booking"
	"github.com/lbjllc/travelbook/internal/domain"
)

var paris = domain.Trip{
	ID:        "t1",
	Locations: []string{"Paris", "Lyon"},
	StartDate: "2024-05-01",
	EndDate:   "2024-05-04",
	Purpose:   "food",
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not settle")
	}
}

func TestGetSuggestionsSuccess(t *testing.T) {
	var prompt string
	svc := booking.NewService(domain.CompleterFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return `[{"title":"Les Halles","reason":"markets"}]`, nil
	}))

	wait(t, svc.GetSuggestions(paris, "Dining"))

	st := svc.Suggestions().Get()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
	assert.Equal(t, []domain.Suggestion{{Title: "Les Halles", Reason: "markets"}}, st.Items)
	assert.Contains(t, prompt, "Paris and Lyon")
	assert.Contains(t, prompt, "dining")
}

func TestGetSuggestionsMissingReason(t *testing.T) {
	svc := booking.NewService(domain.CompleterFunc(func(context.Context, string) (string, error) {
		return `[{"title":"Les Halles"}]`, nil
	}))

	wait(t, svc.GetSuggestions(paris, "Activities"))

	st := svc.Suggestions().Get()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Items)
	assert.True(t, strings.HasPrefix(st.Err, "Error: "), st.Err)
}

func TestTransportFailureClearsItems(t *testing.T) {
	fail := false
	svc := booking.NewService(domain.CompleterFunc(func(context.Context, string) (string, error) {
		if fail {
			return "", &domain.TransportError{Op: "complete", Err: errors.New("connection reset")}
		}
		return `[{"name":"Inn","rating":4,"pricePerNight":80,"amenities":[]}]`, nil
	}))

	wait(t, svc.GetHotels(paris, ""))
	require.Len(t, svc.Hotels().Get().Items, 1)

	fail = true
	wait(t, svc.GetHotels(paris, ""))

	st := svc.Hotels().Get()
	assert.Empty(t, st.Items)
	assert.Contains(t, st.Err, "connection reset")
}

func TestLoadingIsPublishedWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	svc := booking.NewService(domain.CompleterFunc(func(context.Context, string) (string, error) {
		<-release
		return `[]`, nil
	}))

	done := svc.GetFlights(paris, "", "")
	st := svc.Flights().Get()
	assert.True(t, st.Loading)
	assert.Empty(t, st.Items)
	assert.Empty(t, st.Err)

	close(release)
	wait(t, done)
	assert.False(t, svc.Flights().Get().Loading)
}

func TestLastIssuedRequestWins(t *testing.T) {
	first := make(chan struct{})
	var calls sync.WaitGroup
	calls.Add(2)

	svc := booking.NewService(domain.CompleterFunc(func(ctx context.Context, p string) (string, error) {
		calls.Done()
		if strings.Contains(p, "activities") {
			// the superseded call only answers after the newer one settled
			<-first
			return `[{"title":"stale","reason":"old"}]`, nil
		}
		return `[{"title":"fresh","reason":"new"}]`, nil
	}))

	older := svc.GetSuggestions(paris, "Activities")
	newer := svc.GetSuggestions(paris, "Dining")
	wait(t, newer)
	close(first)
	wait(t, older)
	calls.Wait()

	st := svc.Suggestions().Get()
	assert.Equal(t, []domain.Suggestion{{Title: "fresh", Reason: "new"}}, st.Items)
	assert.False(t, st.Loading)
}

func TestFlightEndpointsDefaults(t *testing.T) {
	cases := []struct {
		name    string
		trip    domain.Trip
		profile domain.UserProfile
		want    string
	}{
		{"trip origin", domain.Trip{OriginatingLocation: "Berlin", Locations: []string{"Rome"}}, domain.UserProfile{HomeCity: "Madrid"}, "from Berlin to Rome"},
		{"profile home city", domain.Trip{Locations: []string{"Rome"}}, domain.UserProfile{HomeCity: "Madrid"}, "from Madrid to Rome"},
		{"fallback", domain.Trip{Locations: []string{"Rome"}}, domain.UserProfile{}, "from Home to Rome"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var prompt string
			svc := booking.NewService(
				domain.CompleterFunc(func(_ context.Context, p string) (string, error) {
					prompt = p
					return `[]`, nil
				}),
				booking.WithProfile(func() domain.UserProfile { return tc.profile }),
			)
			wait(t, svc.GetFlights(tc.trip, "", ""))
			assert.Contains(t, prompt, tc.want)
		})
	}
}

func TestGetHotelsExplicitCity(t *testing.T) {
	var prompt string
	svc := booking.NewService(domain.CompleterFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return `[]`, nil
	}))
	wait(t, svc.GetHotels(paris, "Lyon"))
	assert.Contains(t, prompt, "Lyon")
}
