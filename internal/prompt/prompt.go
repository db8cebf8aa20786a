// Package prompt builds the natural-language requests sent to the completion API.
package prompt

import (
	"fmt"
	"strings"

	"github.com/lbjllc/travelbook/internal/domain"
)

const baseChatPrompt = `
You are a friendly travel assistant inside a trip-planning app.

General style guidelines:
- Answer in the SAME LANGUAGE as the user.
- Be concise: a few short paragraphs or bullet points.
- Give concrete names of places, neighbourhoods and transport options when you can.
- If you are not sure about opening hours or prices, say so.
`

const liveTripInstructions = `
Screen: live trip

Focus:
- The traveller is on the trip right now.
- Prefer things that are nearby, open today, and quick to reach.
`

const planningInstructions = `
Screen: trip planning

Focus:
- The traveller is preparing the trip.
- Help them shape day-by-day plans, budgets and bookings.
`

// Suggestions asks for four ideas of the given type ("Activities",
// "Dining", ...) as a JSON array of {title, reason}.
func Suggestions(trip domain.Trip, kind string) string {
	return fmt.Sprintf(
		"Based on a trip to %s for the purpose of %q, suggest 4 creative and interesting %s. "+
			"Respond with only a valid JSON array of objects. "+
			"Each object must have two keys: a \"title\" (string) which is the name of the place or activity, "+
			"and a \"reason\" (string) which is a short, compelling sentence explaining why it fits the trip's purpose.",
		strings.Join(trip.Locations, " and "), trip.Purpose, strings.ToLower(kind),
	)
}

// Flights asks for sample flights between two cities over the trip dates.
func Flights(trip domain.Trip, from, to string) string {
	return fmt.Sprintf(
		"Find 3 realistic sample flights from %s to %s, departing on %s and returning on %s, "+
			"for a trip whose purpose is %q. "+
			"Respond with only a valid JSON array of objects. "+
			"Each object must have three keys: \"airline\" (string), \"flightNumber\" (string), "+
			"and \"price\" (number, round-trip price in USD).",
		from, to, trip.StartDate, trip.EndDate, trip.Purpose,
	)
}

// Hotels asks for hotels in city over the trip dates.
func Hotels(trip domain.Trip, city string) string {
	return fmt.Sprintf(
		"Suggest 3 hotels in %s for a stay from %s to %s, for a trip whose purpose is %q. "+
			"Respond with only a valid JSON array of objects. "+
			"Each object must have four keys: \"name\" (string), \"rating\" (number from 0 to 5), "+
			"\"pricePerNight\" (number, USD), and \"amenities\" (array of strings).",
		city, trip.StartDate, trip.EndDate, trip.Purpose,
	)
}

// Chat combines the screen the user is on, the selected trip (may be
// nil) and the raw message.
func Chat(screen string, trip *domain.Trip, message string) string {
	var b strings.Builder
	b.WriteString(baseChatPrompt)
	b.WriteString(screenInstructions(screen))

	if trip != nil {
		b.WriteString("\nCurrent trip:\n")
		fmt.Fprintf(&b, "- Destinations: %s\n", strings.Join(trip.Locations, ", "))
		fmt.Fprintf(&b, "- Purpose: %s\n", trip.Purpose)
		if trip.StartDate != "" {
			fmt.Fprintf(&b, "- Dates: %s to %s\n", trip.StartDate, trip.EndDate)
		}
	}

	b.WriteString("\nUser message:\n")
	b.WriteString(message)
	return b.String()
}

func screenInstructions(screen string) string {
	switch strings.ToLower(strings.TrimSpace(screen)) {
	case "livetrip", "live_trip", "live":
		return liveTripInstructions
	case "", "planning", "dashboard":
		return planningInstructions
	default:
		return planningInstructions + "- The user opened the assistant from: " + screen + "\n"
	}
}
