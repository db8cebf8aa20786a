package domain

type UserID string
type TripID string

// ItemKind tells whether an itinerary entry came from a suggestion or was typed in by the user.
type ItemKind string

const (
	KindSuggestion ItemKind = "Suggestion"
	KindCustom     ItemKind = "Custom"
)

// DateLayout is the wire format for every date in the model (yyyy-MM-dd).
const DateLayout = "2006-01-02"

const DefaultTravelMethod = "Flying"
