package domain

// Suggestion is an activity or dining idea returned by the completion API.
type Suggestion struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

type Flight struct {
	Airline      string  `json:"airline"`
	FlightNumber string  `json:"flightNumber"`
	Price        float64 `json:"price"`
}

type Hotel struct {
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	PricePerNight float64  `json:"pricePerNight"`
	Amenities     []string `json:"amenities"`
}
