package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM answers without any network call. Pipeline prompts get canned,
// fenced JSON in the shape they ask for; anything else gets an echo.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

const (
	mockFlights = "```json\n" + `[
  {"airline": "Sample Air", "flightNumber": "SA 101", "price": 420.5},
  {"airline": "Demo Airways", "flightNumber": "DA 77", "price": 389}
]` + "\n```"

	mockHotels = "```json\n" + `[
  {"name": "Hotel Placeholder", "rating": 4.3, "pricePerNight": 129, "amenities": ["wifi", "breakfast"]},
  {"name": "Mock Suites", "rating": 3.9, "pricePerNight": 95.5, "amenities": ["pool"]}
]` + "\n```"

	mockSuggestions = "```json\n" + `[
  {"title": "Old Town walking tour", "reason": "A relaxed way to get your bearings on day one."},
  {"title": "Local food market", "reason": "Fits any purpose and any budget."}
]` + "\n```"
)

func (m *MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, `"flightNumber"`):
		return ExtractJSON(mockFlights), nil
	case strings.Contains(prompt, `"pricePerNight"`):
		return ExtractJSON(mockHotels), nil
	case strings.Contains(prompt, `"reason"`):
		return ExtractJSON(mockSuggestions), nil
	}

	msg := prompt
	if i := strings.LastIndex(prompt, "User message:\n"); i >= 0 {
		msg = prompt[i+len("User message:\n"):]
	}
	return fmt.Sprintf("I hear you: %q. Tell me a bit more about what you'd like to do.", msg), nil
}
