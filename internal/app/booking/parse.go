package booking

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/lbjllc/travelbook/internal/domain"
)

// Completions are parsed loosely: extra keys are ignored, but every
// required key must be present with the right type or the whole batch fails.

func parseSuggestions(text string) ([]domain.Suggestion, error) {
	return parseEach(text, func(obj gjson.Result) (domain.Suggestion, error) {
		title, err := str(obj, "title")
		if err != nil {
			return domain.Suggestion{}, err
		}
		reason, err := str(obj, "reason")
		if err != nil {
			return domain.Suggestion{}, err
		}
		return domain.Suggestion{Title: title, Reason: reason}, nil
	})
}

func parseFlights(text string) ([]domain.Flight, error) {
	return parseEach(text, func(obj gjson.Result) (domain.Flight, error) {
		airline, err := str(obj, "airline")
		if err != nil {
			return domain.Flight{}, err
		}
		number, err := str(obj, "flightNumber")
		if err != nil {
			return domain.Flight{}, err
		}
		price, err := num(obj, "price")
		if err != nil {
			return domain.Flight{}, err
		}
		return domain.Flight{Airline: airline, FlightNumber: number, Price: price}, nil
	})
}

func parseHotels(text string) ([]domain.Hotel, error) {
	return parseEach(text, func(obj gjson.Result) (domain.Hotel, error) {
		name, err := str(obj, "name")
		if err != nil {
			return domain.Hotel{}, err
		}
		rating, err := num(obj, "rating")
		if err != nil {
			return domain.Hotel{}, err
		}
		price, err := num(obj, "pricePerNight")
		if err != nil {
			return domain.Hotel{}, err
		}
		amenities, err := strList(obj, "amenities")
		if err != nil {
			return domain.Hotel{}, err
		}
		return domain.Hotel{Name: name, Rating: rating, PricePerNight: price, Amenities: amenities}, nil
	})
}

func parseEach[T any](text string, decode func(gjson.Result) (T, error)) ([]T, error) {
	if !gjson.Valid(text) {
		return nil, &domain.ParseError{Reason: "completion is not valid JSON"}
	}
	root := gjson.Parse(text)
	if !root.IsArray() {
		return nil, &domain.ParseError{Reason: "expected a JSON array"}
	}

	elems := root.Array()
	out := make([]T, 0, len(elems))
	for i, el := range elems {
		if !el.IsObject() {
			return nil, &domain.ParseError{Reason: fmt.Sprintf("element %d is not an object", i)}
		}
		v, err := decode(el)
		if err != nil {
			return nil, &domain.ParseError{Reason: fmt.Sprintf("element %d", i), Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

func field(obj gjson.Result, key string) (gjson.Result, error) {
	v := obj.Get(key)
	if !v.Exists() {
		return v, fmt.Errorf("missing key %q", key)
	}
	return v, nil
}

func str(obj gjson.Result, key string) (string, error) {
	v, err := field(obj, key)
	if err != nil {
		return "", err
	}
	if v.Type != gjson.String {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return v.String(), nil
}

func num(obj gjson.Result, key string) (float64, error) {
	v, err := field(obj, key)
	if err != nil {
		return 0, err
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("key %q is not a number", key)
	}
	return v.Float(), nil
}

func strList(obj gjson.Result, key string) ([]string, error) {
	v, err := field(obj, key)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("key %q is not an array", key)
	}

	out := []string{}
	for _, el := range v.Array() {
		if el.Type != gjson.String {
			return nil, fmt.Errorf("key %q holds a non-string element", key)
		}
		out = append(out, el.String())
	}
	return out, nil
}
