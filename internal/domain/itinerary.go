package domain

import (
	"sort"

	"github.com/samber/lo"
)

// UnionItems appends every item of add that is not already in items, by value.
// Duplicates inside add collapse to one copy, matching the store's array union.
func UnionItems(items []ItineraryItem, add ...ItineraryItem) []ItineraryItem {
	out := append([]ItineraryItem(nil), items...)
	for _, it := range add {
		if !lo.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}

// RemoveItems drops every element equal by value to any of remove.
func RemoveItems(items []ItineraryItem, remove ...ItineraryItem) []ItineraryItem {
	return lo.Reject(items, func(it ItineraryItem, _ int) bool {
		return lo.Contains(remove, it)
	})
}

// ReplaceByID puts item in place of the first element with the same ID and
// drops any later element sharing that ID. With no match the item is appended.
func ReplaceByID(items []ItineraryItem, item ItineraryItem) []ItineraryItem {
	out := make([]ItineraryItem, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if it.ID != item.ID {
			out = append(out, it)
			continue
		}
		if !replaced {
			out = append(out, item)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, item)
	}
	return out
}

// DayPlan is the itinerary of one date.
type DayPlan struct {
	Date  string          `json:"date"`
	Items []ItineraryItem `json:"items"`
}

// GroupItinerary groups items by date, dates ascending, keeping item order within a day.
func GroupItinerary(items []ItineraryItem) []DayPlan {
	byDate := lo.GroupBy(items, func(it ItineraryItem) string { return it.Date })
	dates := lo.Keys(byDate)
	sort.Strings(dates)

	return lo.Map(dates, func(d string, _ int) DayPlan {
		return DayPlan{Date: d, Items: byDate[d]}
	})
}
