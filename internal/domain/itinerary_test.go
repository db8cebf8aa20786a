package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lbjllc/travelbook/internal/domain"
)

func item(id int64, title string) domain.ItineraryItem {
	return domain.ItineraryItem{ID: id, Date: "2024-03-01", Title: title, Kind: domain.KindCustom}
}

func TestUnionItemsIgnoresValueDuplicates(t *testing.T) {
	a := item(1, "Museum")
	got := domain.UnionItems([]domain.ItineraryItem{a}, a, item(2, "Dinner"), item(2, "Dinner"))
	assert.Equal(t, []domain.ItineraryItem{a, item(2, "Dinner")}, got)
}

func TestUnionItemsTreatsDifferentNotesAsDifferentItems(t *testing.T) {
	a := item(1, "Museum")
	got := domain.UnionItems([]domain.ItineraryItem{a}, a.WithNotes("bring tickets"))
	assert.Len(t, got, 2)
}

func TestRemoveItemsRemovesEveryEqualElement(t *testing.T) {
	a := item(1, "Museum")
	b := item(2, "Dinner")
	got := domain.RemoveItems([]domain.ItineraryItem{a, b, a}, a)
	assert.Equal(t, []domain.ItineraryItem{b}, got)
}

func TestRemoveItemsMissingIsNoop(t *testing.T) {
	a := item(1, "Museum")
	got := domain.RemoveItems([]domain.ItineraryItem{a}, item(9, "Nothing"))
	assert.Equal(t, []domain.ItineraryItem{a}, got)
}

func TestReplaceByID(t *testing.T) {
	a := item(1, "Museum")
	b := item(2, "Dinner")

	got := domain.ReplaceByID([]domain.ItineraryItem{a, b, a}, a.WithNotes("closed mondays"))
	assert.Equal(t, []domain.ItineraryItem{a.WithNotes("closed mondays"), b}, got)

	got = domain.ReplaceByID([]domain.ItineraryItem{b}, a)
	assert.Equal(t, []domain.ItineraryItem{b, a}, got)
}

func TestGroupItinerary(t *testing.T) {
	items := []domain.ItineraryItem{
		{ID: 1, Date: "2024-03-02", Title: "Beach"},
		{ID: 2, Date: "2024-03-01", Title: "Arrive"},
		{ID: 3, Date: "2024-03-02", Title: "Dinner"},
	}

	days := domain.GroupItinerary(items)

	if assert.Len(t, days, 2) {
		assert.Equal(t, "2024-03-01", days[0].Date)
		assert.Equal(t, "2024-03-02", days[1].Date)
		assert.Equal(t, []string{"Beach", "Dinner"}, []string{days[1].Items[0].Title, days[1].Items[1].Title})
	}
}

func TestNewItineraryItemDefaultsToCustom(t *testing.T) {
	it := domain.NewItineraryItem("2024-03-01", "Walk", "", "")
	assert.Equal(t, domain.KindCustom, it.Kind)
	assert.NotZero(t, it.ID)
}

func TestProfileNormalize(t *testing.T) {
	p := domain.UserProfile{
		HomeCity:  "  Austin ",
		Interests: []string{"food", " hiking", "food", "", "art"},
	}.Normalize()

	assert.Equal(t, "Austin", p.HomeCity)
	assert.Equal(t, []string{"food", "hiking", "art"}, p.Interests)
}
