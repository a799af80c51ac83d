package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

func strPtr(s string) *string { return &s }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func testCards() []models.Card {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Card{
		{
			ID: 1, Name: "Charizard", Quantity: 3,
			SetID: strPtr("base1"), SetName: strPtr("Base Set"),
			Rarity: strPtr("Rare Holo"), Category: strPtr("Pokemon"),
			Types: `["Fire"]`, PriceMid: decPtr(100),
			CreatedAt: base,
		},
		{
			ID: 2, Name: "Pikachu", Quantity: 1,
			SetID: strPtr("base1"), SetName: strPtr("Base Set"),
			Rarity: strPtr("Common"), Category: strPtr("Pokemon"),
			Types: `["Lightning"]`, PriceMid: decPtr(2),
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID: 3, Name: "Switch", Quantity: 2,
			Category: strPtr("Trainer"), Types: "[]",
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

func TestFilterByFreeTextQuery(t *testing.T) {
	out := FilterSort(testCards(), CollectionFilter{Query: "charizard"})

	require.Len(t, out, 1)
	assert.Equal(t, "Charizard", out[0].Name)
}

func TestFiltersCombineWithAnd(t *testing.T) {
	out := FilterSort(testCards(), CollectionFilter{Set: "base1", Rarity: "Common"})

	require.Len(t, out, 1)
	assert.Equal(t, "Pikachu", out[0].Name)
}

func TestFilterExactMatchSkipsNullFields(t *testing.T) {
	// the Trainer card has no set id and must not match a set filter
	out := FilterSort(testCards(), CollectionFilter{Set: "base1"})

	assert.Len(t, out, 2)
}

func TestFilterTypeContainmentIsCaseInsensitive(t *testing.T) {
	out := FilterSort(testCards(), CollectionFilter{Type: "fire"})

	require.Len(t, out, 1)
	assert.Equal(t, "Charizard", out[0].Name)
}

func TestSortQuantityAscending(t *testing.T) {
	out := FilterSort(testCards(), CollectionFilter{Sort: "quantity", Order: "asc"})

	quantities := []int{out[0].Quantity, out[1].Quantity, out[2].Quantity}
	assert.Equal(t, []int{1, 2, 3}, quantities)
}

func TestSortQuantityDefaultsDescending(t *testing.T) {
	// anything but "asc" means descending, absent included
	out := FilterSort(testCards(), CollectionFilter{Sort: "quantity"})

	quantities := []int{out[0].Quantity, out[1].Quantity, out[2].Quantity}
	assert.Equal(t, []int{3, 2, 1}, quantities)
}

func TestSortOrderAscIsCaseInsensitive(t *testing.T) {
	out := FilterSort(testCards(), CollectionFilter{Sort: "quantity", Order: "ASC"})

	assert.Equal(t, 1, out[0].Quantity)
}

func TestSortPriceNullsLastBothDirections(t *testing.T) {
	for _, order := range []string{"asc", "desc"} {
		out := FilterSort(testCards(), CollectionFilter{Sort: "price", Order: order})
		assert.Equal(t, "Switch", out[2].Name, "order=%s", order)
	}

	asc := FilterSort(testCards(), CollectionFilter{Sort: "price", Order: "asc"})
	assert.Equal(t, "Pikachu", asc[0].Name)

	desc := FilterSort(testCards(), CollectionFilter{Sort: "price", Order: "desc"})
	assert.Equal(t, "Charizard", desc[0].Name)
}

func TestSortNameCaseInsensitive(t *testing.T) {
	cards := []models.Card{
		{Name: "alakazam"},
		{Name: "Zapdos"},
		{Name: "Mewtwo"},
	}

	out := FilterSort(cards, CollectionFilter{Sort: "name", Order: "asc"})

	assert.Equal(t, "alakazam", out[0].Name)
	assert.Equal(t, "Mewtwo", out[1].Name)
	assert.Equal(t, "Zapdos", out[2].Name)
}

func TestDefaultSortIsCreatedAtDescending(t *testing.T) {
	out := FilterSort(testCards(), CollectionFilter{})

	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, int64(1), out[2].ID)
}

func TestFilterSortDoesNotMutateInput(t *testing.T) {
	cards := testCards()
	FilterSort(cards, CollectionFilter{Sort: "quantity", Order: "asc"})

	assert.Equal(t, "Charizard", cards[0].Name)
	assert.Equal(t, "Switch", cards[2].Name)
}
