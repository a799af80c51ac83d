package service

import (
	"sort"
	"strings"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

// CollectionFilter carries the query parameters of a collection listing.
// Empty fields are skipped; the active filters combine with AND.
type CollectionFilter struct {
	Set      string // exact match on set id
	Rarity   string // exact match
	Category string // exact match
	Type     string // case-insensitive containment on the serialized types list
	Query    string // case-insensitive containment on the card name
	Sort     string // name, set_name, rarity, quantity, price; anything else sorts by created_at
	Order    string // "asc" (any case) ascending, anything else descending
}

// FilterSort applies the filter to the owner's records and orders the
// result. Pure: the input slice is never mutated.
func FilterSort(cards []models.Card, f CollectionFilter) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if f.Set != "" && (c.SetID == nil || *c.SetID != f.Set) {
			continue
		}
		if f.Rarity != "" && (c.Rarity == nil || *c.Rarity != f.Rarity) {
			continue
		}
		if f.Category != "" && (c.Category == nil || *c.Category != f.Category) {
			continue
		}
		if f.Type != "" && !containsFold(c.Types, f.Type) {
			continue
		}
		if f.Query != "" && !containsFold(c.Name, f.Query) {
			continue
		}
		out = append(out, c)
	}

	asc := strings.EqualFold(f.Order, "asc")
	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		aNull, bNull := sortKeyNull(a, f.Sort), sortKeyNull(b, f.Sort)
		// null sort keys go last regardless of direction
		if aNull != bNull {
			return !aNull
		}
		if aNull {
			return false
		}
		cmp := compareCards(a, b, f.Sort)
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})

	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortKeyNull(c *models.Card, key string) bool {
	switch key {
	case "set_name":
		return c.SetName == nil
	case "rarity":
		return c.Rarity == nil
	case "price":
		return c.PriceMid == nil
	default:
		return false
	}
}

func compareCards(a, b *models.Card, key string) int {
	switch key {
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "set_name":
		return strings.Compare(strings.ToLower(*a.SetName), strings.ToLower(*b.SetName))
	case "rarity":
		return strings.Compare(strings.ToLower(*a.Rarity), strings.ToLower(*b.Rarity))
	case "quantity":
		return a.Quantity - b.Quantity
	case "price":
		return a.PriceMid.Cmp(*b.PriceMid)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
