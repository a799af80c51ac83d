package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

// nullSetKey groups records without a set id; "\x00" cannot collide
// with a real catalog set id.
const nullSetKey = "\x00"

// Aggregate computes the summary report over one owner's records.
// Read-only; an empty collection yields zero totals and empty groups.
func Aggregate(cards []models.Card) models.Stats {
	stats := models.Stats{
		UniqueCards: len(cards),
		TotalValue:  decimal.Zero,
		BySet:       []models.SetStats{},
		ByRarity:    []models.RarityStats{},
	}

	setIDs := map[string]bool{}
	bySet := map[string]*models.SetStats{}
	byRarity := map[string]*models.RarityStats{}

	for i := range cards {
		c := &cards[i]
		stats.TotalCards += c.Quantity
		if c.PriceMid != nil {
			stats.TotalValue = stats.TotalValue.Add(c.PriceMid.Mul(decimal.NewFromInt(int64(c.Quantity))))
		}

		key := nullSetKey
		if c.SetID != nil {
			key = *c.SetID
			setIDs[key] = true
		}
		group, ok := bySet[key]
		if !ok {
			group = &models.SetStats{SetName: "Unknown"}
			if c.SetID != nil {
				group.SetID = *c.SetID
			}
			if c.SetName != nil {
				group.SetName = *c.SetName
			}
			bySet[key] = group
		}
		group.Cards++
		group.Total += c.Quantity

		if c.Rarity != nil {
			rg, ok := byRarity[*c.Rarity]
			if !ok {
				rg = &models.RarityStats{Rarity: *c.Rarity}
				byRarity[*c.Rarity] = rg
			}
			rg.Cards++
			rg.Total += c.Quantity
		}
	}

	stats.TotalSets = len(setIDs)

	for _, g := range bySet {
		stats.BySet = append(stats.BySet, *g)
	}
	sort.Slice(stats.BySet, func(i, j int) bool {
		if stats.BySet[i].Total != stats.BySet[j].Total {
			return stats.BySet[i].Total > stats.BySet[j].Total
		}
		return stats.BySet[i].SetName < stats.BySet[j].SetName
	})

	for _, g := range byRarity {
		stats.ByRarity = append(stats.ByRarity, *g)
	}
	sort.Slice(stats.ByRarity, func(i, j int) bool {
		if stats.ByRarity[i].Total != stats.ByRarity[j].Total {
			return stats.ByRarity[i].Total > stats.ByRarity[j].Total
		}
		return stats.ByRarity[i].Rarity < stats.ByRarity[j].Rarity
	})

	return stats
}
