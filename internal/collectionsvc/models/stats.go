package models

import (
	"github.com/shopspring/decimal"
)

// Stats is the aggregate report for one owner's collection.
type Stats struct {
	UniqueCards int             `json:"unique_cards"`
	TotalCards  int             `json:"total_cards"`
	TotalSets   int             `json:"total_sets"`
	TotalValue  decimal.Decimal `json:"total_value"`
	BySet       []SetStats      `json:"bySet"`
	ByRarity    []RarityStats   `json:"byRarity"`

	// DisplayName is filled only on the public profile routes.
	DisplayName string `json:"displayName,omitempty"`
}

// SetStats is one bySet group. Cards counts records, Total sums quantities.
type SetStats struct {
	SetName string `json:"set_name"` // "Unknown" when the set id is null
	SetID   string `json:"set_id"`   // "" when the set id is null
	Cards   int    `json:"cards"`
	Total   int    `json:"total"`
}

// RarityStats is one byRarity group; records without a rarity are excluded.
type RarityStats struct {
	Rarity string `json:"rarity"`
	Cards  int    `json:"cards"`
	Total  int    `json:"total"`
}
