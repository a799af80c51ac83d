package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card represents one owned-copy entry in the cards table. Nullable
// columns use pointer fields so absent catalog data stays NULL instead
// of collapsing to empty strings.
type Card struct {
	ID             int64            `json:"id"`
	CardID         string           `json:"card_id"` // external catalog id, e.g. "base1-4"
	Name           string           `json:"name"`
	SetID          *string          `json:"set_id"`
	SetName        *string          `json:"set_name"`
	Series         *string          `json:"series"`
	Rarity         *string          `json:"rarity"`
	Types          string           `json:"types"`    // serialized JSON list, "[]" when none
	Subtypes       string           `json:"subtypes"` // serialized JSON list, "[]" when none
	Category       *string          `json:"category"`
	HP             *int             `json:"hp"`
	ImageSmall     *string          `json:"image_small"`
	ImageLarge     *string          `json:"image_large"`
	Quantity       int              `json:"quantity"`
	Condition      string           `json:"condition"` // NM, LP, MP, HP, DMG
	Notes          *string          `json:"notes"`
	OwnerID        int64            `json:"owner_id"`
	PriceLow       *decimal.Decimal `json:"price_low"`
	PriceMid       *decimal.Decimal `json:"price_mid"`
	PriceHigh      *decimal.Decimal `json:"price_high"`
	PriceMarket    *decimal.Decimal `json:"price_market"`
	PriceUpdatedAt *string          `json:"price_updated_at"` // opaque catalog timestamp, never reparsed
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
