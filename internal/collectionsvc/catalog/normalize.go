package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

const (
	imageSuffixSmall = "/low.webp"
	imageSuffixLarge = "/high.webp"
)

// priceVariantOrder is the pricing fallback: the first variant present
// and non-null wins.
var priceVariantOrder = []string{"normal", "holofoil", "reverse-holofoil"}

// Normalize maps a raw catalog record onto a canonical card. Only
// identity and pricing fields are filled; owner, quantity, condition and
// notes belong to the caller.
func Normalize(raw *RawCard) *models.Card {
	card := &models.Card{
		CardID:   raw.ID,
		Name:     raw.Name,
		Category: raw.Category,
		Rarity:   raw.Rarity,
		HP:       raw.HP,
		Types:    serializeList(raw.Types),
		Subtypes: stageList(raw.Stage),
	}

	if raw.Set != nil {
		card.SetID = raw.Set.ID
		card.SetName = raw.Set.Name
		card.Series = raw.Set.SeriesName()
	}

	if raw.Image != nil {
		small := *raw.Image + imageSuffixSmall
		large := *raw.Image + imageSuffixLarge
		card.ImageSmall = &small
		card.ImageLarge = &large
	}

	ApplyPricing(raw, card)
	return card
}

// ApplyPricing overwrites the card's price fields from the raw record's
// marketplace block. Without a usable variant the card is left untouched,
// priceUpdatedAt included.
func ApplyPricing(raw *RawCard, card *models.Card) {
	if raw.Pricing == nil || raw.Pricing.TCGPlayer == nil {
		return
	}
	tp := raw.Pricing.TCGPlayer

	var variant *RawVariant
	for _, key := range priceVariantOrder {
		if v, ok := tp.Variants[key]; ok && v != nil {
			variant = v
			break
		}
	}
	if variant == nil {
		return
	}

	card.PriceLow = decimalOrNil(variant.LowPrice)
	card.PriceMid = decimalOrNil(variant.MidPrice)
	card.PriceHigh = decimalOrNil(variant.HighPrice)
	card.PriceMarket = decimalOrNil(variant.MarketPrice)

	if tp.Updated != nil {
		card.PriceUpdatedAt = tp.Updated
	}
}

func decimalOrNil(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}

func serializeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// stageList wraps the evolution stage as a single-element subtype list.
// TCGdex has no general subtype list, so this is deliberately narrow.
func stageList(stage *string) string {
	if stage == nil {
		return "[]"
	}
	return serializeList([]string{*stage})
}
