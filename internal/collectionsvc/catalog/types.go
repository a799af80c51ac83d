package catalog

import (
	"encoding/json"
)

// RawCard is a TCGdex card payload. Only the fields the normalizer
// consumes are typed; everything else stays on the wire.
type RawCard struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category *string     `json:"category"`
	Rarity   *string     `json:"rarity"`
	HP       *int        `json:"hp"`
	Types    []string    `json:"types"`
	Stage    *string     `json:"stage"`
	Set      *RawSet     `json:"set"`
	Image    *string     `json:"image"` // base URL, quality suffix appended locally
	Pricing  *RawPricing `json:"pricing"`
}

// RawSet carries set identity. Series is either a plain string or an
// object with a name field depending on the endpoint, so it is kept raw.
type RawSet struct {
	ID     *string         `json:"id"`
	Name   *string         `json:"name"`
	Series json.RawMessage `json:"series"`
}

// SeriesName resolves the series field to a display string, or nil when
// the set carries none.
func (s *RawSet) SeriesName() *string {
	if s == nil || len(s.Series) == 0 || string(s.Series) == "null" {
		return nil
	}
	var obj struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(s.Series, &obj); err == nil && obj.Name != nil {
		return obj.Name
	}
	var plain string
	if err := json.Unmarshal(s.Series, &plain); err == nil {
		return &plain
	}
	return nil
}

type RawPricing struct {
	TCGPlayer *RawTCGPlayer `json:"tcgplayer"`
}

// RawTCGPlayer holds the marketplace block. Variant sub-blocks are kept
// in a map keyed by their wire name so the fallback order stays a plain
// list of candidate keys.
type RawTCGPlayer struct {
	Updated  *string
	Variants map[string]*RawVariant
}

func (t *RawTCGPlayer) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.Variants = map[string]*RawVariant{}
	for key, val := range raw {
		if key == "updated" {
			if err := json.Unmarshal(val, &t.Updated); err != nil {
				return err
			}
			continue
		}
		var variant *RawVariant
		if err := json.Unmarshal(val, &variant); err != nil {
			continue // non-variant extras like "unit"
		}
		t.Variants[key] = variant
	}
	return nil
}

// RawVariant is one pricing variant; each price point is independently
// nullable.
type RawVariant struct {
	LowPrice    *float64 `json:"lowPrice"`
	MidPrice    *float64 `json:"midPrice"`
	HighPrice   *float64 `json:"highPrice"`
	MarketPrice *float64 `json:"marketPrice"`
}

// SearchResult is the page envelope returned by the search proxy.
// TotalCount is exact once a short page marks the end of the results and
// nil while more pages may follow.
type SearchResult struct {
	Data       []json.RawMessage `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalCount *int              `json:"totalCount"`
}
