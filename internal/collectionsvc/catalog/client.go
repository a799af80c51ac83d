package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	requestTimeout = 30 * time.Second

	// TCGdex is unauthenticated; stay well below anything that would
	// get the service throttled.
	requestsPerSecond = 10
	burst             = 5
)

// Client talks to the TCGdex card catalog API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog response read failed: %w", err)
	}
	return body, nil
}

// GetCard fetches full card details by catalog id (e.g. "base1-4").
func (c *Client) GetCard(ctx context.Context, cardID string) (*RawCard, error) {
	body, err := c.get(ctx, "/cards/"+url.PathEscape(cardID))
	if err != nil {
		return nil, err
	}

	var card RawCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("catalog response parse failed: %w", err)
	}
	if card.ID == "" {
		return nil, fmt.Errorf("catalog returned no identifiable record for %q", cardID)
	}
	return &card, nil
}

// SearchParams are the catalog search filters; zero values are omitted
// from the query.
type SearchParams struct {
	Query    string
	Set      string
	Rarity   string
	Type     string
	Category string
	Page     int
	PageSize int
}

// SearchCards runs a filtered catalog search and upgrades each hit on
// the page to its full detail record. A failed detail fetch falls back
// to the brief record rather than dropping the hit.
func (c *Client) SearchCards(ctx context.Context, p SearchParams) (*SearchResult, error) {
	params := []string{}
	if p.Query != "" {
		params = append(params, "name="+url.QueryEscape(p.Query))
	}
	if p.Set != "" {
		params = append(params, "set.id=eq:"+url.QueryEscape(p.Set))
	}
	if p.Rarity != "" {
		params = append(params, "rarity=eq:"+url.QueryEscape(p.Rarity))
	}
	if p.Type != "" {
		params = append(params, "types="+url.QueryEscape(p.Type))
	}
	if p.Category != "" {
		params = append(params, "category=eq:"+url.QueryEscape(p.Category))
	}
	params = append(params,
		fmt.Sprintf("pagination:page=%d", p.Page),
		fmt.Sprintf("pagination:itemsPerPage=%d", p.PageSize),
	)

	body, err := c.get(ctx, "/cards?"+strings.Join(params, "&"))
	if err != nil {
		return nil, err
	}

	var briefs []json.RawMessage
	if err := json.Unmarshal(body, &briefs); err != nil {
		return nil, fmt.Errorf("catalog search parse failed: %w", err)
	}

	data := make([]json.RawMessage, 0, len(briefs))
	for _, brief := range briefs {
		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(brief, &ref); err != nil || ref.ID == "" {
			data = append(data, brief)
			continue
		}
		full, err := c.get(ctx, "/cards/"+url.PathEscape(ref.ID))
		if err != nil {
			log.Warnf("search detail fetch for %s failed, keeping brief record: %v", ref.ID, err)
			data = append(data, brief)
			continue
		}
		data = append(data, json.RawMessage(full))
	}

	result := &SearchResult{
		Data:     data,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	// A short page ends the result set, so the running total is exact.
	// A full page leaves the total unknown.
	if len(briefs) < p.PageSize {
		total := (p.Page-1)*p.PageSize + len(briefs)
		result.TotalCount = &total
	}
	return result, nil
}

// Sets lists all catalog sets, passed through unparsed.
func (c *Client) Sets(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/sets")
}

// Set fetches one set's details, passed through unparsed.
func (c *Client) Set(ctx context.Context, setID string) (json.RawMessage, error) {
	return c.get(ctx, "/sets/"+url.PathEscape(setID))
}

// Rarities lists all card rarities.
func (c *Client) Rarities(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/rarities")
}

// Types lists all card types.
func (c *Client) Types(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/types")
}

// Categories lists all card categories.
func (c *Client) Categories(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/categories")
}
