package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pokebinder/binder-services/internal/collectionsvc/catalog"
	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

// CardStorer is the persistence surface the card service needs.
type CardStorer interface {
	Insert(ctx context.Context, card *models.Card) (int64, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]models.Card, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}

// Catalog is the card catalog lookup the service depends on.
type Catalog interface {
	GetCard(ctx context.Context, cardID string) (*catalog.RawCard, error)
}

type CardService struct {
	store CardStorer
	cat   Catalog
}

func NewCardService(store CardStorer, cat Catalog) *CardService {
	return &CardService{store: store, cat: cat}
}

type AddCardRequest struct {
	CardID    string  `json:"card_id"`
	Quantity  int     `json:"quantity"`
	Condition string  `json:"condition"`
	Notes     *string `json:"notes"`
}

type UpdateCardRequest struct {
	Quantity  *int    `json:"quantity"`
	Condition *string `json:"condition"`
	Notes     *string `json:"notes"`
}

// AddCard fetches the catalog record, normalizes it and stores it for
// the owner. Quantity defaults to 1 and condition to NM.
func (s *CardService) AddCard(ctx context.Context, ownerID int64, req AddCardRequest) (*models.Card, error) {
	if strings.TrimSpace(req.CardID) == "" {
		return nil, fmt.Errorf("%w: card_id is required", ErrValidation)
	}

	raw, err := s.cat.GetCard(ctx, req.CardID)
	if err != nil {
		log.Errorf("catalog lookup for %s failed: %v", req.CardID, err)
		return nil, fmt.Errorf("%w: catalog lookup failed", ErrUpstream)
	}

	card := catalog.Normalize(raw)
	card.OwnerID = ownerID
	card.Quantity = req.Quantity
	if card.Quantity == 0 {
		card.Quantity = 1
	}
	card.Condition = req.Condition
	if card.Condition == "" {
		card.Condition = "NM"
	}
	card.Notes = req.Notes

	now := time.Now()
	card.CreatedAt = now
	card.UpdatedAt = now

	id, err := s.store.Insert(ctx, card)
	if err != nil {
		return nil, err
	}
	card.ID = id

	return card, nil
}

// Collection returns the owner's records filtered and sorted.
func (s *CardService) Collection(ctx context.Context, ownerID int64, f CollectionFilter) ([]models.Card, error) {
	cards, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return FilterSort(cards, f), nil
}

// Stats aggregates the owner's collection.
func (s *CardService) Stats(ctx context.Context, ownerID int64) (*models.Stats, error) {
	cards, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats := Aggregate(cards)
	return &stats, nil
}

// UpdateCard applies a partial edit to an owned record; only the fields
// present in the request change.
func (s *CardService) UpdateCard(ctx context.Context, ownerID, id int64, req UpdateCardRequest) (*models.Card, error) {
	card, err := s.store.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("%w: card %d", ErrNotFound, id)
	}

	if req.Quantity != nil {
		card.Quantity = *req.Quantity
	}
	if req.Condition != nil {
		card.Condition = *req.Condition
	}
	if req.Notes != nil {
		card.Notes = req.Notes
	}
	card.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// DeleteCard removes an owned record; a second delete of the same id
// reports not found.
func (s *CardService) DeleteCard(ctx context.Context, ownerID, id int64) error {
	deleted, err := s.store.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: card %d", ErrNotFound, id)
	}
	return nil
}

// RefreshPrices re-fetches catalog pricing for every owned card.
// Identity fields are left alone; a failing card is skipped and the run
// continues. Returns how many records were updated.
func (s *CardService) RefreshPrices(ctx context.Context, ownerID int64) (int, error) {
	cards, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range cards {
		card := &cards[i]

		raw, err := s.cat.GetCard(ctx, card.CardID)
		if err != nil {
			log.Warnf("price refresh: skipping %s: %v", card.CardID, err)
			continue
		}

		catalog.ApplyPricing(raw, card)
		card.UpdatedAt = time.Now()

		if err := s.store.Update(ctx, card); err != nil {
			log.Warnf("price refresh: could not save %s: %v", card.CardID, err)
			continue
		}
		updated++
	}

	return updated, nil
}
