package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

type CardStore struct {
	db Querier
}

func NewCardStore(db Querier) *CardStore {
	return &CardStore{db: db}
}

const cardColumns = `id, card_id, name, set_id, set_name, series, rarity, types, subtypes,
		category, hp, image_small, image_large, quantity, condition, notes, owner_id,
		price_low, price_mid, price_high, price_market, price_updated_at, created_at, updated_at`

func (s *CardStore) Insert(ctx context.Context, card *models.Card) (int64, error) {
	query := `
		INSERT INTO cards (card_id, name, set_id, set_name, series, rarity, types, subtypes,
			category, hp, image_small, image_large, quantity, condition, notes, owner_id,
			price_low, price_mid, price_high, price_market, price_updated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23)
		RETURNING id;
	`

	var id int64
	err := s.db.QueryRow(ctx, query,
		card.CardID, card.Name, card.SetID, card.SetName, card.Series, card.Rarity,
		card.Types, card.Subtypes, card.Category, card.HP, card.ImageSmall, card.ImageLarge,
		card.Quantity, card.Condition, card.Notes, card.OwnerID,
		floatOrNil(card.PriceLow), floatOrNil(card.PriceMid),
		floatOrNil(card.PriceHigh), floatOrNil(card.PriceMarket),
		card.PriceUpdatedAt, card.CreatedAt, card.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not insert card: %w", err)
	}

	return id, nil
}

func (s *CardStore) FindByOwner(ctx context.Context, ownerID int64) ([]models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE owner_id = $1
	`

	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return cards, nil
}

// FindByIDAndOwner returns nil, nil when no card matches; a record may
// only be read for mutation through its owner.
func (s *CardStore) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE id = $1 AND owner_id = $2
		LIMIT 1
	`

	row := s.db.QueryRow(ctx, query, id, ownerID)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

func (s *CardStore) Update(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE cards
		SET quantity = $1, condition = $2, notes = $3,
			price_low = $4, price_mid = $5, price_high = $6, price_market = $7,
			price_updated_at = $8, updated_at = $9
		WHERE id = $10 AND owner_id = $11
	`

	tag, err := s.db.Exec(ctx, query,
		card.Quantity, card.Condition, card.Notes,
		floatOrNil(card.PriceLow), floatOrNil(card.PriceMid),
		floatOrNil(card.PriceHigh), floatOrNil(card.PriceMarket),
		card.PriceUpdatedAt, card.UpdatedAt,
		card.ID, card.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("could not update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete reports whether a row was actually removed.
func (s *CardStore) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM cards WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("could not delete card: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// AssignOrphans claims every ownerless legacy card for the given user.
// Serving-path inserts always set an owner; this exists only for the
// one-shot backfill job.
func (s *CardStore) AssignOrphans(ctx context.Context, ownerID int64) (int64, error) {
	tag, err := s.db.Exec(ctx, `UPDATE cards SET owner_id = $1 WHERE owner_id IS NULL`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("could not assign orphan cards: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanCard(row pgx.Row) (*models.Card, error) {
	card := &models.Card{}
	var low, mid, high, market *float64

	err := row.Scan(
		&card.ID,
		&card.CardID,
		&card.Name,
		&card.SetID,
		&card.SetName,
		&card.Series,
		&card.Rarity,
		&card.Types,
		&card.Subtypes,
		&card.Category,
		&card.HP,
		&card.ImageSmall,
		&card.ImageLarge,
		&card.Quantity,
		&card.Condition,
		&card.Notes,
		&card.OwnerID,
		&low,
		&mid,
		&high,
		&market,
		&card.PriceUpdatedAt,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.PriceLow = decimalOrNil(low)
	card.PriceMid = decimalOrNil(mid)
	card.PriceHigh = decimalOrNil(high)
	card.PriceMarket = decimalOrNil(market)

	return card, nil
}

func floatOrNil(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

func decimalOrNil(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
