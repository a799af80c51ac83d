package store

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

var cardRowColumns = []string{
	"id", "card_id", "name", "set_id", "set_name", "series", "rarity", "types", "subtypes",
	"category", "hp", "image_small", "image_large", "quantity", "condition", "notes", "owner_id",
	"price_low", "price_mid", "price_high", "price_market", "price_updated_at", "created_at", "updated_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func sampleCardRow(now time.Time) []any {
	setID := "base1"
	setName := "Base Set"
	mid := 3.5
	return []any{
		int64(7), "base1-4", "Charizard", &setID, &setName, (*string)(nil), (*string)(nil),
		`["Fire"]`, "[]", (*string)(nil), (*int)(nil), (*string)(nil), (*string)(nil),
		2, "NM", (*string)(nil), int64(42),
		(*float64)(nil), &mid, (*float64)(nil), (*float64)(nil),
		(*string)(nil), now, now,
	}
}

func TestCardStoreInsert(t *testing.T) {
	mock := newMockPool(t)
	s := NewCardStore(mock)

	mid := decimal.NewFromFloat(3.5)
	card := &models.Card{
		CardID:    "base1-4",
		Name:      "Charizard",
		Types:     `["Fire"]`,
		Subtypes:  "[]",
		Quantity:  1,
		Condition: "NM",
		OwnerID:   42,
		PriceMid:  &mid,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO cards`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := s.Insert(context.Background(), card)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardStoreFindByOwner(t *testing.T) {
	mock := newMockPool(t)
	s := NewCardStore(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM cards`).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(cardRowColumns).AddRow(sampleCardRow(now)...))

	cards, err := s.FindByOwner(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Charizard", cards[0].Name)
	assert.Equal(t, int64(42), cards[0].OwnerID)
	require.NotNil(t, cards[0].PriceMid)
	assert.Equal(t, "3.5", cards[0].PriceMid.String())
	assert.Nil(t, cards[0].PriceLow)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardStoreFindByOwnerEmpty(t *testing.T) {
	mock := newMockPool(t)
	s := NewCardStore(mock)

	mock.ExpectQuery(`SELECT .* FROM cards`).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(cardRowColumns))

	cards, err := s.FindByOwner(context.Background(), 42)

	require.NoError(t, err)
	assert.Empty(t, cards)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardStoreFindByIDAndOwnerNotFound(t *testing.T) {
	mock := newMockPool(t)
	s := NewCardStore(mock)

	mock.ExpectQuery(`SELECT .* FROM cards`).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(pgxmock.NewRows(cardRowColumns))

	card, err := s.FindByIDAndOwner(context.Background(), 7, 42)

	require.NoError(t, err)
	assert.Nil(t, card)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardStoreUpdateNoRowMatches(t *testing.T) {
	mock := newMockPool(t)
	s := NewCardStore(mock)

	mock.ExpectExec(`UPDATE cards`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.Update(context.Background(), &models.Card{ID: 7, OwnerID: 42})

	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardStoreDelete(t *testing.T) {
	mock := newMockPool(t)
	s := NewCardStore(mock)

	mock.ExpectExec(`DELETE FROM cards`).
		WithArgs(int64(7), int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM cards`).
		WithArgs(int64(7), int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := s.Delete(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.True(t, deleted)

	// second delete of the same record finds nothing
	deleted, err = s.Delete(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardStoreAssignOrphans(t *testing.T) {
	mock := newMockPool(t)
	s := NewCardStore(mock)

	mock.ExpectExec(`UPDATE cards SET owner_id`).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := s.AssignOrphans(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
