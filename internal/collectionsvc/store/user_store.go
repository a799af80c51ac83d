package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

type UserStore struct {
	db Querier
}

func NewUserStore(db Querier) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (username, display_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	var id int64
	err := s.db.QueryRow(ctx, query,
		user.Username, user.DisplayName, user.PasswordHash, user.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create user: %w", err)
	}

	return id, nil
}

// FindByUsername returns nil, nil when the username is unknown.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, display_name, password_hash, created_at
		FROM users
		WHERE username = $1
		LIMIT 1
	`, username)

	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// FindByID returns nil, nil when no user has the given id.
func (s *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, display_name, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id)

	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
