package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

// UserStorer is the persistence surface the user service needs.
type UserStorer interface {
	Insert(ctx context.Context, user *models.User) (int64, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type UserService struct {
	store UserStorer
}

func NewUserService(store UserStorer) *UserService {
	return &UserService{store: store}
}

var usernameStrip = regexp.MustCompile(`[^a-z0-9_-]`)

// Register creates a new account. The username is lowercased and
// stripped to [a-z0-9_-]; the display name defaults to the username.
func (s *UserService) Register(ctx context.Context, username, displayName, password string) (*models.User, error) {
	username = usernameStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(username)), "")
	if len(username) < 2 {
		return nil, fmt.Errorf("%w: username must be at least 2 characters (letters, numbers, hyphens)", ErrValidation)
	}
	if len(password) < 4 {
		return nil, fmt.Errorf("%w: password must be at least 4 characters", ErrValidation)
	}

	existing, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}

	user := &models.User{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	id, err := s.store.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	return user, nil
}

// Authenticate checks username and password; both unknown users and
// wrong passwords come back as the same unauthorized error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	return user, nil
}

// GetByID resolves the user behind an authenticated request.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, nil
}

// GetByUsername resolves a public profile; lookup is case-insensitive.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
	}
	return user, nil
}
