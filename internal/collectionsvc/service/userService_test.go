package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *user
	stored.ID = id
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func TestRegisterSanitizesUsername(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	user, err := svc.Register(context.Background(), "  Ash Ketchum!  ", "", "pikachu")

	require.NoError(t, err)
	assert.Equal(t, "ashketchum", user.Username)
	assert.Equal(t, "ashketchum", user.DisplayName)
	assert.NotEqual(t, "pikachu", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"))
}

func TestRegisterRejectsShortUsernameAndPassword(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Register(context.Background(), "!", "", "pikachu")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), "ash", "", "abc")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Register(context.Background(), "ash", "Ash", "pikachu")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ASH", "Other", "raichu")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	registered, err := svc.Register(context.Background(), "ash", "Ash", "pikachu")
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "  ASH ", "pikachu")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(context.Background(), "ash", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(context.Background(), "nobody", "pikachu")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
