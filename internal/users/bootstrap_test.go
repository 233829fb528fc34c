package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-console/atlas-console/internal/shared"
)

type bootstrapStore struct {
	byEmail map[string]*User
	created int
}

func (s *bootstrapStore) Create(ctx context.Context, user User) (*User, error) {
	if _, ok := s.byEmail[user.Email]; ok {
		return nil, shared.ErrDuplicateEmail
	}
	s.created++
	stored := user
	s.byEmail[user.Email] = &stored
	return &stored, nil
}

func (s *bootstrapStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, shared.ErrNotFound
}

func TestEnsureBootstrapAdminCreatesSeed(t *testing.T) {
	store := &bootstrapStore{byEmail: map[string]*User{}}

	err := EnsureBootstrapAdmin(context.Background(), store, nil, BootstrapAdmin{
		Email:    "root@example.com",
		Password: "super-secret",
		FullName: "Root",
	})
	require.NoError(t, err)

	seeded := store.byEmail["root@example.com"]
	require.NotNil(t, seeded)
	assert.Equal(t, shared.RoleAdmin, seeded.Role)
	assert.Nil(t, seeded.CreatedBy, "seed admin is self-rooted")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(seeded.PasswordHash), []byte("super-secret")))
}

func TestEnsureBootstrapAdminIdempotent(t *testing.T) {
	store := &bootstrapStore{byEmail: map[string]*User{}}
	seed := BootstrapAdmin{Email: "root@example.com", Password: "super-secret"}

	require.NoError(t, EnsureBootstrapAdmin(context.Background(), store, nil, seed))
	require.NoError(t, EnsureBootstrapAdmin(context.Background(), store, nil, seed))

	assert.Equal(t, 1, store.created)
}

func TestEnsureBootstrapAdminSkipsWithoutEmail(t *testing.T) {
	store := &bootstrapStore{byEmail: map[string]*User{}}

	require.NoError(t, EnsureBootstrapAdmin(context.Background(), store, nil, BootstrapAdmin{}))
	assert.Zero(t, store.created)
}
