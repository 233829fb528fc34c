package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-console/atlas-console/internal/audit"
	"github.com/atlas-console/atlas-console/internal/shared"
	"github.com/atlas-console/atlas-console/internal/token"
	"github.com/atlas-console/atlas-console/internal/users"
)

type stubStore struct {
	user *users.User
}

func (s *stubStore) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

type captureRecorder struct {
	entries []audit.Entry
}

func (c *captureRecorder) Record(ctx context.Context, entry audit.Entry) error {
	c.entries = append(c.entries, entry)
	return nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	adminID := uuid.New()
	store := &stubStore{user: &users.User{
		ID:           uuid.New(),
		Email:        "editor@example.com",
		PasswordHash: hashOf(t, "correcthorse"),
		FullName:     "Ed",
		Role:         shared.RoleEditor,
		CreatedBy:    &adminID,
	}}
	rec := &captureRecorder{}
	issuer := token.NewIssuer("secret", time.Hour)
	svc := NewService(store, issuer, rec, nil)

	result, err := svc.Login(context.Background(), LoginInput{Email: "editor@example.com", Password: "correcthorse"})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.AccessToken)

	id, err := issuer.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, store.user.ID, id.UserID)
	assert.Equal(t, adminID, id.AdminID, "non-admin identity carries the provisioning admin")
	assert.Equal(t, shared.RoleEditor, id.Role)

	require.Len(t, rec.entries, 1, "single-write login audit")
	assert.Equal(t, "User Login", rec.entries[0].Action)
	assert.Contains(t, rec.entries[0].Details, "editor@example.com")
}

func TestLoginAdminIsOwnAdmin(t *testing.T) {
	store := &stubStore{user: &users.User{
		ID:           uuid.New(),
		Email:        "root@example.com",
		PasswordHash: hashOf(t, "correcthorse"),
		Role:         shared.RoleAdmin,
	}}
	issuer := token.NewIssuer("secret", time.Hour)
	svc := NewService(store, issuer, &captureRecorder{}, nil)

	result, err := svc.Login(context.Background(), LoginInput{Email: "root@example.com", Password: "correcthorse"})
	require.NoError(t, err)

	id, err := issuer.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, id.AdminID)
}

func TestLoginWrongPassword(t *testing.T) {
	store := &stubStore{user: &users.User{
		ID:           uuid.New(),
		Email:        "u@example.com",
		PasswordHash: hashOf(t, "correcthorse"),
		Role:         shared.RoleViewer,
	}}
	rec := &captureRecorder{}
	svc := NewService(store, token.NewIssuer("secret", time.Hour), rec, nil)

	_, err := svc.Login(context.Background(), LoginInput{Email: "u@example.com", Password: "wrongwrong"})
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	assert.Len(t, rec.entries, 1, "failed attempt against a known account is audited")
}

func TestLoginUnknownEmail(t *testing.T) {
	rec := &captureRecorder{}
	svc := NewService(&stubStore{}, token.NewIssuer("secret", time.Hour), rec, nil)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever123"})
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	assert.Empty(t, rec.entries, "no actor to attribute")
}

func TestLoginValidation(t *testing.T) {
	svc := NewService(&stubStore{}, token.NewIssuer("secret", time.Hour), &captureRecorder{}, nil)

	_, err := svc.Login(context.Background(), LoginInput{Email: "not-an-email", Password: "whatever123"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Login(context.Background(), LoginInput{Email: "u@example.com", Password: "short"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestLoginResultOmitsPassword(t *testing.T) {
	store := &stubStore{user: &users.User{
		ID:           uuid.New(),
		Email:        "u@example.com",
		PasswordHash: hashOf(t, "correcthorse"),
		Role:         shared.RoleViewer,
	}}
	svc := NewService(store, token.NewIssuer("secret", time.Hour), &captureRecorder{}, nil)

	result, err := svc.Login(context.Background(), LoginInput{Email: "u@example.com", Password: "correcthorse"})
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), store.user.PasswordHash)
}
