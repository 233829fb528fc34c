package users_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-console/atlas-console/internal/audit"
	"github.com/atlas-console/atlas-console/internal/shared"
	"github.com/atlas-console/atlas-console/internal/users"
)

type stubRepo struct {
	created *users.User
}

func (s *stubRepo) Create(ctx context.Context, user users.User) (*users.User, error) {
	stored := user
	s.created = &stored
	return &stored, nil
}

func (s *stubRepo) ListOwnedBy(ctx context.Context, adminID uuid.UUID) ([]users.User, error) {
	if s.created == nil {
		return nil, nil
	}
	return []users.User{*s.created}, nil
}

func (s *stubRepo) UpdateOwnedBy(ctx context.Context, id, adminID uuid.UUID, fullName string, role shared.Role) (*users.User, error) {
	return nil, shared.ErrNotFound
}

func (s *stubRepo) DeleteOwnedBy(ctx context.Context, id, adminID uuid.UUID) error {
	return nil
}

type failingRepo struct{}

func (failingRepo) Create(ctx context.Context, user users.User) (*users.User, error) {
	return nil, errors.New("connection reset")
}

func (failingRepo) ListOwnedBy(ctx context.Context, adminID uuid.UUID) ([]users.User, error) {
	return nil, errors.New("connection reset")
}

func (failingRepo) UpdateOwnedBy(ctx context.Context, id, adminID uuid.UUID, fullName string, role shared.Role) (*users.User, error) {
	return nil, errors.New("connection reset")
}

func (failingRepo) DeleteOwnedBy(ctx context.Context, id, adminID uuid.UUID) error {
	return errors.New("connection reset")
}

type noopRecorder struct{}

func (noopRecorder) Record(ctx context.Context, entry audit.Entry) error { return nil }

func newRouter(repo users.RepositoryPort) http.Handler {
	handler := users.NewHandler(nil, users.NewService(repo, noopRecorder{}, nil))
	r := chi.NewRouter()
	r.Route("/user", handler.MountRoutes)
	return r
}

func asAdmin(req *http.Request) *http.Request {
	id := uuid.New()
	ctx := shared.ContextWithIdentity(req.Context(), shared.Identity{UserID: id, AdminID: id, Role: shared.RoleAdmin})
	return req.WithContext(ctx)
}

func TestCreateAccountResponse(t *testing.T) {
	repo := &stubRepo{}
	router := newRouter(repo)

	body := `{"email":"new@example.com","password":"supersecret","fullName":"New User","role":"editor"}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/user/create-account", strings.NewReader(body)))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusCreated, res.Code)

	var envelope struct {
		Data struct {
			User map[string]any `json:"user"`
		} `json:"data"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "Account created successfully.", envelope.Message)
	assert.Equal(t, "new@example.com", envelope.Data.User["email"])
	assert.NotContains(t, envelope.Data.User, "password")
	assert.NotContains(t, envelope.Data.User, "passwordHash")
	assert.NotContains(t, res.Body.String(), repo.created.PasswordHash)
}

func TestCreateAccountBadBody(t *testing.T) {
	router := newRouter(&stubRepo{})

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/user/create-account", strings.NewReader("{not json")))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestAllUsersEnvelope(t *testing.T) {
	repo := &stubRepo{}
	router := newRouter(repo)

	req := asAdmin(httptest.NewRequest(http.MethodGet, "/user/all-users", nil))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var envelope struct {
		Data struct {
			Users []map[string]any `json:"users"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data.Users)
}

func TestDeleteUserNoBody204(t *testing.T) {
	router := newRouter(&stubRepo{})

	body := `{"userId":"` + uuid.NewString() + `"}`
	req := asAdmin(httptest.NewRequest(http.MethodPut, "/user/delete-user", strings.NewReader(body)))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusNoContent, res.Code)
	assert.Empty(t, res.Body.Bytes(), "deletions return a bare 204")
}

func TestEditUserNotOwnedIs404(t *testing.T) {
	router := newRouter(&stubRepo{})

	body := `{"userId":"` + uuid.NewString() + `","fullName":"X","role":"viewer"}`
	req := asAdmin(httptest.NewRequest(http.MethodPut, "/user/edit-user", strings.NewReader(body)))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestRepositoryFailureWithNilLogger500(t *testing.T) {
	router := newRouter(failingRepo{})

	req := asAdmin(httptest.NewRequest(http.MethodGet, "/user/all-users", nil))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Contains(t, res.Body.String(), "internal server error")
}

func TestMissingIdentityRejected(t *testing.T) {
	router := newRouter(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/user/all-users", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
