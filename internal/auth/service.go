package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-console/atlas-console/internal/audit"
	"github.com/atlas-console/atlas-console/internal/shared"
	"github.com/atlas-console/atlas-console/internal/users"
)

// CredentialStore resolves accounts by email.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(id shared.Identity) (string, error)
}

// Service wraps authentication business rules.
type Service struct {
	repo     CredentialStore
	issuer   TokenIssuer
	recorder audit.Recorder
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo CredentialStore, issuer TokenIssuer, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		issuer:   issuer,
		recorder: recorder,
		logger:   logger,
		validate: validator.New(),
	}
}

// LoginInput is the credentials payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResult carries the authenticated user and the issued token.
type LoginResult struct {
	User        *users.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}

// Login validates the credentials and issues an identity token. One audit
// entry is written per attempt against a known account; attempts against
// unknown emails have no actor to attribute and are only logged.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password shape", shared.ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	result, err := s.attempt(ctx, user, in.Password)

	adminID := user.ID
	if user.Role != shared.RoleAdmin && user.CreatedBy != nil {
		adminID = *user.CreatedBy
	}
	entry := audit.Entry{Action: "User Login", UserID: user.ID, AdminID: &adminID}
	if err == nil {
		entry.Details = fmt.Sprintf("User %s logged in successfully.", user.Email)
	}
	return result, audit.Finish(ctx, s.recorder, s.logger, entry, err)
}

func (s *Service) attempt(ctx context.Context, user *users.User, password string) (*LoginResult, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	id := shared.Identity{UserID: user.ID, AdminID: user.ID, Role: user.Role}
	if user.Role != shared.RoleAdmin && user.CreatedBy != nil {
		id.AdminID = *user.CreatedBy
	}

	token, err := s.issuer.Issue(id)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}
