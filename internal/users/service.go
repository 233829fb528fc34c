package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-console/atlas-console/internal/audit"
	"github.com/atlas-console/atlas-console/internal/shared"
)

// RepositoryPort defines the ownership-scoped data access the service needs.
type RepositoryPort interface {
	Create(ctx context.Context, user User) (*User, error)
	ListOwnedBy(ctx context.Context, adminID uuid.UUID) ([]User, error)
	UpdateOwnedBy(ctx context.Context, id, adminID uuid.UUID, fullName string, role shared.Role) (*User, error)
	DeleteOwnedBy(ctx context.Context, id, adminID uuid.UUID) error
}

// Service implements user provisioning under caller-ownership constraints.
// Every mutating operation writes exactly one system log entry, on success
// and on failure.
type Service struct {
	repo     RepositoryPort
	recorder audit.Recorder
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo RepositoryPort, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
		validate: validator.New(),
	}
}

// CreateAccountInput is the payload for provisioning an account.
type CreateAccountInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin editor viewer"`
}

// EditUserInput is the payload for updating an account the caller created.
type EditUserInput struct {
	UserID   string `json:"userId" validate:"required,uuid4"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin editor viewer"`
}

// DeleteUserInput identifies the account to remove.
type DeleteUserInput struct {
	UserID string `json:"userId" validate:"required,uuid4"`
}

// CreateAccount provisions a new account owned by the caller.
func (s *Service) CreateAccount(ctx context.Context, actor shared.Identity, in CreateAccountInput) (user *User, err error) {
	entry := audit.Entry{Action: "User Account Creation", UserID: actor.UserID, AdminID: &actor.UserID}
	defer func() { err = audit.Finish(ctx, s.recorder, s.logger, entry, err) }()

	if err = s.checkInput(in); err != nil {
		return nil, err
	}

	hash, hashErr := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if hashErr != nil {
		err = fmt.Errorf("hash password: %w", hashErr)
		return nil, err
	}

	adminID := actor.UserID
	user, err = s.repo.Create(ctx, User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         shared.Role(in.Role),
		CreatedBy:    &adminID,
	})
	if err != nil {
		return nil, err
	}
	entry.Details = fmt.Sprintf("User %s created an account successfully.", user.Email)
	return user, nil
}

// AllUsers returns the accounts the caller provisioned, newest first.
func (s *Service) AllUsers(ctx context.Context, actor shared.Identity) ([]User, error) {
	return s.repo.ListOwnedBy(ctx, actor.UserID)
}

// EditUser updates name and role of an account the caller provisioned.
func (s *Service) EditUser(ctx context.Context, actor shared.Identity, in EditUserInput) (user *User, err error) {
	entry := audit.Entry{Action: "User Update", UserID: actor.UserID, AdminID: &actor.UserID}
	defer func() { err = audit.Finish(ctx, s.recorder, s.logger, entry, err) }()

	if err = s.checkInput(in); err != nil {
		return nil, err
	}

	id, parseErr := uuid.Parse(in.UserID)
	if parseErr != nil {
		err = fmt.Errorf("%w: invalid user id format", shared.ErrValidation)
		return nil, err
	}

	user, err = s.repo.UpdateOwnedBy(ctx, id, actor.UserID, in.FullName, shared.Role(in.Role))
	if err != nil {
		return nil, err
	}
	entry.Details = fmt.Sprintf("User %s updated successfully.", user.Email)
	return user, nil
}

// DeleteUser removes an account the caller provisioned. Deleting an account
// owned by another admin reports not found and leaves the record unmodified.
func (s *Service) DeleteUser(ctx context.Context, actor shared.Identity, in DeleteUserInput) (err error) {
	entry := audit.Entry{Action: "User Deletion", UserID: actor.UserID, AdminID: &actor.UserID}
	defer func() { err = audit.Finish(ctx, s.recorder, s.logger, entry, err) }()

	if err = s.checkInput(in); err != nil {
		return err
	}

	id, parseErr := uuid.Parse(in.UserID)
	if parseErr != nil {
		err = fmt.Errorf("%w: invalid user id format", shared.ErrValidation)
		return err
	}

	if err = s.repo.DeleteOwnedBy(ctx, id, actor.UserID); err != nil {
		return err
	}
	entry.Details = fmt.Sprintf("User %s deleted successfully.", in.UserID)
	return nil
}

// checkInput validates a payload and reports the first violation.
func (s *Service) checkInput(in any) error {
	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %s", shared.ErrValidation, violationMessage(fieldErrs[0]))
		}
		return shared.ErrValidation
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if errs, ok := err.(validator.ValidationErrors); ok {
		*target = errs
		return true
	}
	return false
}

func violationMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "Email":
		return "please enter a valid email"
	case fe.Field() == "Password":
		return "password must be at least 8 characters long"
	case fe.Field() == "FullName":
		return "please enter a full name"
	case fe.Field() == "Role":
		return "role must be one of: admin, editor, viewer"
	case fe.Field() == "UserID":
		return "invalid user id format"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
