package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-console/atlas-console/internal/shared"
)

// BootstrapAdmin describes the seed account created on first start.
type BootstrapAdmin struct {
	Email    string
	Password string
	FullName string
}

// BootstrapStore is the persistence surface EnsureBootstrapAdmin needs.
type BootstrapStore interface {
	Create(ctx context.Context, user User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// EnsureBootstrapAdmin creates the seed admin when it does not exist yet.
// A console with no admin account cannot be logged into, so the first
// deployment seeds one from configuration. Idempotent across restarts.
func EnsureBootstrapAdmin(ctx context.Context, store BootstrapStore, logger *slog.Logger, seed BootstrapAdmin) error {
	if seed.Email == "" {
		return nil
	}

	if _, err := store.FindByEmail(ctx, seed.Email); err == nil {
		return nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	fullName := seed.FullName
	if fullName == "" {
		fullName = "Console Admin"
	}

	created, err := store.Create(ctx, User{
		ID:           uuid.New(),
		Email:        seed.Email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         shared.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateEmail) {
			// Raced with another instance seeding the same account.
			return nil
		}
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	if logger != nil {
		logger.Info("bootstrap admin created",
			slog.String("email", created.Email),
			slog.String("user_id", created.ID.String()))
	}
	return nil
}
