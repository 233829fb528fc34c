package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/atlas-console/atlas-console/internal/shared"
)

// User represents a provisioned account. PasswordHash and CreatedBy are
// never serialized to clients.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"fullName"`
	Role         shared.Role `json:"role"`
	CreatedBy    *uuid.UUID  `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
