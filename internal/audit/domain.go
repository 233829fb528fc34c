// Package audit maintains the append-only system log. Entries are written
// once per mutating operation, on success and on failure, and are never
// updated or deleted.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/atlas-console/atlas-console/internal/shared"
)

// Entry is one audit record to be persisted.
type Entry struct {
	Action  string
	UserID  uuid.UUID
	AdminID *uuid.UUID
	Details string
}

// Log is a persisted system log row joined with the actor, as returned to
// admins.
type Log struct {
	ID        uuid.UUID  `json:"id"`
	Action    string     `json:"action"`
	UserID    uuid.UUID  `json:"userId"`
	AdminID   *uuid.UUID `json:"adminId,omitempty"`
	Details   string     `json:"details"`
	Actor     *Actor     `json:"user,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Actor carries the joined identity fields of the user that triggered the
// action.
type Actor struct {
	Email    string      `json:"email"`
	FullName string      `json:"fullName"`
	Role     shared.Role `json:"role"`
}
