package audit

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryPort defines the read side of the system log.
type RepositoryPort interface {
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]Log, error)
}

// Service exposes system log queries.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a new Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// SystemLogs returns the audit records written under the caller's admin id,
// newest first. Admins only see actions they triggered or that were
// triggered by accounts they provisioned.
func (s *Service) SystemLogs(ctx context.Context, adminID uuid.UUID) ([]Log, error) {
	return s.repo.ListByAdmin(ctx, adminID)
}
