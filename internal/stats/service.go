// Package stats aggregates the per-admin dashboard counters.
package stats

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// UserCounter counts accounts provisioned by an admin.
type UserCounter interface {
	CountOwnedBy(ctx context.Context, adminID uuid.UUID) (int64, error)
}

// LogCounter counts system log rows attributed to an admin.
type LogCounter interface {
	CountByAdmin(ctx context.Context, adminID uuid.UUID) (int64, error)
}

// Dashboard is the stat payload served to admins.
type Dashboard struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalSystemLogs int64 `json:"totalSystemLogs"`
}

// Service computes dashboard stats, cached per admin. Concurrent requests
// for the same admin collapse into a single build.
type Service struct {
	users UserCounter
	logs  LogCounter
	cache *Cache
	group singleflight.Group
}

// NewService constructs a new Service.
func NewService(users UserCounter, logs LogCounter, cache *Cache) *Service {
	return &Service{users: users, logs: logs, cache: cache}
}

// Dashboard returns the cached counters for the admin, building them on a
// miss.
func (s *Service) Dashboard(ctx context.Context, adminID uuid.UUID) (Dashboard, error) {
	key := cacheKey(adminID)
	value, err, _ := s.group.Do(key, func() (any, error) {
		var out Dashboard
		err := s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
			return s.build(ctx, adminID)
		})
		return out, err
	})
	if err != nil {
		return Dashboard{}, err
	}
	return value.(Dashboard), nil
}

// Warm precomputes and stores the counters for the admin, bypassing any
// cached value. Used by the background warmup job.
func (s *Service) Warm(ctx context.Context, adminID uuid.UUID) error {
	key := cacheKey(adminID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		return err
	}
	var out Dashboard
	return s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		return s.build(ctx, adminID)
	})
}

func (s *Service) build(ctx context.Context, adminID uuid.UUID) (Dashboard, error) {
	totalUsers, err := s.users.CountOwnedBy(ctx, adminID)
	if err != nil {
		return Dashboard{}, err
	}
	totalLogs, err := s.logs.CountByAdmin(ctx, adminID)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{TotalUsers: totalUsers, TotalSystemLogs: totalLogs}, nil
}

func cacheKey(adminID uuid.UUID) string {
	return "stats:dashboard:" + adminID.String()
}
