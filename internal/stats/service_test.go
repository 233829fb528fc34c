package stats

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	users int64
	logs  int64
	calls atomic.Int64
}

func (c *countingSource) CountOwnedBy(ctx context.Context, adminID uuid.UUID) (int64, error) {
	c.calls.Add(1)
	return c.users, nil
}

func (c *countingSource) CountByAdmin(ctx context.Context, adminID uuid.UUID) (int64, error) {
	return c.logs, nil
}

func newCachedService(t *testing.T, src *countingSource) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(src, src, NewCache(client, time.Minute))
}

func TestDashboardCounts(t *testing.T) {
	src := &countingSource{users: 4, logs: 17}
	svc := newCachedService(t, src)

	got, err := svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, Dashboard{TotalUsers: 4, TotalSystemLogs: 17}, got)
}

func TestDashboardServedFromCache(t *testing.T) {
	src := &countingSource{users: 2, logs: 5}
	svc := newCachedService(t, src)
	adminID := uuid.New()

	_, err := svc.Dashboard(context.Background(), adminID)
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background(), adminID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), src.calls.Load(), "second call hits the cache")
}

func TestDashboardScopedPerAdmin(t *testing.T) {
	src := &countingSource{users: 1, logs: 1}
	svc := newCachedService(t, src)

	_, err := svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(2), src.calls.Load(), "distinct admins use distinct keys")
}

func TestWarmRefreshesCache(t *testing.T) {
	src := &countingSource{users: 1, logs: 1}
	svc := newCachedService(t, src)
	adminID := uuid.New()

	_, err := svc.Dashboard(context.Background(), adminID)
	require.NoError(t, err)

	src.users = 9
	require.NoError(t, svc.Warm(context.Background(), adminID))

	got, err := svc.Dashboard(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.TotalUsers, "warm bypasses the stale value")
}

func TestDashboardWithoutRedis(t *testing.T) {
	src := &countingSource{users: 3, logs: 7}
	svc := NewService(src, src, NewCache(nil, time.Minute))

	got, err := svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, Dashboard{TotalUsers: 3, TotalSystemLogs: 7}, got)
}
