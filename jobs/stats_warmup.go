package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-console/atlas-console/internal/stats"
)

// StatsWarmupJob pre-populates the dashboard stat cache for every admin so
// the first console load after a quiet period stays fast.
type StatsWarmupJob struct {
	Stats  *stats.Service
	Pool   *pgxpool.Pool
	Logger *slog.Logger
	clock  func() time.Time
}

// NewStatsWarmupJob wires dependencies for the warmup handler.
func NewStatsWarmupJob(statsSvc *stats.Service, pool *pgxpool.Pool, logger *slog.Logger) *StatsWarmupJob {
	return &StatsWarmupJob{
		Stats:  statsSvc,
		Pool:   pool,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes stats warmup tasks.
func (j *StatsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("stats warmup: handler not configured")
	}
	logger := j.log()
	logger.Info("starting stats warmup")

	admins, err := j.fetchAdmins(ctx)
	if err != nil {
		logger.Error("load admins for warmup", slog.Any("error", err))
		return err
	}
	if len(admins) == 0 {
		logger.Info("no admins discovered for warmup")
		return nil
	}

	start := j.now()
	for _, adminID := range admins {
		if err := j.warmAdmin(ctx, adminID); err != nil {
			logger.Error("warm admin", slog.String("admin_id", adminID.String()), slog.Any("error", err))
			return err
		}
	}

	logger.Info("completed stats warmup", slog.Int("admins", len(admins)), slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *StatsWarmupJob) warmAdmin(ctx context.Context, adminID uuid.UUID) error {
	if j.Stats == nil {
		return nil
	}
	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	return j.Stats.Warm(warmCtx, adminID)
}

func (j *StatsWarmupJob) fetchAdmins(ctx context.Context) ([]uuid.UUID, error) {
	if j.Pool == nil {
		return nil, errors.New("stats warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT id FROM users WHERE role = 'admin' ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		admins = append(admins, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return admins, nil
}

func (j *StatsWarmupJob) log() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskStatsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskStatsWarmup))
}

func (j *StatsWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
