package audit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-console/atlas-console/internal/shared"
)

// Recorder appends entries to the system log.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// PGRecorder writes records into system_logs.
type PGRecorder struct {
	pool *pgxpool.Pool
}

// NewPGRecorder returns a Postgres-backed Recorder.
func NewPGRecorder(pool *pgxpool.Pool) *PGRecorder {
	return &PGRecorder{pool: pool}
}

// Record persists the entry. Rows are append-only; there is no update path.
func (r *PGRecorder) Record(ctx context.Context, entry Entry) error {
	if r == nil || r.pool == nil {
		return errors.New("audit: recorder not initialised")
	}
	if entry.Action == "" {
		return errors.New("audit: entry requires action")
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO system_logs (action, user_id, admin_id, details) VALUES ($1, $2, $3, $4)`,
		entry.Action, entry.UserID, entry.AdminID, entry.Details)
	return err
}

// Finish writes the single audit entry for a completed mutating operation
// and returns the error the operation should surface. It runs on every exit
// path, so services call it from a defer. A failed audit write never masks
// the primary failure; if the primary operation succeeded, a failed write
// becomes an internal error because the record is part of the contract.
func Finish(ctx context.Context, rec Recorder, logger *slog.Logger, entry Entry, opErr error) error {
	if entry.Details == "" && opErr != nil {
		entry.Details = opErr.Error()
	}
	if recErr := rec.Record(ctx, entry); recErr != nil {
		if logger != nil {
			logger.Error("audit record failed",
				slog.String("action", entry.Action),
				slog.Any("error", recErr))
		}
		if opErr == nil {
			return shared.ErrInternal
		}
	}
	return opErr
}
