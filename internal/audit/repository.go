package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-console/atlas-console/internal/shared"
)

// Repository reads persisted system log rows.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByAdmin returns the logs attributed to the given admin, newest first,
// joined with the actor's identity when the account still exists.
func (r *Repository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]Log, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.action, l.user_id, l.admin_id, l.details, l.created_at,
		       u.email, u.full_name, u.role
		FROM system_logs l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.admin_id = $1
		ORDER BY l.created_at DESC`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []Log
	for rows.Next() {
		var log Log
		var email, fullName *string
		var role *string
		if err := rows.Scan(&log.ID, &log.Action, &log.UserID, &log.AdminID, &log.Details, &log.CreatedAt, &email, &fullName, &role); err != nil {
			return nil, err
		}
		if email != nil {
			log.Actor = &Actor{Email: *email, FullName: *fullName, Role: shared.Role(*role)}
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// CountByAdmin returns the number of logs attributed to the given admin.
func (r *Repository) CountByAdmin(ctx context.Context, adminID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM system_logs WHERE admin_id = $1`, adminID).Scan(&count)
	return count, err
}
