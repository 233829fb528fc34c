package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-console/atlas-console/internal/shared"
)

const userColumns = `id, email, password_hash, full_name, role, created_by, created_at, updated_at`

// Repository provides PostgreSQL backed persistence for user accounts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new account. A unique-violation on email maps to
// shared.ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, user User) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, role, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, user.CreatedBy)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrDuplicateEmail
		}
		return nil, err
	}
	return created, nil
}

// FindByEmail returns the account with the given email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListOwnedBy returns the accounts the given admin provisioned, newest
// first.
func (r *Repository) ListOwnedBy(ctx context.Context, adminID uuid.UUID) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE created_by = $1
		ORDER BY created_at DESC`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateOwnedBy updates name and role of an account the admin provisioned.
// Returns shared.ErrNotFound when the account does not exist or belongs to
// another admin.
func (r *Repository) UpdateOwnedBy(ctx context.Context, id, adminID uuid.UUID, fullName string, role shared.Role) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET full_name = $3, role = $4, updated_at = NOW()
		WHERE id = $1 AND created_by = $2
		RETURNING `+userColumns, id, adminID, fullName, role)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteOwnedBy removes an account the admin provisioned. Returns
// shared.ErrNotFound when the scoped delete affects zero rows.
func (r *Repository) DeleteOwnedBy(ctx context.Context, id, adminID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1 AND created_by = $2`, id, adminID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountOwnedBy returns how many accounts the given admin provisioned.
func (r *Repository) CountOwnedBy(ctx context.Context, adminID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE created_by = $1`, adminID).Scan(&count)
	return count, err
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.CreatedBy, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
