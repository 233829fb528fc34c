package posts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-console/atlas-console/internal/shared"
)

// Repository provides PostgreSQL backed persistence for posts and comments.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByAdmin returns the posts belonging to the given admin's scope,
// newest first, with author identity and comment ids attached.
func (r *Repository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.description, p.created_by, p.admin_id,
		       p.created_at, p.updated_at,
		       u.full_name, u.email,
		       COALESCE(ARRAY_AGG(c.id ORDER BY c.created_at) FILTER (WHERE c.id IS NOT NULL), '{}') AS comment_ids
		FROM posts p
		LEFT JOIN users u ON u.id = p.created_by
		LEFT JOIN comments c ON c.post_id = p.id
		WHERE p.admin_id = $1
		GROUP BY p.id, u.full_name, u.email
		ORDER BY p.created_at DESC`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Post
	for rows.Next() {
		var post Post
		var fullName, email *string
		if err := rows.Scan(&post.ID, &post.Title, &post.Description, &post.CreatedBy, &post.AdminID,
			&post.CreatedAt, &post.UpdatedAt, &fullName, &email, &post.CommentIDs); err != nil {
			return nil, err
		}
		if fullName != nil {
			post.Creator = &Creator{FullName: *fullName, Email: *email}
		}
		list = append(list, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Create inserts a new post.
func (r *Repository) Create(ctx context.Context, post Post) (*Post, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (id, title, description, created_by, admin_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, created_by, admin_id, created_at, updated_at`,
		post.ID, post.Title, post.Description, post.CreatedBy, post.AdminID)
	created, err := scanPost(row)
	if err != nil {
		return nil, err
	}
	created.CommentIDs = []uuid.UUID{}
	return created, nil
}

// UpdateOwnedBy updates a post created by the given user. Returns
// shared.ErrNotFound when the post does not exist or belongs to someone
// else.
func (r *Repository) UpdateOwnedBy(ctx context.Context, id, userID uuid.UUID, title, description string) (*Post, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE posts SET title = $3, description = $4, updated_at = NOW()
		WHERE id = $1 AND created_by = $2
		RETURNING id, title, description, created_by, admin_id, created_at, updated_at`,
		id, userID, title, description)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// DeleteOwnedBy removes a post created by the given user. Returns
// shared.ErrNotFound when the scoped delete affects zero rows.
func (r *Repository) DeleteOwnedBy(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND created_by = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddComment attaches a comment to an existing post. A foreign key
// violation on post_id maps to shared.ErrNotFound.
func (r *Repository) AddComment(ctx context.Context, comment Comment) (*Comment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, comment, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, comment, post_id, created_at`,
		comment.ID, comment.Text, comment.PostID)
	var created Comment
	if err := row.Scan(&created.ID, &created.Text, &created.PostID, &created.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &created, nil
}

func scanPost(row pgx.Row) (*Post, error) {
	var post Post
	if err := row.Scan(&post.ID, &post.Title, &post.Description, &post.CreatedBy, &post.AdminID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return nil, err
	}
	return &post, nil
}
