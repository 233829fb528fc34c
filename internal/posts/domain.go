package posts

import (
	"time"

	"github.com/google/uuid"
)

// Post is an article visible to every account under the same admin.
type Post struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatedBy   uuid.UUID   `json:"-"`
	AdminID     uuid.UUID   `json:"-"`
	Creator     *Creator    `json:"createdBy,omitempty"`
	CommentIDs  []uuid.UUID `json:"comments"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Creator carries the joined author fields returned on listings.
type Creator struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Comment is a remark attached to a post.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"comment"`
	PostID    uuid.UUID `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
