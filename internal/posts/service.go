package posts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/atlas-console/atlas-console/internal/audit"
	"github.com/atlas-console/atlas-console/internal/shared"
)

// RepositoryPort defines the ownership-scoped data access the service needs.
type RepositoryPort interface {
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]Post, error)
	Create(ctx context.Context, post Post) (*Post, error)
	UpdateOwnedBy(ctx context.Context, id, userID uuid.UUID, title, description string) (*Post, error)
	DeleteOwnedBy(ctx context.Context, id, userID uuid.UUID) error
	AddComment(ctx context.Context, comment Comment) (*Comment, error)
}

// Service implements post and comment operations. Posts are visible to
// every account under the same admin; mutations are scoped to the creator.
type Service struct {
	repo     RepositoryPort
	recorder audit.Recorder
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo RepositoryPort, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
		validate: validator.New(),
	}
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// EditPostInput is the payload for updating a post the caller created.
type EditPostInput struct {
	PostID      string `json:"postId" validate:"required,uuid4"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// DeletePostInput identifies the post to remove.
type DeletePostInput struct {
	PostID string `json:"postId" validate:"required,uuid4"`
}

// AddCommentInput is the payload for commenting on a post.
type AddCommentInput struct {
	PostID  string `json:"postId" validate:"required,uuid4"`
	Comment string `json:"comment" validate:"required"`
}

// Posts returns the posts in the caller's admin scope, newest first.
func (s *Service) Posts(ctx context.Context, actor shared.Identity) ([]Post, error) {
	return s.repo.ListByAdmin(ctx, actor.AdminID)
}

// CreatePost creates a post owned by the caller.
func (s *Service) CreatePost(ctx context.Context, actor shared.Identity, in CreatePostInput) (post *Post, err error) {
	entry := audit.Entry{Action: "Create Post", UserID: actor.UserID, AdminID: adminRef(actor)}
	defer func() { err = audit.Finish(ctx, s.recorder, s.logger, entry, err) }()

	if err = s.checkInput(in); err != nil {
		return nil, err
	}

	post, err = s.repo.Create(ctx, Post{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		CreatedBy:   actor.UserID,
		AdminID:     actor.AdminID,
	})
	if err != nil {
		return nil, err
	}
	entry.Details = "Post created successfully."
	return post, nil
}

// EditPost updates a post the caller created.
func (s *Service) EditPost(ctx context.Context, actor shared.Identity, in EditPostInput) (post *Post, err error) {
	entry := audit.Entry{Action: "Edit Post", UserID: actor.UserID, AdminID: adminRef(actor)}
	defer func() { err = audit.Finish(ctx, s.recorder, s.logger, entry, err) }()

	if err = s.checkInput(in); err != nil {
		return nil, err
	}

	id, parseErr := uuid.Parse(in.PostID)
	if parseErr != nil {
		err = fmt.Errorf("%w: invalid post id format", shared.ErrValidation)
		return nil, err
	}

	post, err = s.repo.UpdateOwnedBy(ctx, id, actor.UserID, in.Title, in.Description)
	if err != nil {
		return nil, err
	}
	entry.Details = "Post updated successfully."
	return post, nil
}

// DeletePost removes a post the caller created.
func (s *Service) DeletePost(ctx context.Context, actor shared.Identity, in DeletePostInput) (err error) {
	entry := audit.Entry{Action: "Delete Post", UserID: actor.UserID, AdminID: adminRef(actor)}
	defer func() { err = audit.Finish(ctx, s.recorder, s.logger, entry, err) }()

	if err = s.checkInput(in); err != nil {
		return err
	}

	id, parseErr := uuid.Parse(in.PostID)
	if parseErr != nil {
		err = fmt.Errorf("%w: invalid post id format", shared.ErrValidation)
		return err
	}

	if err = s.repo.DeleteOwnedBy(ctx, id, actor.UserID); err != nil {
		return err
	}
	entry.Details = "Post deleted successfully."
	return nil
}

// AddComment attaches a comment to an existing post. Any role may comment.
func (s *Service) AddComment(ctx context.Context, actor shared.Identity, in AddCommentInput) (comment *Comment, err error) {
	entry := audit.Entry{Action: "Add Comment", UserID: actor.UserID, AdminID: adminRef(actor)}
	defer func() { err = audit.Finish(ctx, s.recorder, s.logger, entry, err) }()

	if err = s.checkInput(in); err != nil {
		return nil, err
	}

	id, parseErr := uuid.Parse(in.PostID)
	if parseErr != nil {
		err = fmt.Errorf("%w: invalid post id format", shared.ErrValidation)
		return nil, err
	}

	comment, err = s.repo.AddComment(ctx, Comment{
		ID:     uuid.New(),
		Text:   in.Comment,
		PostID: id,
	})
	if err != nil {
		return nil, err
	}
	entry.Details = "Comment added successfully."
	return comment, nil
}

func (s *Service) checkInput(in any) error {
	if err := s.validate.Struct(in); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s is %s", shared.ErrValidation, fe.Field(), reason(fe))
		}
		return shared.ErrValidation
	}
	return nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "uuid4":
		return "not a valid id"
	default:
		return "invalid"
	}
}

func adminRef(actor shared.Identity) *uuid.UUID {
	admin := actor.AdminID
	return &admin
}
