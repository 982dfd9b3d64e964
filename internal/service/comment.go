package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

const MaxCommentLength = 10000

// CommentService handles business logic for comments under blog posts.
type CommentService struct {
	comments repository.CommentRepository
	blogs    repository.BlogRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService. It also takes the blog
// repository so it can verify the parent blog exists before inserting.
func NewCommentService(comments repository.CommentRepository, blogs repository.BlogRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		blogs:    blogs,
		logger:   logger,
	}
}

// Create attaches a comment by currentUser to a blog. Returns
// apperror.ErrNotFound if the parent blog is absent.
func (s *CommentService) Create(ctx context.Context, blogID, content string, currentUser *model.User) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "comment content is required")
	}
	if len(content) > MaxCommentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("comment must be %d characters or less", MaxCommentLength))
	}

	// Confirm the parent exists so a comment on a missing blog is a clean
	// 404 (the FK would catch it anyway, but with a murkier error path).
	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content:  content,
		BlogID:   blogID,
		AuthorID: currentUser.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.String("blogID", blogID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.String("id", comment.ID),
		slog.String("blogID", blogID),
		slog.String("authorID", currentUser.ID),
	)

	return comment, nil
}

// ListByBlog retrieves a page of a blog's comments, oldest first. Returns
// apperror.ErrNotFound if the blog is absent.
func (s *CommentService) ListByBlog(ctx context.Context, blogID string, skip, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if skip < 0 {
		skip = 0
	}

	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByBlog(ctx, blogID, repository.ListOptions{
		Limit:  limit,
		Offset: skip,
	})
	if err != nil {
		s.logger.Error("failed to list comments",
			slog.String("blogID", blogID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	return comments, nil
}
