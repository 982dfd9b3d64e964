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

// Validation and pagination constants. Named constants instead of magic
// numbers — easy to find, change, and reference in error messages.
const (
	MaxTitleLength   = 200
	MaxContentLength = 100000 // ~100KB
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// BlogService handles business logic for blog posts: validation, ownership
// enforcement, and the like toggle.
type BlogService struct {
	blogs  repository.BlogRepository
	likes  repository.LikeRepository
	logger *slog.Logger
}

// NewBlogService creates a BlogService.
func NewBlogService(blogs repository.BlogRepository, likes repository.LikeRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		blogs:  blogs,
		likes:  likes,
		logger: logger,
	}
}

// Create validates and saves a new blog owned by author. The author is
// recorded at creation and never changes afterwards — Update deliberately
// doesn't touch it.
func (s *BlogService) Create(ctx context.Context, title, content string, author *model.User) (*model.Blog, error) {
	title = strings.TrimSpace(title)
	if err := validateBlogInput(title, content); err != nil {
		return nil, err
	}

	blog := &model.Blog{
		Title:    title,
		Content:  content,
		AuthorID: author.ID,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.String("authorID", author.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	s.logger.Info("blog created",
		slog.String("id", blog.ID),
		slog.String("authorID", blog.AuthorID),
	)

	return blog, nil
}

// Get retrieves one blog. Returns apperror.ErrNotFound if it doesn't exist.
func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}
	return s.blogs.GetByID(ctx, id)
}

// List retrieves a page of blogs in insertion order. This endpoint is
// public, so the limit is clamped — callers can't request a million rows.
// skip maps to the SQL OFFSET.
func (s *BlogService) List(ctx context.Context, skip, limit int) ([]model.Blog, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if skip < 0 {
		skip = 0
	}

	blogs, err := s.blogs.List(ctx, repository.ListOptions{
		Limit:  limit,
		Offset: skip,
	})
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing blogs: %w", err)
	}

	return blogs, nil
}

// Update overwrites the mutable fields (title, content) of a blog.
//
// CHECK ORDER MATTERS: NotFound before Forbidden. A non-owner probing a
// missing blog learns only that it doesn't exist, and an owner editing a
// deleted blog gets 404, not a confusing 403.
func (s *BlogService) Update(ctx context.Context, id, title, content string, currentUser *model.User) (*model.Blog, error) {
	title = strings.TrimSpace(title)
	if err := validateBlogInput(title, content); err != nil {
		return nil, err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != currentUser.ID {
		return nil, apperror.Forbidden("not authorized to update this blog")
	}

	// Explicit field-by-field copy of the mutable fields only. AuthorID,
	// CreatedAt, and LikesCount stay as loaded.
	blog.Title = title
	blog.Content = content

	if err := s.blogs.Update(ctx, blog); err != nil {
		s.logger.Error("failed to update blog",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating blog: %w", err)
	}

	s.logger.Info("blog updated", slog.String("id", blog.ID))

	return blog, nil
}

// Delete removes a blog after the same not-found/ownership checks as
// Update. Associated comments and likes go with it (cascade at the storage
// layer).
func (s *BlogService) Delete(ctx context.Context, id string, currentUser *model.User) error {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.AuthorID != currentUser.ID {
		return apperror.Forbidden("not authorized to delete this blog")
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog deleted",
		slog.String("id", id),
		slog.String("authorID", currentUser.ID),
	)
	return nil
}

// ToggleLike flips currentUser's like on a blog and returns the new
// likes_count. The repository performs the whole transition atomically, so
// there's no read-then-write race here; a missing blog comes back as
// ErrNotFound from the same call.
func (s *BlogService) ToggleLike(ctx context.Context, blogID string, currentUser *model.User) (int, error) {
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return 0, apperror.ValidationFailed("id", "blog ID is required")
	}

	count, err := s.likes.Toggle(ctx, blogID, currentUser.ID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("like toggled",
		slog.String("blogID", blogID),
		slog.String("userID", currentUser.ID),
		slog.Int("likesCount", count),
	)

	return count, nil
}

func validateBlogInput(title, content string) error {
	if title == "" {
		return apperror.ValidationFailed("title", "blog title is required")
	}
	if len(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("blog title must be %d characters or less", MaxTitleLength))
	}
	if len(content) > MaxContentLength {
		return apperror.ValidationFailed("content",
			fmt.Sprintf("blog content must be %d characters or less", MaxContentLength))
	}
	return nil
}
