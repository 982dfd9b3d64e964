// Package repository defines the storage interfaces the service layer
// depends on. Services receive these interfaces (not the concrete sqlite
// types), so tests can inject in-memory mocks and the backing store can be
// swapped without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/blog-api/internal/model"
)

// ListOptions bounds a paged query. Offset is the number of rows to skip
// ("skip" in the query string), Limit the page size.
type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpsertByEmail inserts the user, or refreshes UpdatedAt if a user with
	// that email already exists. Used by the OAuth sign-in path.
	UpsertByEmail(ctx context.Context, user *model.User) error
}

type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context, opts ListOptions) ([]model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByBlog(ctx context.Context, blogID string, opts ListOptions) ([]model.Comment, error)
}

// LikeRepository manages the per-(blog, user) like state.
type LikeRepository interface {
	// Toggle flips the like state for (blogID, userID) and adjusts the
	// blog's likes_count in the same transaction. It returns the
	// post-transition likes_count. Returns ErrNotFound if the blog is gone.
	Toggle(ctx context.Context, blogID, userID string) (int, error)
	// CountByBlog returns the number of Like rows for a blog.
	CountByBlog(ctx context.Context, blogID string) (int, error)
}
