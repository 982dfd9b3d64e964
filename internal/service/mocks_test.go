package service

// MOCK REPOSITORIES:
// Fake implementations of the repository interfaces backed by maps. The
// services don't know or care whether they get these or the sqlite
// versions — that's the point of programming to an interface. Tests run in
// microseconds and can simulate states that are awkward to reach with a
// real database.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

type mockUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("user", "email "+user.Email)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) UpsertByEmail(ctx context.Context, user *model.User) error {
	if existing, err := m.GetByEmail(ctx, user.Email); err == nil {
		*user = *existing
		return nil
	}
	return m.Create(ctx, user)
}

type mockBlogRepo struct {
	blogs  map[string]*model.Blog
	nextID int
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{blogs: make(map[string]*model.Blog)}
}

func (m *mockBlogRepo) Create(_ context.Context, blog *model.Blog) error {
	m.nextID++
	blog.ID = fmt.Sprintf("blog-%d", m.nextID)
	stored := *blog
	m.blogs[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) GetByID(_ context.Context, id string) (*model.Blog, error) {
	b, ok := m.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	result := *b
	return &result, nil
}

func (m *mockBlogRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Blog, error) {
	// Insertion order: blog-1, blog-2, ... — reconstruct from nextID.
	result := make([]model.Blog, 0, len(m.blogs))
	for i := 1; i <= m.nextID; i++ {
		if b, ok := m.blogs[fmt.Sprintf("blog-%d", i)]; ok {
			result = append(result, *b)
		}
	}
	if opts.Offset >= len(result) {
		return []model.Blog{}, nil
	}
	result = result[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (m *mockBlogRepo) Update(_ context.Context, blog *model.Blog) error {
	if _, ok := m.blogs[blog.ID]; !ok {
		return apperror.NotFound("blog", blog.ID)
	}
	stored := *blog
	m.blogs[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.blogs[id]; !ok {
		return apperror.NotFound("blog", id)
	}
	delete(m.blogs, id)
	return nil
}

type mockCommentRepo struct {
	comments []model.Comment
	nextID   int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	m.nextID++
	comment.ID = fmt.Sprintf("comment-%d", m.nextID)
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *mockCommentRepo) ListByBlog(_ context.Context, blogID string, opts repository.ListOptions) ([]model.Comment, error) {
	result := make([]model.Comment, 0)
	for _, c := range m.comments {
		if c.BlogID == blogID {
			result = append(result, c)
		}
	}
	if opts.Offset >= len(result) {
		return []model.Comment{}, nil
	}
	result = result[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result, nil
}

// mockLikeRepo mirrors the sqlite toggle semantics against the blog mock's
// LikesCount field.
type mockLikeRepo struct {
	blogs *mockBlogRepo
	liked map[string]bool // key: blogID + "/" + userID
}

func newMockLikeRepo(blogs *mockBlogRepo) *mockLikeRepo {
	return &mockLikeRepo{blogs: blogs, liked: make(map[string]bool)}
}

func (m *mockLikeRepo) Toggle(_ context.Context, blogID, userID string) (int, error) {
	blog, ok := m.blogs.blogs[blogID]
	if !ok {
		return 0, apperror.NotFound("blog", blogID)
	}
	key := blogID + "/" + userID
	if m.liked[key] {
		delete(m.liked, key)
		blog.LikesCount--
	} else {
		m.liked[key] = true
		blog.LikesCount++
	}
	return blog.LikesCount, nil
}

func (m *mockLikeRepo) CountByBlog(_ context.Context, blogID string) (int, error) {
	count := 0
	for key, on := range m.liked {
		if on && len(key) > len(blogID) && key[:len(blogID)] == blogID {
			count++
		}
	}
	return count, nil
}

// Interface checks — a mock drifting from the interface fails here, not in
// some distant test.
var (
	_ repository.UserRepository    = (*mockUserRepo)(nil)
	_ repository.BlogRepository    = (*mockBlogRepo)(nil)
	_ repository.CommentRepository = (*mockCommentRepo)(nil)
	_ repository.LikeRepository    = (*mockLikeRepo)(nil)
)

// testLogger discards nothing but only shows errors — service tests assert
// on return values, not log output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testUser is a convenience fixture for ownership tests.
func testUser(t *testing.T, id string) *model.User {
	t.Helper()
	return &model.User{ID: id, Email: id + "@x.com", IsActive: true}
}
