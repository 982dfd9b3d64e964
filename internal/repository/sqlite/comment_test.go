package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

func TestCommentCreate(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	blog := createTestBlog(t, db, author, "post")

	comment := &model.Comment{Content: "first!", BlogID: blog.ID, AuthorID: author.ID}
	if err := db.Comments().Create(context.Background(), comment); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if comment.ID == "" {
		t.Error("Create() did not set comment.ID")
	}
	if comment.CreatedAt.IsZero() {
		t.Error("Create() did not set comment.CreatedAt")
	}
}

func TestCommentCreate_BlogGone(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")

	// The FK violation maps to NotFound, covering the race where the blog
	// is deleted between the service's existence check and the insert.
	comment := &model.Comment{Content: "orphan", BlogID: "nonexistent", AuthorID: author.ID}
	err := db.Comments().Create(context.Background(), comment)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCommentListByBlog(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	blog := createTestBlog(t, db, author, "post")
	other := createTestBlog(t, db, author, "other post")

	for i := 0; i < 3; i++ {
		comment := &model.Comment{
			Content:  fmt.Sprintf("comment %d", i),
			BlogID:   blog.ID,
			AuthorID: author.ID,
		}
		if err := db.Comments().Create(context.Background(), comment); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	// One comment on another blog — must not leak into the listing.
	stray := &model.Comment{Content: "elsewhere", BlogID: other.ID, AuthorID: author.ID}
	if err := db.Comments().Create(context.Background(), stray); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	comments, err := db.Comments().ListByBlog(context.Background(), blog.ID, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListByBlog() error = %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("len(comments) = %d, want 3", len(comments))
	}
	// Oldest first.
	if comments[0].Content != "comment 0" {
		t.Errorf("first comment = %q, want %q", comments[0].Content, "comment 0")
	}
}
