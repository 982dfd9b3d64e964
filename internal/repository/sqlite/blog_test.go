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

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestBlogCreate(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")

	blog := &model.Blog{Title: "T", Content: "C", AuthorID: author.ID}
	if err := db.Blogs().Create(context.Background(), blog); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if blog.ID == "" {
		t.Error("Create() did not set blog.ID")
	}
	if blog.CreatedAt.IsZero() {
		t.Error("Create() did not set blog.CreatedAt")
	}
	if blog.LikesCount != 0 {
		t.Errorf("new blog LikesCount = %d, want 0", blog.LikesCount)
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestBlogGetByID(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	created := createTestBlog(t, db, author, "first post")

	found, err := db.Blogs().GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "first post" {
		t.Errorf("Title = %q, want %q", found.Title, "first post")
	}
	if found.AuthorID != author.ID {
		t.Errorf("AuthorID = %q, want %q", found.AuthorID, author.ID)
	}
}

func TestBlogGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Blogs().GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestBlogList_InsertionOrderAndPaging(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")

	for i := 0; i < 5; i++ {
		createTestBlog(t, db, author, fmt.Sprintf("post %d", i))
	}

	// Page of 2, skipping the first 2 → posts 2 and 3 in insertion order.
	page, err := db.Blogs().List(context.Background(), repository.ListOptions{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("len(page) = %d, want 2", len(page))
	}
	if page[0].Title != "post 2" || page[1].Title != "post 3" {
		t.Errorf("page = [%q, %q], want [post 2, post 3]", page[0].Title, page[1].Title)
	}
}

func TestBlogList_Empty(t *testing.T) {
	db := newTestDB(t)

	blogs, err := db.Blogs().List(context.Background(), repository.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(blogs) != 0 {
		t.Errorf("len(blogs) = %d, want 0", len(blogs))
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestBlogUpdate(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	blog := createTestBlog(t, db, author, "before")

	blog.Title = "after"
	blog.Content = "new content"
	if err := db.Blogs().Update(context.Background(), blog); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := db.Blogs().GetByID(context.Background(), blog.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "after" || found.Content != "new content" {
		t.Errorf("updated blog = %q/%q, want after/new content", found.Title, found.Content)
	}
	// author_id is never part of the UPDATE statement.
	if found.AuthorID != author.ID {
		t.Errorf("AuthorID changed to %q on update", found.AuthorID)
	}
	if !found.UpdatedAt.After(found.CreatedAt) && !found.UpdatedAt.Equal(found.CreatedAt) {
		t.Error("UpdatedAt should be >= CreatedAt after an update")
	}
}

func TestBlogUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	blog := &model.Blog{ID: "nonexistent", Title: "x"}
	err := db.Blogs().Update(context.Background(), blog)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestBlogDelete(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	blog := createTestBlog(t, db, author, "doomed")

	if err := db.Blogs().Delete(context.Background(), blog.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := db.Blogs().GetByID(context.Background(), blog.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete, GetByID error = %v, want ErrNotFound", err)
	}
}

func TestBlogDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Blogs().Delete(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestBlogDelete_CascadesCommentsAndLikes(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	reader := createTestUser(t, db, "b@x.com")
	blog := createTestBlog(t, db, author, "with attachments")

	comment := &model.Comment{Content: "nice", BlogID: blog.ID, AuthorID: reader.ID}
	if err := db.Comments().Create(context.Background(), comment); err != nil {
		t.Fatalf("comment Create() error = %v", err)
	}
	if _, err := db.Likes().Toggle(context.Background(), blog.ID, reader.ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	if err := db.Blogs().Delete(context.Background(), blog.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// ON DELETE CASCADE: the blog's comments and likes go with it.
	comments, err := db.Comments().ListByBlog(context.Background(), blog.ID, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListByBlog() error = %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("found %d comments after blog delete, want 0", len(comments))
	}

	likes, err := db.Likes().CountByBlog(context.Background(), blog.ID)
	if err != nil {
		t.Fatalf("CountByBlog() error = %v", err)
	}
	if likes != 0 {
		t.Errorf("found %d likes after blog delete, want 0", likes)
	}
}
