package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/blog-api/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" creates a fresh database that exists only for the duration of
// the test — fast, isolated, and destroyed when the connection closes.
//
// t.Helper() makes failures report at the CALLER's line, and t.Cleanup
// closes the DB even in subtests.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "$2a$04$fakehashforrepositorytests",
		IsActive:     true,
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestBlog inserts a blog owned by author and fails the test on error.
func createTestBlog(t *testing.T, db *DB, author *model.User, title string) *model.Blog {
	t.Helper()
	blog := &model.Blog{
		Title:    title,
		Content:  "content of " + title,
		AuthorID: author.ID,
	}
	if err := db.Blogs().Create(context.Background(), blog); err != nil {
		t.Fatalf("failed to create test blog: %v", err)
	}
	return blog
}
