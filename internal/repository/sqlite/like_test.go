package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/blog-api/internal/apperror"
)

func TestLikeToggle_LikeThenUnlike(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	reader := createTestUser(t, db, "b@x.com")
	blog := createTestBlog(t, db, author, "likeable")

	// First toggle: not liked → liked.
	count, err := db.Likes().Toggle(context.Background(), blog.ID, reader.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if count != 1 {
		t.Errorf("likes_count after like = %d, want 1", count)
	}

	// Second toggle: liked → not liked, back to the original state.
	count, err = db.Likes().Toggle(context.Background(), blog.ID, reader.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if count != 0 {
		t.Errorf("likes_count after unlike = %d, want 0", count)
	}

	rows, err := db.Likes().CountByBlog(context.Background(), blog.ID)
	if err != nil {
		t.Fatalf("CountByBlog() error = %v", err)
	}
	if rows != 0 {
		t.Errorf("like rows after double toggle = %d, want 0", rows)
	}
}

func TestLikeToggle_CountMatchesRows(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	blog := createTestBlog(t, db, author, "popular")

	// Three distinct users like the blog; the denormalised counter must
	// track the row count exactly.
	for _, email := range []string{"u1@x.com", "u2@x.com", "u3@x.com"} {
		user := createTestUser(t, db, email)
		if _, err := db.Likes().Toggle(context.Background(), blog.ID, user.ID); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
	}

	found, err := db.Blogs().GetByID(context.Background(), blog.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	rows, err := db.Likes().CountByBlog(context.Background(), blog.ID)
	if err != nil {
		t.Fatalf("CountByBlog() error = %v", err)
	}

	if found.LikesCount != 3 {
		t.Errorf("likes_count = %d, want 3", found.LikesCount)
	}
	if found.LikesCount != rows {
		t.Errorf("likes_count = %d but like rows = %d; they must agree", found.LikesCount, rows)
	}
}

func TestLikeToggle_NeverNegative(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "a@x.com")
	reader := createTestUser(t, db, "b@x.com")
	blog := createTestBlog(t, db, author, "flip flop")

	// Any even number of toggles lands on 0, odd on 1 — never below zero.
	for i := 0; i < 6; i++ {
		count, err := db.Likes().Toggle(context.Background(), blog.ID, reader.ID)
		if err != nil {
			t.Fatalf("Toggle() #%d error = %v", i, err)
		}
		if count < 0 {
			t.Fatalf("Toggle() #%d returned negative count %d", i, count)
		}
	}

	found, err := db.Blogs().GetByID(context.Background(), blog.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.LikesCount != 0 {
		t.Errorf("likes_count after 6 toggles = %d, want 0", found.LikesCount)
	}
}

func TestLikeToggle_BlogNotFound(t *testing.T) {
	db := newTestDB(t)
	reader := createTestUser(t, db, "b@x.com")

	_, err := db.Likes().Toggle(context.Background(), "nonexistent", reader.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
