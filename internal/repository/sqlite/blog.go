package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.BlogRepository = (*BlogDB)(nil)

// BlogDB implements repository.BlogRepository on the shared pool.
type BlogDB struct {
	conn *sql.DB
}

// Create inserts a new blog.
//
// ID GENERATION WITH xid:
// xid produces 20-char, URL-safe IDs that sort by creation time (they start
// with a timestamp). That makes `ORDER BY id` identical to insertion order,
// which is what the list endpoint pages over.
//
// We take a pointer so the caller's struct gets the generated ID and
// timestamps back.
func (b *BlogDB) Create(ctx context.Context, blog *model.Blog) error {
	blog.ID = xid.New().String()
	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now
	blog.LikesCount = 0

	_, err := b.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, title, content, author_id, created_at, updated_at, likes_count)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.AuthorID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	return nil
}

// GetByID retrieves a single blog.
//
// sql.ErrNoRows is not really an error — it means "no matching row". We
// translate it to the domain's NotFound so the handler answers 404. This
// translation at the repository boundary is what keeps SQL details out of
// the service layer.
func (b *BlogDB) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var blog model.Blog

	err := b.conn.QueryRowContext(ctx,
		`SELECT id, title, content, author_id, created_at, updated_at, likes_count
		 FROM blogs
		 WHERE id = ?`,
		id,
	).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.AuthorID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&blog.LikesCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %s: %w", id, err)
	}

	return &blog, nil
}

// List retrieves a page of blogs in insertion order (xid IDs sort by
// creation time). LIMIT/OFFSET map straight to the endpoint's limit/skip
// query parameters; the service has already clamped them.
func (b *BlogDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Blog, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := b.conn.QueryContext(ctx,
		`SELECT id, title, content, author_id, created_at, updated_at, likes_count
		 FROM blogs
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	// sql.Rows holds a connection from the pool — always close it, or the
	// pool eventually runs dry and the app hangs.
	defer rows.Close()

	blogs := make([]model.Blog, 0, limit)
	for rows.Next() {
		var blog model.Blog
		if err := rows.Scan(
			&blog.ID, &blog.Title, &blog.Content, &blog.AuthorID,
			&blog.CreatedAt, &blog.UpdatedAt, &blog.LikesCount,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		blogs = append(blogs, blog)
	}

	// rows.Err() catches errors that happened DURING iteration (e.g. the
	// connection dropping mid-scan) — rows.Next() just returns false then.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return blogs, nil
}

// Update overwrites the mutable fields (title, content) and bumps
// updated_at. id, author_id, created_at, and likes_count are never touched
// here — author_id is immutable by design and likes_count belongs to the
// like toggle.
//
// RowsAffected tells us whether the WHERE clause matched: 0 rows means the
// blog doesn't exist, and that's cheaper than a SELECT-then-UPDATE pair.
func (b *BlogDB) Update(ctx context.Context, blog *model.Blog) error {
	blog.UpdatedAt = time.Now()

	result, err := b.conn.ExecContext(ctx,
		`UPDATE blogs
		 SET title = ?, content = ?, updated_at = ?
		 WHERE id = ?`,
		blog.Title,
		blog.Content,
		blog.UpdatedAt,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog %s: %w", blog.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", blog.ID)
	}

	return nil
}

// Delete removes a blog. The ON DELETE CASCADE clauses on comments.blog_id
// and likes.blog_id remove its comments and likes in the same statement.
func (b *BlogDB) Delete(ctx context.Context, id string) error {
	result, err := b.conn.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", id)
	}

	return nil
}
