package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.CommentRepository = (*CommentDB)(nil)

// CommentDB implements repository.CommentRepository on the shared pool.
type CommentDB struct {
	conn *sql.DB
}

// Create inserts a comment under a blog. The service has already verified
// the blog exists; if it vanished in between, the foreign key on blog_id
// fails and we still answer NotFound rather than a 500.
func (c *CommentDB) Create(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	comment.CreatedAt = time.Now()

	_, err := c.conn.ExecContext(ctx,
		`INSERT INTO comments (id, content, blog_id, author_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		comment.ID,
		comment.Content,
		comment.BlogID,
		comment.AuthorID,
		comment.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return apperror.NotFound("blog", comment.BlogID)
		}
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	return nil
}

// ListByBlog retrieves a page of comments for one blog, oldest first.
func (c *CommentDB) ListByBlog(ctx context.Context, blogID string, opts repository.ListOptions) ([]model.Comment, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := c.conn.QueryContext(ctx,
		`SELECT id, content, blog_id, author_id, created_at
		 FROM comments
		 WHERE blog_id = ?
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		blogID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for blog %s: %w", blogID, err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0, limit)
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.BlogID,
			&comment.AuthorID, &comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}
