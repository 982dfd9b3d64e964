package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.LikeRepository = (*LikeDB)(nil)

// LikeDB implements repository.LikeRepository on the shared pool.
type LikeDB struct {
	conn *sql.DB
}

// Toggle flips the like state for (blogID, userID) in one transaction.
//
// The existence check, the row insert/delete, and the likes_count
// adjustment all commit together, so two concurrent toggles from the same
// user serialize at the database: one likes, the other unlikes. Combined
// with the UNIQUE(blog_id, user_id) index, likes_count can never drift from
// the actual row count or go negative.
//
// Returns the post-transition likes_count, or ErrNotFound if the blog is
// gone.
func (l *LikeDB) Toggle(ctx context.Context, blogID, userID string) (int, error) {
	tx, err := l.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: starting like toggle: %w", err)
	}
	// Rollback is a no-op after Commit — safe to defer unconditionally.
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT likes_count FROM blogs WHERE id = ?`, blogID,
	).Scan(&count)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, apperror.NotFound("blog", blogID)
		}
		return 0, fmt.Errorf("sqlite: reading likes_count for blog %s: %w", blogID, err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE blog_id = ? AND user_id = ?`,
		blogID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: removing like: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	if removed > 0 {
		// Was liked → now not liked.
		count--
	} else {
		// Was not liked → insert the row. The UNIQUE index would reject a
		// duplicate, but inside this transaction the DELETE above already
		// proved no row exists.
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO likes (id, blog_id, user_id) VALUES (?, ?, ?)`,
			xid.New().String(), blogID, userID,
		); err != nil {
			return 0, fmt.Errorf("sqlite: inserting like: %w", err)
		}
		count++
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE blogs SET likes_count = ? WHERE id = ?`,
		count, blogID,
	); err != nil {
		return 0, fmt.Errorf("sqlite: updating likes_count for blog %s: %w", blogID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing like toggle: %w", err)
	}

	return count, nil
}

// CountByBlog returns the number of Like rows for a blog. Used by tests and
// by anyone who needs the ground truth rather than the denormalised
// likes_count column.
func (l *LikeDB) CountByBlog(ctx context.Context, blogID string) (int, error) {
	var count int
	err := l.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE blog_id = ?`, blogID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting likes for blog %s: %w", blogID, err)
	}
	return count, nil
}
