package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors here instead of at some
// distant call site.
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB implements repository.UserRepository on the shared pool.
type UserDB struct {
	conn *sql.DB
}

// Create inserts a new user.
//
// The email carries a UNIQUE constraint, so a duplicate registration
// surfaces as a constraint violation — we translate it to
// apperror.Conflict so the handler can answer 409 instead of 500.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", "email "+user.Email)
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Email, err)
	}

	return nil
}

// GetByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (u *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.getBy(ctx, "id", id)
}

// GetByEmail retrieves a user by email — the lookup the authorization guard
// performs on every protected request, since the JWT subject is the email.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.getBy(ctx, "email", email)
}

func (u *UserDB) getBy(ctx context.Context, column, value string) (*model.User, error) {
	var user model.User

	// The column name is one of two compile-time constants, never user
	// input, so interpolating it is safe. The value goes through a
	// placeholder as always.
	err := u.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash, is_active, created_at, updated_at
		 FROM users WHERE `+column+` = ?`,
		value,
	).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", value)
		}
		return nil, fmt.Errorf("sqlite: getting user by %s %s: %w", column, value, err)
	}

	return &user, nil
}

// UpsertByEmail inserts the user, or — when the email is already registered —
// loads the existing row into the struct and bumps updated_at. The OAuth
// sign-in path calls this so a returning GitHub user keeps their account.
func (u *UserDB) UpsertByEmail(ctx context.Context, user *model.User) error {
	existing, err := u.GetByEmail(ctx, user.Email)
	if err == nil {
		*user = *existing
		user.UpdatedAt = time.Now()
		if _, err := u.conn.ExecContext(ctx,
			`UPDATE users SET updated_at = ? WHERE id = ?`,
			user.UpdatedAt, user.ID,
		); err != nil {
			return fmt.Errorf("sqlite: refreshing user %s: %w", user.ID, err)
		}
		return nil
	}
	if !isNotFound(err) {
		return err
	}

	return u.Create(ctx, user)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrNotFound)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
// The modernc driver doesn't export a typed error for this, so we match the
// error text — ugly, but the standard approach with this driver.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
