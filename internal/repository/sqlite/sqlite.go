// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a
// single file. No separate database server to install, configure, or
// manage. Great for single-server deployments, and ":memory:" gives tests a
// fresh, throwaway database.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// BLANK IMPORT:
	// A "side-effect only" import. The sqlite package's init() registers
	// itself with database/sql as a driver named "sqlite"; after this,
	// sql.Open("sqlite", ...) knows how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-entity repositories (Users,
// Blogs, Comments, Likes) share this pool; DB owns its lifecycle.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and creates the schema.
//
// dbPath examples:
//   - "data/blog.db"  → file-based database (persistent)
//   - ":memory:"      → in-memory database (tests, lost on close)
//
// sql.Open does NOT actually connect — it creates a pool manager. We Ping
// immediately so a bad path or permissions problem surfaces here rather
// than on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection: if the pool opened a
	// second connection, it would see a brand-new empty schema. Pin the
	// pool to a single connection for ":memory:" databases.
	if strings.Contains(dbPath, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress —
	// important for a web server where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (backwards compatibility).
	// We rely on them: comments/likes reference blogs with ON DELETE
	// CASCADE, so deleting a blog removes its comments and likes.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Callers should defer this
// right after New() so the file lock is released even on panic.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this database.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Blogs returns the blog repository backed by this database.
func (db *DB) Blogs() *BlogDB { return &BlogDB{conn: db.conn} }

// Comments returns the comment repository backed by this database.
func (db *DB) Comments() *CommentDB { return &CommentDB{conn: db.conn} }

// Likes returns the like repository backed by this database.
func (db *DB) Likes() *LikeDB { return &LikeDB{conn: db.conn} }

// migrate creates the schema idempotently at startup. CREATE TABLE IF NOT
// EXISTS is safe to run on every boot; for a schema this size a full
// migrations system (golang-migrate) would be overkill.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			is_active     INTEGER NOT NULL DEFAULT 1,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS blogs (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			content     TEXT NOT NULL DEFAULT '',
			author_id   TEXT NOT NULL REFERENCES users(id),
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			likes_count INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_blogs_author_id ON blogs(author_id);
	`)
	if err != nil {
		return fmt.Errorf("creating blogs table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			blog_id    TEXT NOT NULL REFERENCES blogs(id) ON DELETE CASCADE,
			author_id  TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_blog_id ON comments(blog_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	// UNIQUE(blog_id, user_id) is the storage-level guarantee that a user
	// can like a blog at most once. The toggle logic never has to reason
	// about duplicate rows.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS likes (
			id      TEXT PRIMARY KEY,
			blog_id TEXT NOT NULL REFERENCES blogs(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id),
			UNIQUE (blog_id, user_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating likes table: %w", err)
	}

	return nil
}
