// Package server sets up the HTTP server, router, and all route
// definitions.
//
// This package is the "wiring" layer — the composition root where the
// dependency chain is assembled in one place:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Keeping it out of main.go makes the server testable (tests can build a
// router without running main) while main.go stays minimal.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/blog-api/internal/auth"
	"github.com/sakif/blog-api/internal/handler"
	"github.com/sakif/blog-api/internal/middleware"
	sqliteRepo "github.com/sakif/blog-api/internal/repository/sqlite"
	"github.com/sakif/blog-api/internal/service"
)

// Config holds server configuration. A struct (rather than positional
// parameters) means new options don't ripple through function signatures.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	// GitHub OAuth — optional. When ClientID is empty the OAuth routes are
	// not registered and the API runs with password auth only.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server, wiring the full dependency chain. Each layer only
// receives what it needs: services get repository interfaces, handlers get
// services — nothing below the repository knows SQL exists.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router — used by httptest-based tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                     → welcome message (liveness)
//	POST   /auth/register        → create account
//	POST   /auth/token           → issue bearer token
//	POST   /auth/logout          → clear token cookie
//	GET    /auth/github/login    → OAuth redirect        (if configured)
//	GET    /auth/github/callback → OAuth callback        (if configured)
//	GET    /api/me               → current user          (auth)
//	GET    /blogs                → paged list
//	POST   /blogs                → create blog           (auth)
//	GET    /blogs/{id}           → fetch one
//	PUT    /blogs/{id}           → update                (auth, owner)
//	DELETE /blogs/{id}           → delete                (auth, owner)
//	GET    /blogs/{id}/comments  → list comments
//	POST   /blogs/{id}/comments  → create comment        (auth)
//	PUT    /blogs/{id}/like      → toggle like           (auth)
//
// MIDDLEWARE ORDER MATTERS — RequestID and RealIP first so the logger sees
// them, Recoverer so a panicking handler becomes a 500 instead of a crash,
// StripSlashes so "/blogs/" and "/blogs" are the same route.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.StripSlashes)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	users := s.db.Users()
	blogs := s.db.Blogs()
	comments := s.db.Comments()
	likes := s.db.Likes()

	authService := service.NewAuthService(users, tokens, passwords, s.logger)
	blogService := service.NewBlogService(blogs, likes, s.logger)
	commentService := service.NewCommentService(comments, blogs, s.logger)

	var github *auth.GitHubProvider
	if s.config.GitHubClientID != "" {
		github = auth.NewGitHubProvider(
			s.config.GitHubClientID,
			s.config.GitHubClientSecret,
			s.config.GitHubCallbackURL,
		)
	}

	authHandler := handler.NewAuthHandler(authService, github, s.logger)
	blogHandler := handler.NewBlogHandler(blogService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, s.logger)

	requireAuth := auth.RequireAuth(tokens, users)

	// Liveness/welcome.
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Welcome to the blog API"}`))
	})

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/token", authHandler.HandleToken)
		r.Post("/logout", authHandler.HandleLogout)

		if github != nil {
			r.Get("/github/login", authHandler.HandleGitHubLogin)
			r.Get("/github/callback", authHandler.HandleGitHubCallback)
		}
	})

	s.router.Route("/api", func(r chi.Router) {
		r.With(requireAuth).Get("/me", authHandler.HandleMe)
	})

	s.router.Route("/blogs", func(r chi.Router) {
		// Public reads.
		r.Get("/", blogHandler.HandleList)
		r.Get("/{id}", blogHandler.HandleGet)
		r.Get("/{id}/comments", commentHandler.HandleList)

		// Mutations require a resolved user.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", blogHandler.HandleCreate)
			r.Put("/{id}", blogHandler.HandleUpdate)
			r.Delete("/{id}", blogHandler.HandleDelete)
			r.Post("/{id}/comments", commentHandler.HandleCreate)
			r.Put("/{id}/like", blogHandler.HandleToggleLike)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully:
//  1. Stop accepting new connections
//  2. Wait up to 30s for in-flight requests
//  3. Close the database (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
