// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services accept primitives and domain types, never *http.Request, and
// return domain errors (apperror), never HTTP status codes. That keeps them
// callable from any transport and testable with plain function calls.
//
// Services receive repository INTERFACES, not the concrete sqlite types —
// tests inject in-memory mocks, and the storage backend can be swapped in
// main.go without touching this package.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/auth"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

const (
	MinPasswordLength = 8
	MaxEmailLength    = 254
)

// AuthService handles registration and credential-based login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued JWT so the handler can
// set the cookie / write the token response in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account from an email and password.
//
// The email is normalised (trimmed, lowercased) before the uniqueness check
// so "A@x.com" and "a@x.com" are the same account. A duplicate registration
// surfaces as apperror.Conflict from the repository.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", "password must be 72 bytes or fewer")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("registering user %s: %w", email, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login verifies credentials and issues a bearer token.
//
// WHY ONE GENERIC ERROR?
// Unknown email and wrong password both return the same Unauthorized error.
// Distinguishing them would let an attacker probe which emails are
// registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("account is deactivated")
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issuing token for %s: %w", user.Email, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}

// LoginOrRegisterGitHub signs in a user via their GitHub profile.
//
// First OAuth login creates the account (with no password — password login
// stays impossible for it); subsequent logins reuse the account keyed by
// email. Either way a fresh JWT is issued.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*AuthResult, error) {
	if ghUser == nil {
		return nil, fmt.Errorf("service/auth: GitHub user must not be nil")
	}

	user := &model.User{
		Email:    normalizeEmail(ghUser.Email),
		IsActive: true,
	}
	if err := s.users.UpsertByEmail(ctx, user); err != nil {
		return nil, fmt.Errorf("upserting GitHub user %s: %w", ghUser.Login, err)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("account is deactivated")
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issuing token for %s: %w", user.Email, err)
	}

	s.logger.Info("user authenticated via GitHub",
		slog.String("userID", user.ID),
		slog.String("login", ghUser.Login),
	)

	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmail does a sanity check, not RFC 5322 enforcement — the mail
// server is the real validator. We just reject obvious garbage early.
func validateEmail(email string) error {
	if email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if len(email) > MaxEmailLength {
		return apperror.ValidationFailed("email",
			fmt.Sprintf("email must be %d characters or less", MaxEmailLength))
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperror.ValidationFailed("email", "invalid email format")
	}
	return nil
}
