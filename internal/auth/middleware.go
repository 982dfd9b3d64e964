package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string,
// ANY package that knows the string can read or shadow your value. A
// package-private type means only this package can read or write the
// current user in the context.
type contextKey string

const currentUserKey contextKey = "currentUser"

// RequireAuth is the authorization guard for protected routes.
//
// On every request it:
//  1. Extracts the bearer token — "Authorization: Bearer <jwt>" header, or
//     the "token" cookie set by the GitHub OAuth flow
//  2. Validates signature and expiry
//  3. Loads the User by the email in the token's Subject claim
//  4. Stores the user in the request context for handlers
//
// The request is rejected with 401 when the token is absent, invalid, or
// expired, when no user matches the embedded email, or when the account is
// deactivated. The DB lookup happens per-request: a token issued before a
// user was removed or deactivated stops working immediately.
func RequireAuth(tokens *TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveUser(r, tokens, users)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser retrieves the authenticated user from the request context.
//
// Returns (nil, false) if the request is anonymous. On routes behind
// RequireAuth it always returns (user, true).
func CurrentUser(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok && user != nil
}

// resolveUser extracts and validates the bearer token, then loads the user
// record it identifies.
func resolveUser(r *http.Request, tokens *TokenService, users repository.UserRepository) (*model.User, error) {
	tokenStr, err := extractToken(r)
	if err != nil {
		return nil, err
	}

	email, err := tokens.Validate(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByEmail(r.Context(), email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errDeactivated
	}

	return user, nil
}

var (
	errDeactivated     = errors.New("auth: account is deactivated")
	errMalformedHeader = errors.New("auth: malformed Authorization header")
)

// extractToken finds the JWT on the request.
//
// API clients send "Authorization: Bearer <jwt>". Browsers that signed in
// via the GitHub OAuth flow carry the "token" HttpOnly cookie instead, so
// we fall back to it when the header is absent.
func extractToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", errMalformedHeader
		}
		return strings.TrimSpace(token), nil
	}

	cookie, err := r.Cookie("token")
	if err != nil {
		// http.ErrNoCookie — no credential on this request at all
		return "", err
	}
	return cookie.Value, nil
}
