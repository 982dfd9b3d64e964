package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/blog-api/internal/auth"
	"github.com/sakif/blog-api/internal/service"
)

// BlogHandler exposes CRUD for blog posts plus the like toggle.
//
// The handler only parses HTTP and formats responses — every business rule
// (validation, ownership, pagination clamps) lives in BlogService, so it
// applies no matter what transport calls it.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

// blogRequest is the body for create and update requests. Both operations
// take the full set of mutable fields, matching PUT semantics: the update
// overwrites title and content wholesale.
type blogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandleCreate saves a new blog owned by the authenticated user.
//
// HTTP: POST /blogs
// Auth: required
// BODY: {"title": "T", "content": "C"}
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Create(r.Context(), req.Title, req.Content, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

// HandleList returns a page of blogs. Public — no auth.
//
// HTTP: GET /blogs?skip=0&limit=20
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)

	blogs, err := h.blogs.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

// HandleGet fetches one blog. Public — no auth.
//
// HTTP: GET /blogs/{id}
func (h *BlogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleUpdate overwrites a blog's title and content.
//
// HTTP: PUT /blogs/{id}
// Auth: required; 404 if absent, 403 if the caller isn't the author.
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.Content, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleDelete removes a blog (and, via cascade, its comments and likes).
//
// HTTP: DELETE /blogs/{id}
// Auth: required; same 404/403 rules as update.
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	if err := h.blogs.Delete(r.Context(), chi.URLParam(r, "id"), user); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "blog deleted successfully"})
}

// HandleToggleLike flips the caller's like on a blog.
//
// HTTP: PUT /blogs/{id}/like
// Auth: required
// RESPONSE: {"likes_count": n} — the post-transition count.
func (h *BlogHandler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	count, err := h.blogs.ToggleLike(r.Context(), chi.URLParam(r, "id"), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"likes_count": count})
}

// pageParams reads the skip/limit query parameters. Unparseable or missing
// values fall back to zero — the service applies defaults and clamps.
func pageParams(r *http.Request) (skip, limit int) {
	skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return skip, limit
}
