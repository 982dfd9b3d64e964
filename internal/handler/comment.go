package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/blog-api/internal/auth"
	"github.com/sakif/blog-api/internal/service"
)

// CommentHandler exposes comment creation and listing under a blog.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

type commentRequest struct {
	Content string `json:"content"`
}

// HandleCreate attaches a comment to a blog.
//
// HTTP: POST /blogs/{id}/comments
// Auth: required; 404 if the blog is absent.
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return
	}

	comment, err := h.comments.Create(r.Context(), chi.URLParam(r, "id"), req.Content, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// HandleList returns a page of a blog's comments, oldest first. Public.
//
// HTTP: GET /blogs/{id}/comments?skip=0&limit=20
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)

	comments, err := h.comments.ListByBlog(r.Context(), chi.URLParam(r, "id"), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}
