package scream

import (
	"net/http"

	"Screams/internal/api/handlers"
	"Screams/internal/core/screams"
)

// CommentHandler handles commenting on a scream
type CommentHandler struct {
	service screams.Service
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service screams.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// HandleComment adds a comment as the authenticated caller
// POST /scream/{screamId}/comment
//
// Request body: { "body": "..." }
func (h *CommentHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	author, ok := requireAuthor(w, r)
	if !ok {
		return
	}

	var req screams.CreateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.service.CommentOnScream(r.Context(), author, screamIDParam(r), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, comment)
}
