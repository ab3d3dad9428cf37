package scream

import (
	"net/http"

	"Screams/internal/api/handlers"
	"Screams/internal/core/screams"
)

// LikeHandler handles liking and unliking screams
type LikeHandler struct {
	service screams.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service screams.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleLike likes the scream as the authenticated caller
// GET|POST /scream/{screamId}/like
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	author, ok := requireAuthor(w, r)
	if !ok {
		return
	}

	scream, err := h.service.LikeScream(r.Context(), author, screamIDParam(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, scream)
}

// HandleUnlike removes the authenticated caller's like
// GET|POST /scream/{screamId}/unlike
func (h *LikeHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	author, ok := requireAuthor(w, r)
	if !ok {
		return
	}

	scream, err := h.service.UnlikeScream(r.Context(), author, screamIDParam(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, scream)
}
