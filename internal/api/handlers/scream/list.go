package scream

import (
	"net/http"

	"Screams/internal/api/handlers"
	"Screams/internal/core/screams"
)

// ListHandler handles listing the feed
type ListHandler struct {
	service screams.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service screams.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList returns every scream, newest first
// GET /screams
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListScreams(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
