package scream

import (
	"net/http"

	"Screams/internal/api/handlers"
	"Screams/internal/core/screams"
)

// GetHandler handles fetching a single scream with its comments
type GetHandler struct {
	service screams.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service screams.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet returns the scream and its comments, newest first
// GET /scream/{screamId}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetScream(r.Context(), screamIDParam(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
