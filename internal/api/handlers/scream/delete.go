package scream

import (
	"net/http"

	"Screams/internal/api/handlers"
	"Screams/internal/core/screams"
)

// DeleteHandler handles scream deletion
type DeleteHandler struct {
	service screams.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service screams.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete removes a scream owned by the authenticated caller
// DELETE /scream/{screamId}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	author, ok := requireAuthor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteScream(r.Context(), author, screamIDParam(r)); err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, screams.DeletedResponse())
}
