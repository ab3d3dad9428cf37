package scream

import (
	"net/http"

	"Screams/internal/api/handlers"
	"Screams/internal/core/screams"
)

// CreateHandler handles scream creation
type CreateHandler struct {
	service screams.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service screams.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate posts a new scream as the authenticated caller
// POST /scream
//
// Request body: { "body": "..." }
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	author, ok := requireAuthor(w, r)
	if !ok {
		return
	}

	var req screams.CreateScreamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scream, err := h.service.CreateScream(r.Context(), author, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, scream)
}
