package scream

import (
	"errors"
	"log/slog"
	"net/http"

	"Screams/internal/api/handlers"
	"Screams/internal/core/screams"
)

// handleServiceError converts service errors to appropriate HTTP responses
// Error names are UpperCamelCase and stable; raw store errors never reach the client
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *screams.ValidationError

	switch {
	case errors.As(err, &valErr):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Error())
	case errors.Is(err, screams.ErrScreamNotFound):
		handlers.WriteError(w, http.StatusNotFound, "ScreamNotFound", "Scream not found")
	case errors.Is(err, screams.ErrAlreadyLiked):
		handlers.WriteError(w, http.StatusBadRequest, "AlreadyLiked", "Scream already liked")
	case errors.Is(err, screams.ErrNotLiked):
		handlers.WriteError(w, http.StatusBadRequest, "NotLiked", "Scream not liked")
	case errors.Is(err, screams.ErrNotAuthorized):
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Unauthorized")
	default:
		// Internal server error - log the actual error for debugging
		slog.Error("scream handler error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Something went wrong, please try again")
	}
}
