package scream

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"Screams/internal/api/handlers"
	"Screams/internal/api/middleware"
	"Screams/internal/core/screams"
)

// maxRequestBody caps JSON request bodies
const maxRequestBody = 100 * 1024

// decodeBody reads a JSON request body into dst
// Writes a 400 and returns false if the body is oversized or malformed
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Request body too large")
			return false
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}

// requireAuthor returns the caller injected by the auth middleware
// Writes a 401 and returns false if there is none
func requireAuthor(w http.ResponseWriter, r *http.Request) (screams.Author, bool) {
	author := middleware.GetAuthor(r)
	if author.Handle == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return author, false
	}
	return author, true
}

// screamIDParam reads the {screamId} path parameter
func screamIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "screamId"))
}
