package routes

import (
	"github.com/go-chi/chi/v5"

	"Screams/internal/api/handlers/scream"
	"Screams/internal/api/middleware"
	"Screams/internal/core/screams"
)

// RegisterScreamRoutes registers the feed endpoints on the router
// Reads are public; every write requires a bearer token
func RegisterScreamRoutes(r chi.Router, service screams.Service, authMiddleware *middleware.AuthMiddleware) {
	listHandler := scream.NewListHandler(service)
	createHandler := scream.NewCreateHandler(service)
	getHandler := scream.NewGetHandler(service)
	commentHandler := scream.NewCommentHandler(service)
	likeHandler := scream.NewLikeHandler(service)
	deleteHandler := scream.NewDeleteHandler(service)

	// Public reads
	r.Get("/screams", listHandler.HandleList)
	r.Get("/scream/{screamId}", getHandler.HandleGet)

	// Authenticated writes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/scream", createHandler.HandleCreate)
		r.Post("/scream/{screamId}/comment", commentHandler.HandleComment)
		r.Delete("/scream/{screamId}", deleteHandler.HandleDelete)

		// Like and unlike accept GET as well as POST for older clients
		r.Get("/scream/{screamId}/like", likeHandler.HandleLike)
		r.Post("/scream/{screamId}/like", likeHandler.HandleLike)
		r.Get("/scream/{screamId}/unlike", likeHandler.HandleUnlike)
		r.Post("/scream/{screamId}/unlike", likeHandler.HandleUnlike)
	})
}
