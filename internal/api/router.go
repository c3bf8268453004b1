package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(chef RecipeGenerator, store RecipeStore, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(chef, store)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Generation.
	r.Post("/generate-recipe", h.GenerateRecipe)
	r.Post("/quick-recipe", h.QuickRecipe)

	// Saved recipes.
	r.Get("/recipe-history", h.RecipeHistory)
	r.Get("/recipes/{name}", h.GetRecipe)
	r.Get("/search", h.Search)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
