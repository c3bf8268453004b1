package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/smartchef/internal/apperr"
	"github.com/starford/smartchef/internal/chef"
	"github.com/starford/smartchef/internal/models"
)

const maxBodyBytes = 10 << 20

// RecipeGenerator produces recipes from ingredients.
type RecipeGenerator interface {
	Create(ctx context.Context, req chef.Request) (*chef.Result, error)
	Quick(ctx context.Context, ingredients []string, cuisine string) (*chef.QuickResult, error)
}

// RecipeStore reads saved recipes.
type RecipeStore interface {
	Load(ctx context.Context, name string) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

// Handler groups HTTP handlers for the recipe API.
type Handler struct {
	chef  RecipeGenerator
	store RecipeStore
}

// NewHandler creates a Handler.
func NewHandler(chef RecipeGenerator, store RecipeStore) *Handler {
	return &Handler{chef: chef, store: store}
}

// GenerateRecipe handles POST /api/generate-recipe.
//
//	@Summary		Generate and save a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		GenerateRecipeRequest	true	"Ingredients and cuisine"
//	@Success		200		{object}	GenerateRecipeResponse
//	@Failure		400		{object}	errResponse
//	@Failure		500		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/generate-recipe [post]
func (h *Handler) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req GenerateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	result, err := h.chef.Create(r.Context(), req)
	if errors.Is(err, apperr.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err != nil {
		slog.Error("generate recipe failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// QuickRecipe handles POST /api/quick-recipe.
//
//	@Summary		Generate a recipe without saving it
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		QuickRecipeRequest	true	"Ingredients and cuisine"
//	@Success		200		{object}	QuickRecipeResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/quick-recipe [post]
func (h *Handler) QuickRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req QuickRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if len(req.Ingredients) == 0 || strings.TrimSpace(req.CuisineType) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("ingredients and cuisine_type are required"))
		return
	}

	result, err := h.chef.Quick(r.Context(), req.Ingredients, req.CuisineType)
	if errors.Is(err, apperr.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err != nil {
		slog.Error("quick recipe failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RecipeHistory handles GET /api/recipe-history.
//
//	@Summary		List saved recipes, newest first
//	@Tags			recipes
//	@Produce		json
//	@Success		200	{array}		HistoryItem
//	@Failure		500	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipe-history [get]
func (h *Handler) RecipeHistory(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("list recipes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]HistoryItem, 0, len(recipes))
	for _, rec := range recipes {
		items = append(items, historyItem(rec))
	}
	writeJSON(w, http.StatusOK, items)
}

// GetRecipe handles GET /api/recipes/{name}.
//
//	@Summary		Load the latest version of a recipe by name
//	@Tags			recipes
//	@Produce		json
//	@Param			name	path		string	true	"Recipe name"
//	@Success		200		{object}	RecipeDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/{name} [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}

	rec, err := h.store.Load(r.Context(), name)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	case err != nil:
		slog.Error("load recipe failed", slog.String("name", name), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Search handles GET /api/search.
//
//	@Summary		Search saved recipes
//	@Tags			search
//	@Produce		json
//	@Param			q	query		string	true	"Search query"
//	@Success		200	{object}	SearchResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	results, err := h.store.Search(r.Context(), q)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []models.Recipe{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
