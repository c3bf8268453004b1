package api

import (
	"github.com/starford/smartchef/internal/chef"
	"github.com/starford/smartchef/internal/models"
)

// GenerateRecipeRequest is the request body for a full recipe generation.
type GenerateRecipeRequest = chef.Request

// GenerateRecipeResponse is the generated recipe with its extracted sections.
type GenerateRecipeResponse = chef.Result

// QuickRecipeRequest is the request body for the minimal, unsaved generation.
type QuickRecipeRequest struct {
	Ingredients []string `json:"ingredients" example:"鸡蛋,番茄" validate:"required"`
	CuisineType string   `json:"cuisine_type" example:"中餐" validate:"required"`
}

// QuickRecipeResponse is the minimal generation result.
type QuickRecipeResponse = chef.QuickResult

// HistoryItem is one saved recipe in the history listing.
type HistoryItem struct {
	Filename  string   `json:"filename" example:"番茄炒蛋_20240101_120000.md" validate:"required"`
	Name      string   `json:"name" example:"番茄炒蛋" validate:"required"`
	CreatedAt string   `json:"created_at" example:"20240101_120000"`
	Tags      []string `json:"tags" validate:"required"`
	Excerpt   string   `json:"excerpt" validate:"required"`
}

// RecipeDetail is a single loaded recipe.
type RecipeDetail = models.Recipe

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []models.Recipe `json:"results" validate:"required"`
}

const excerptRunes = 200

func historyItem(r models.Recipe) HistoryItem {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return HistoryItem{
		Filename:  r.Filename,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		Tags:      tags,
		Excerpt:   excerpt(r.Body),
	}
}

func excerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= excerptRunes {
		return body
	}
	return string(runes[:excerptRunes]) + "..."
}
