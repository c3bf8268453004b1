// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes SmartChef tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/smartchef/internal/chef"
	"github.com/starford/smartchef/internal/models"
)

// Cook is the generation side of the server.
type Cook interface {
	Create(ctx context.Context, req chef.Request) (*chef.Result, error)
	SuggestAlternatives(ctx context.Context, ingredients []string, cuisine string) (string, error)
	ScaleRecipe(ctx context.Context, recipe string, servings int) (string, error)
}

// Store is the persistence side of the server.
type Store interface {
	Save(ctx context.Context, body, name string, tags []string) (string, error)
	Load(ctx context.Context, name string) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

// Server wraps the MCP server with SmartChef tools.
type Server struct {
	mcp   *server.MCPServer
	cook  Cook
	store Store
}

// New creates a new MCP server with all SmartChef tools registered.
func New(cook Cook, store Store) *Server {
	s := &Server{cook: cook, store: store}

	s.mcp = server.NewMCPServer(
		"SmartChef",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("generate_recipe",
		mcp.WithDescription("Generate a recipe from the available ingredients, attach an image, and save it. "+
			"Falls back to a canned recipe when the text model is unavailable."),
		mcp.WithString("ingredients", mcp.Required(), mcp.Description("Comma-separated ingredient list")),
		mcp.WithString("cuisine_type", mcp.Required(), mcp.Description("Cuisine, e.g. 中餐, 西餐, 日式")),
		mcp.WithString("special_requirements", mcp.Description("Optional dietary or taste requirements")),
	), s.generateRecipe)

	s.mcp.AddTool(mcp.NewTool("suggest_alternatives",
		mcp.WithDescription("Suggest substitutes for traditional ingredients of a cuisine that are missing from the list."),
		mcp.WithArray("ingredients", mcp.Required(), mcp.Items(map[string]any{"type": "string"}), mcp.Description("Available ingredients")),
		mcp.WithString("cuisine_type", mcp.Required(), mcp.Description("Target cuisine")),
	), s.suggestAlternatives)

	s.mcp.AddTool(mcp.NewTool("scale_recipe",
		mcp.WithDescription("Adjust a recipe's quantities and timings to a number of servings."),
		mcp.WithString("recipe", mcp.Required(), mcp.Description("Recipe Markdown")),
		mcp.WithNumber("servings", mcp.Required(), mcp.Description("Number of servings (positive)")),
	), s.scaleRecipe)

	s.mcp.AddTool(mcp.NewTool("save_recipe",
		mcp.WithDescription("Save a recipe body. The store writes the front matter; "+
			"read the smartchef://recipe-format resource for the expected body layout."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Recipe name")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Recipe Markdown body")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Optional tags")),
	), s.saveRecipe)

	s.mcp.AddTool(mcp.NewTool("load_recipe",
		mcp.WithDescription("Load the latest saved version of a recipe by name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Recipe name")),
	), s.loadRecipe)

	s.mcp.AddTool(mcp.NewTool("list_recipes",
		mcp.WithDescription("List saved recipes, newest first."),
	), s.listRecipes)

	s.mcp.AddTool(mcp.NewTool("search_recipes",
		mcp.WithDescription("Find up to five saved recipes relevant to a query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchRecipes)

	s.mcp.AddResource(
		mcp.NewResource(RecipeFormatURI, "Recipe Format",
			mcp.WithResourceDescription("Markdown layout that recipe bodies should follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecipeFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) generateRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ingredients, err := req.RequireString("ingredients")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cuisine, err := req.RequireString("cuisine_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.cook.Create(ctx, chef.Request{
		Ingredients:         ingredients,
		CuisineType:         cuisine,
		SpecialRequirements: req.GetString("special_requirements", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) suggestAlternatives(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ingredients := stringSlice(req, "ingredients")
	if len(ingredients) == 0 {
		return mcp.NewToolResultError("required argument \"ingredients\" not found"), nil
	}
	cuisine, err := req.RequireString("cuisine_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.cook.SuggestAlternatives(ctx, ingredients, cuisine)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) scaleRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipe, err := req.RequireString("recipe")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	servings, err := req.RequireInt("servings")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.cook.ScaleRecipe(ctx, recipe, servings)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) saveRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := s.store.Save(ctx, content, name, stringSlice(req, "tags"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", path)), nil
}

func (s *Server) loadRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.store.Load(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
	}
	return mcp.NewToolResultText(rec.Body), nil
}

func (s *Server) listRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipes, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(recipes) == 0 {
		return mcp.NewToolResultText("no recipes saved"), nil
	}
	lines := make([]string, 0, len(recipes))
	for _, r := range recipes {
		lines = append(lines, r.Name+"\t"+r.Filename)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) searchRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.store.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) readRecipeFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      RecipeFormatURI,
			MIMEType: "text/markdown",
			Text:     RecipeFormatContract,
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// stringSlice reads an array argument, skipping non-string items.
func stringSlice(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
