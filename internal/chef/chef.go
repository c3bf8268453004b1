// Package chef turns ingredients into saved recipes: it builds the prompt,
// calls the text generator, falls back to canned recipes on failure, and
// persists the result with an illustrative image.
package chef

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/smartchef/internal/apperr"
	"github.com/starford/smartchef/internal/imagegen"
	"github.com/starford/smartchef/internal/llm"
	"github.com/starford/smartchef/internal/parser"
)

// DefaultTag marks generated recipes.
const DefaultTag = "AI生成"

// Saver persists a recipe body and returns the written path.
type Saver interface {
	Save(ctx context.Context, body, name string, tags []string) (string, error)
}

// Request is the input of a recipe generation.
type Request struct {
	Ingredients         string `json:"ingredients"`
	CuisineType         string `json:"cuisine_type"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
}

// Validate checks the required fields.
func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Ingredients, validation.Required),
		validation.Field(&r.CuisineType, validation.Required),
	)
}

// Result is a generated, saved recipe with its extracted sections.
type Result struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tips        []string `json:"tips"`
	PrepTime    string   `json:"prepTime"`
	CookTime    string   `json:"cookTime"`
	ImageURL    string   `json:"imageUrl"`
	Markdown    string   `json:"markdown"`
	SavedFile   string   `json:"savedFile"`
	Fallback    bool     `json:"-"`
}

// QuickResult is the output of the minimal, unsaved generation.
type QuickResult struct {
	Recipe   string `json:"recipe"`
	ImageURL string `json:"image_url"`
}

// Chef wires generation, images, and storage together.
type Chef struct {
	text   llm.TextGenerator
	images imagegen.ImageGenerator
	store  Saver
	logger *slog.Logger
}

// New creates a Chef. A nil logger discards output.
func New(text llm.TextGenerator, images imagegen.ImageGenerator, store Saver, logger *slog.Logger) *Chef {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Chef{text: text, images: images, store: store, logger: logger}
}

// BuildPrompt asks for a Markdown recipe using the headings the section
// extractor understands.
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请根据以下食材创建一个详细的%s食谱:\n\n", req.CuisineType)
	fmt.Fprintf(&b, "可用食材: %s\n\n", req.Ingredients)
	if req.SpecialRequirements != "" {
		fmt.Fprintf(&b, "特殊要求: %s\n\n", req.SpecialRequirements)
	}
	b.WriteString("请提供:\n")
	b.WriteString("1. 有创意的菜名\n")
	b.WriteString("2. 详细的食材清单(包括数量)\n")
	b.WriteString("3. 准备和烹饪的详细步骤\n")
	b.WriteString("4. 烹饪技巧和窍门\n")
	b.WriteString("5. 预计准备和烹饪时间\n\n")
	fmt.Fprintf(&b, "请使用Markdown格式，并确保食谱符合%s的风格。", req.CuisineType)
	return b.String()
}

// Generate returns the generated recipe body. Generation failures and blank
// output are logged and replaced by the fallback table; the second return
// value reports whether that happened.
func (c *Chef) Generate(ctx context.Context, req Request) (string, bool) {
	body, err := c.text.Generate(ctx, BuildPrompt(req))
	if err == nil && strings.TrimSpace(body) != "" {
		return body, false
	}
	if err == nil {
		err = errors.New("empty output")
	}
	c.logger.Warn("recipe generation failed, using fallback",
		slog.String("cuisine", req.CuisineType),
		slog.String("error", err.Error()))
	return FallbackRecipe(req.Ingredients, req.CuisineType), true
}

// Create generates a recipe, attaches an image, saves it, and returns the
// structured result.
func (c *Chef) Create(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("chef: %w: %w", apperr.ErrInvalidInput, err)
	}

	markdown, fallback := c.Generate(ctx, req)
	name := parser.Name(markdown)
	imageURL := c.imageURL(ctx, name)

	saved := markdown + fmt.Sprintf("\n\n![%s](%s)\n", name, imageURL)
	path, err := c.store.Save(ctx, saved, name, []string{DefaultTag})
	if err != nil {
		return nil, fmt.Errorf("chef: %w", err)
	}

	sections := parser.Extract(markdown)
	c.logger.Info("recipe created",
		slog.String("name", name),
		slog.String("file", path),
		slog.Bool("fallback", fallback))

	return &Result{
		Name:        name,
		Ingredients: sections.Ingredients,
		Steps:       sections.Steps,
		Tips:        sections.Tips,
		PrepTime:    sections.PrepTime,
		CookTime:    sections.CookTime,
		ImageURL:    imageURL,
		Markdown:    markdown,
		SavedFile:   path,
		Fallback:    fallback,
	}, nil
}

// Quick generates a recipe from an ingredient list without saving it.
func (c *Chef) Quick(ctx context.Context, ingredients []string, cuisine string) (*QuickResult, error) {
	if len(ingredients) == 0 || cuisine == "" {
		return nil, fmt.Errorf("chef: quick: ingredients and cuisine are required: %w", apperr.ErrInvalidInput)
	}
	req := Request{Ingredients: strings.Join(ingredients, ", "), CuisineType: cuisine}
	recipe, _ := c.Generate(ctx, req)
	keywords := append([]string{cuisine}, ingredients...)
	return &QuickResult{
		Recipe:   recipe,
		ImageURL: imagegen.Unsplash{}.URL(keywords...),
	}, nil
}

// SuggestAlternatives asks which traditional ingredients of the cuisine are
// missing and what can replace them. Errors are returned as-is; there is no
// canned fallback.
func (c *Chef) SuggestAlternatives(ctx context.Context, ingredients []string, cuisine string) (string, error) {
	if len(ingredients) == 0 || cuisine == "" {
		return "", fmt.Errorf("chef: alternatives: ingredients and cuisine are required: %w", apperr.ErrInvalidInput)
	}
	prompt := fmt.Sprintf(`我有以下食材: %s

我想做%s菜系的料理,但可能缺少一些传统食材。
请为我提供可能缺少的关键食材,以及我可以用手边的食材进行替代的方案。

请列出:
1. 可能缺少的2-3种关键食材
2. 每种缺少食材的2-3个可能替代品
3. 使用替代品时需要注意的事项`, strings.Join(ingredients, ", "), cuisine)

	out, err := c.text.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chef: alternatives: %w", err)
	}
	return out, nil
}

// ScaleRecipe asks for the recipe adjusted to the given number of servings.
func (c *Chef) ScaleRecipe(ctx context.Context, recipe string, servings int) (string, error) {
	if strings.TrimSpace(recipe) == "" || servings <= 0 {
		return "", fmt.Errorf("chef: scale: recipe and positive servings are required: %w", apperr.ErrInvalidInput)
	}
	prompt := fmt.Sprintf(`请将以下食谱调整为%d人份:

%s

请提供:
1. 调整后的食材清单(包括准确的数量)
2. 如果需要,调整烹饪时间或方法的建议`, servings, recipe)

	out, err := c.text.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chef: scale: %w", err)
	}
	return out, nil
}

func (c *Chef) imageURL(ctx context.Context, name string) string {
	url, err := c.images.ImageURL(ctx, name)
	if err == nil && url != "" {
		return url
	}
	if err != nil {
		c.logger.Warn("image generation failed", slog.String("dish", name), slog.String("error", err.Error()))
	}
	return imagegen.Unsplash{}.URL(name)
}
