package recipestore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/starford/smartchef/internal/llm"
	"github.com/starford/smartchef/internal/models"
)

// Ranker orders candidate recipes by relevance to a query. It returns
// filenames, best first; unknown filenames are ignored by the caller.
type Ranker interface {
	Rank(ctx context.Context, query string, docs []models.SearchDoc) ([]string, error)
}

// LLMRanker asks a text model to pick the most relevant recipes.
type LLMRanker struct {
	gen llm.TextGenerator
}

// NewLLMRanker returns a ranker that prompts gen.
func NewLLMRanker(gen llm.TextGenerator) *LLMRanker {
	return &LLMRanker{gen: gen}
}

// Rank sends the documents as JSON and reads one filename per line back.
func (r *LLMRanker) Rank(ctx context.Context, query string, docs []models.SearchDoc) ([]string, error) {
	payload, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("llm ranker: encode docs: %w", err)
	}

	prompt := fmt.Sprintf(`我有以下食谱集合，请帮我找出与查询条件"%s"最相关的食谱:

%s

请返回最相关的食谱文件名列表，按相关性排序，最多返回%d个结果。
只返回文件名列表，不要包含其他内容。每行一个文件名。`, query, payload, MaxSearchResults)

	reply, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm ranker: %w", err)
	}

	var out []string
	for _, line := range strings.Split(reply, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

// FuzzyRanker matches the query as a fuzzy subsequence of each recipe's
// name and content. It needs no external service.
type FuzzyRanker struct{}

// Rank returns matching filenames, best score first.
func (FuzzyRanker) Rank(ctx context.Context, query string, docs []models.SearchDoc) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fuzzyRank(query, docs), nil
}

func fuzzyRank(query string, docs []models.SearchDoc) []string {
	targets := make([]string, len(docs))
	for i, d := range docs {
		targets[i] = d.Name + " " + d.Content
	}
	matches := fuzzy.Find(query, targets)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, docs[m.Index].Filename)
	}
	return out
}
