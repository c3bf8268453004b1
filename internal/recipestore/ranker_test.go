package recipestore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/smartchef/internal/models"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestLLMRanker_ParsesLines(t *testing.T) {
	gen := &fakeGenerator{reply: "\n  b.md  \n\na.md\n"}
	r := NewLLMRanker(gen)

	docs := []models.SearchDoc{
		{Filename: "a.md", Name: "宫保鸡丁", Content: "鸡肉"},
		{Filename: "b.md", Name: "辣子鸡", Content: "鸡肉 辣椒"},
	}
	got, err := r.Rank(context.Background(), "辣", docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.md", "a.md"}, got)

	assert.Contains(t, gen.prompt, `"辣"`)
	assert.Contains(t, gen.prompt, `"filename": "a.md"`)
	assert.True(t, strings.Contains(gen.prompt, "宫保鸡丁"), "prompt keeps non-ASCII text unescaped")
}

func TestLLMRanker_ErrorSurfaces(t *testing.T) {
	r := NewLLMRanker(&fakeGenerator{err: errors.New("boom")})
	_, err := r.Rank(context.Background(), "q", []models.SearchDoc{{Filename: "a.md"}})
	assert.Error(t, err)
}

func TestFuzzyRanker(t *testing.T) {
	docs := []models.SearchDoc{
		{Filename: "egg.md", Name: "蒸蛋", Content: "鸡蛋 温水"},
		{Filename: "beef.md", Name: "土豆炖牛肉", Content: "牛肉 土豆"},
	}
	got, err := FuzzyRanker{}.Rank(context.Background(), "牛肉", docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"beef.md"}, got)

	got, err = FuzzyRanker{}.Rank(context.Background(), "龙虾", docs)
	require.NoError(t, err)
	assert.Empty(t, got)
}
