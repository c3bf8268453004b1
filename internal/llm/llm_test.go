package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsProvider(t *testing.T) {
	cases := []struct {
		cfg  Config
		want any
	}{
		{Config{Provider: "anthropic"}, Disabled{}},
		{Config{Provider: "anthropic", APIKey: "k"}, &Anthropic{}},
		{Config{Provider: "openai", APIKey: "k"}, &OpenAICompatible{}},
		{Config{Provider: "DeepSeek", APIKey: "k"}, &OpenAICompatible{}},
		{Config{Provider: "none", APIKey: "k"}, Disabled{}},
		{Config{Provider: "", APIKey: "k"}, Disabled{}},
	}
	for _, c := range cases {
		assert.IsType(t, c.want, New(c.cfg), "provider %q", c.cfg.Provider)
	}
}

func TestNew_DeepSeekDefaults(t *testing.T) {
	gen, ok := New(Config{Provider: ProviderDeepSeek, APIKey: "k"}).(*OpenAICompatible)
	require.True(t, ok)
	assert.Equal(t, DefaultDeepSeekBaseURL+"/chat/completions", gen.url)
	assert.Equal(t, DefaultDeepSeekModel, gen.model)
	assert.Equal(t, DefaultMaxTokens, gen.maxTokens)
	assert.Equal(t, DefaultTemperature, gen.temperature)
}

func TestNew_ZeroTemperatureKept(t *testing.T) {
	gen, ok := New(Config{Provider: ProviderOpenAI, APIKey: "k", Temperature: Float(0)}).(*OpenAICompatible)
	require.True(t, ok)
	assert.Equal(t, 0.0, gen.temperature)

	a, ok := New(Config{Provider: ProviderAnthropic, APIKey: "k", Temperature: Float(0)}).(*Anthropic)
	require.True(t, ok)
	assert.Equal(t, 0.0, a.temperature)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenAICompatible_Generate(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  # 番茄炒蛋\n"}}]}`))
	}))
	defer srv.Close()

	gen := NewOpenAICompatible(Config{APIKey: "secret", BaseURL: srv.URL + "/v1/", Model: "m", MaxTokens: 100, Temperature: Float(0.5)})
	out, err := gen.Generate(context.Background(), "做一道菜")
	require.NoError(t, err)
	assert.Equal(t, "# 番茄炒蛋", out)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, SystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "做一道菜", got.Messages[1].Content)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
}

func TestOpenAICompatible_ErrorStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen := NewOpenAICompatible(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, 1, calls, "no retry")
}

func TestOpenAICompatible_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAICompatible(Config{APIKey: "k", BaseURL: srv.URL}).Generate(context.Background(), "p")
	assert.Error(t, err)
}

func TestAnthropic_Generate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "# 宫保鸡丁"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	gen := NewAnthropic(Config{APIKey: "secret", BaseURL: srv.URL, MaxTokens: 200, Temperature: Float(0.7)})
	out, err := gen.Generate(context.Background(), "鸡肉 花生")
	require.NoError(t, err)
	assert.Equal(t, "# 宫保鸡丁", out)
	assert.Equal(t, DefaultAnthropicModel, body["model"])
	assert.EqualValues(t, 200, body["max_tokens"])
}
