package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// GenerationRequest is the images/generations request body.
type GenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

// GenerationResponse is the subset of the response we read.
type GenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// DALLE generates images with the OpenAI images API.
type DALLE struct {
	apiKey string
	url    string
	size   string
	client *http.Client
}

// NewDALLE creates a DALL-E client.
func NewDALLE(cfg Config) *DALLE {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	size := cfg.Size
	if size == "" {
		size = DefaultSize
	}
	return &DALLE{
		apiKey: cfg.APIKey,
		url:    strings.TrimRight(base, "/") + "/images/generations",
		size:   size,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Prompt describes the dish as a food photograph.
func Prompt(dishName string) string {
	return fmt.Sprintf("一道美味的%s，摆盘精美，色香味俱全。高清照片风格，逼真的食物摄影", dishName)
}

// ImageURL implements ImageGenerator with a single request.
func (d *DALLE) ImageURL(ctx context.Context, dishName string) (string, error) {
	payload, err := json.Marshal(GenerationRequest{
		Model:          "dall-e-3",
		Prompt:         Prompt(dishName),
		N:              1,
		Size:           d.size,
		Quality:        "standard",
		ResponseFormat: "url",
	})
	if err != nil {
		return "", fmt.Errorf("imagegen: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("imagegen: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagegen: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("imagegen: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imagegen: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out GenerationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("imagegen: decode response: %w", err)
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return "", fmt.Errorf("imagegen: no image in response")
	}
	return out.Data[0].URL, nil
}
