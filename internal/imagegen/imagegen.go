// Package imagegen associates an illustrative image URL with a dish.
package imagegen

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Provider names accepted by New.
const (
	ProviderUnsplash = "unsplash"
	ProviderDALLE    = "dalle"
)

// DefaultSize is the requested image size.
const DefaultSize = "1024x1024"

// ImageGenerator returns an image URL for a dish.
type ImageGenerator interface {
	ImageURL(ctx context.Context, dishName string) (string, error)
}

// Config selects and configures a backend.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Size     string
}

// New returns DALL-E with an Unsplash fallback when a key is configured for
// it, otherwise Unsplash alone.
func New(cfg Config, logger *slog.Logger) ImageGenerator {
	if cfg.Size == "" {
		cfg.Size = DefaultSize
	}
	unsplash := Unsplash{Size: cfg.Size}
	if strings.ToLower(cfg.Provider) != ProviderDALLE || cfg.APIKey == "" {
		return unsplash
	}
	return WithFallback(NewDALLE(cfg), unsplash, logger)
}

// Unsplash builds random-photo URLs from keywords. It never fails.
type Unsplash struct {
	Size string
}

// ImageURL implements ImageGenerator.
func (u Unsplash) ImageURL(_ context.Context, dishName string) (string, error) {
	return u.URL(dishName), nil
}

// URL returns a random food photo URL matching the keywords. Spaces inside a
// keyword become "+".
func (u Unsplash) URL(keywords ...string) string {
	size := u.Size
	if size == "" {
		size = DefaultSize
	}
	var b strings.Builder
	b.WriteString("https://source.unsplash.com/random/")
	b.WriteString(size)
	b.WriteString("/?food")
	for _, k := range keywords {
		b.WriteString(",")
		b.WriteString(strings.ReplaceAll(k, " ", "+"))
	}
	return b.String()
}

type fallback struct {
	primary  ImageGenerator
	fallback ImageGenerator
	logger   *slog.Logger
}

// WithFallback tries primary and uses fallback when it fails.
func WithFallback(primary, secondary ImageGenerator, logger *slog.Logger) ImageGenerator {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &fallback{primary: primary, fallback: secondary, logger: logger}
}

func (f *fallback) ImageURL(ctx context.Context, dishName string) (string, error) {
	url, err := f.primary.ImageURL(ctx, dishName)
	if err == nil {
		return url, nil
	}
	f.logger.Warn("image generation failed, using fallback",
		slog.String("dish", dishName),
		slog.String("error", err.Error()))
	return f.fallback.ImageURL(ctx, dishName)
}
