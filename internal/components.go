package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/smartchef/internal/agent"
	"github.com/starford/smartchef/internal/chef"
	"github.com/starford/smartchef/internal/imagegen"
	"github.com/starford/smartchef/internal/index"
	"github.com/starford/smartchef/internal/llm"
	"github.com/starford/smartchef/internal/recipestore"
	"github.com/starford/smartchef/internal/storage"
)

// Components holds the wired services shared by the server, the CLI
// commands, and the MCP server.
type Components struct {
	Files  *storage.FS
	DB     *index.DB
	Text   llm.TextGenerator
	Images imagegen.ImageGenerator
	Store  *recipestore.Store
	Chef   *chef.Chef
	Agent  *agent.Orchestrator
}

// NewComponents opens storage and the search index, runs an initial index
// sync, and wires the generators into the store, chef, and agent.
func NewComponents(cfg *Config, logger *slog.Logger) (*Components, error) {
	if err := os.MkdirAll(cfg.Recipes.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recipes dir: %w", err)
	}
	files, err := storage.NewFS(cfg.Recipes.Dir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	if err := index.Sync(db, files, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	text := cfg.LLM.Generator()
	if _, disabled := text.(llm.Disabled); disabled {
		logger.Warn("text generation disabled, canned recipes will be served",
			slog.String("provider", cfg.LLM.Provider))
	}
	images := cfg.Image.Generator(logger)

	store := recipestore.New(files,
		recipestore.WithRanker(selectRanker(cfg.Search.Ranker, db, text, logger)),
		recipestore.WithLogger(logger))

	return &Components{
		Files:  files,
		DB:     db,
		Text:   text,
		Images: images,
		Store:  store,
		Chef:   chef.New(text, images, store, logger),
		Agent:  agent.New(text, images, store, cfg.Agent.MaxRounds, logger),
	}, nil
}

// Close releases the search index.
func (c *Components) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func selectRanker(name string, db *index.DB, text llm.TextGenerator, logger *slog.Logger) recipestore.Ranker {
	switch name {
	case RankerLLM:
		if _, disabled := text.(llm.Disabled); !disabled {
			return recipestore.NewLLMRanker(text)
		}
		logger.Warn("llm ranker requested without a text provider, using fuzzy ranker")
		return recipestore.FuzzyRanker{}
	case RankerFuzzy:
		return recipestore.FuzzyRanker{}
	default:
		return index.NewRanker(db)
	}
}

// errConfigRequired is returned when no configuration was supplied.
var errConfigRequired = errors.New("config is required")
