// Package agent runs the multi-step recipe workflow: a planner model picks
// the next stage (analyze, synthesize, visualize) until it is done or the
// round budget runs out.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/starford/smartchef/internal/imagegen"
	"github.com/starford/smartchef/internal/llm"
)

// Actions a decision may name.
const (
	ActionAnalyze    = "analyze"
	ActionSynthesize = "synthesize"
	ActionVisualize  = "visualize"
	ActionDone       = "done"
)

// DefaultName labels a final recipe without a "# " title line.
const DefaultName = "未命名菜谱"

// DefaultMaxRounds bounds Run when no limit is configured.
const DefaultMaxRounds = 4

// Tags attached to recipes saved by the agent.
var Tags = []string{"AI生成", "agent"}

var errNoDecision = errors.New("agent: no JSON object in planner reply")

// Saver persists a recipe body and returns the written path.
type Saver interface {
	Save(ctx context.Context, body, name string, tags []string) (string, error)
}

// Request describes what the user has and wants.
type Request struct {
	Ingredients         string `json:"available_ingredients"`
	CuisineType         string `json:"cuisine_type"`
	DietaryRestrictions string `json:"dietary_restrictions,omitempty"`
	CookingSkill        string `json:"cooking_skill,omitempty"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
}

// Decision is the planner's answer for one round.
type Decision struct {
	Step     int      `json:"step"`
	Thoughts []string `json:"thoughts"`
	Action   string   `json:"action"`
	Content  string   `json:"content,omitempty"`
}

// Step records one executed round.
type Step struct {
	Decision Decision `json:"decision"`
	Result   string   `json:"result,omitempty"`
}

// Outcome is the result of a run. Recipe is empty when the planner stopped
// before visualizing.
type Outcome struct {
	RunID     string `json:"run_id"`
	Steps     []Step `json:"steps"`
	Recipe    string `json:"recipe,omitempty"`
	Name      string `json:"name,omitempty"`
	SavedPath string `json:"saved_path,omitempty"`
}

// Orchestrator drives the planner and the stage prompts.
type Orchestrator struct {
	text      llm.TextGenerator
	images    imagegen.ImageGenerator
	store     Saver
	maxRounds int
	logger    *slog.Logger
}

// New creates an Orchestrator. maxRounds <= 0 uses DefaultMaxRounds.
func New(text llm.TextGenerator, images imagegen.ImageGenerator, store Saver, maxRounds int, logger *slog.Logger) *Orchestrator {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Orchestrator{
		text:      text,
		images:    images,
		store:     store,
		maxRounds: maxRounds,
		logger:    logger,
	}
}

// Run executes up to maxRounds planner rounds. A "done" action, an
// unparseable decision, or an unknown action ends the loop early.
// Generation errors are returned.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Outcome, error) {
	out := &Outcome{RunID: uuid.NewString(), Steps: []Step{}}
	logger := o.logger.With(slog.String("run_id", out.RunID))

	requestJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("agent: encode request: %w", err)
	}
	latest := string(requestJSON)

	for round := 0; round < o.maxRounds; round++ {
		reply, err := o.text.Generate(ctx, plannerPrompt(string(requestJSON), out.Steps))
		if err != nil {
			return nil, fmt.Errorf("agent: round %d: plan: %w", round+1, err)
		}

		decision, err := parseDecision(reply)
		if err != nil {
			logger.Warn("agent: unparseable decision", slog.Int("round", round+1), slog.String("error", err.Error()))
			break
		}
		logger.Info("agent: decision",
			slog.Int("round", round+1),
			slog.String("action", decision.Action),
			slog.Any("thoughts", decision.Thoughts))

		prompt, ok := stagePrompt(decision.Action, pick(decision.Content, latest))
		if !ok {
			if decision.Action != ActionDone {
				logger.Warn("agent: unknown action", slog.String("action", decision.Action))
			}
			out.Steps = append(out.Steps, Step{Decision: decision})
			break
		}

		result, err := o.text.Generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("agent: round %d: %s: %w", round+1, decision.Action, err)
		}

		if decision.Action == ActionVisualize {
			name := recipeName(result)
			result += fmt.Sprintf("\n\n![食谱图片](%s)", o.imageURL(ctx, name, logger))
			out.Recipe, out.Name = result, name
		}
		latest = result
		out.Steps = append(out.Steps, Step{Decision: decision, Result: result})
	}

	if out.Recipe == "" {
		logger.Info("agent: finished without a recipe", slog.Int("steps", len(out.Steps)))
		return out, nil
	}

	path, err := o.store.Save(ctx, out.Recipe, out.Name, Tags)
	if err != nil {
		return nil, fmt.Errorf("agent: save: %w", err)
	}
	out.SavedPath = path
	logger.Info("agent: recipe saved", slog.String("name", out.Name), slog.String("file", path))
	return out, nil
}

func (o *Orchestrator) imageURL(ctx context.Context, name string, logger *slog.Logger) string {
	url, err := o.images.ImageURL(ctx, name)
	if err != nil || url == "" {
		if err != nil {
			logger.Warn("agent: image generation failed", slog.String("error", err.Error()))
		}
		return imagegen.Unsplash{}.URL(name)
	}
	return url
}

// parseDecision reads the outermost JSON object in reply, which may be
// wrapped in prose or a code fence.
func parseDecision(reply string) (Decision, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return Decision{}, errNoDecision
	}
	var d Decision
	if err := json.Unmarshal([]byte(reply[start:end+1]), &d); err != nil {
		return Decision{}, fmt.Errorf("agent: decode decision: %w", err)
	}
	d.Action = strings.ToLower(strings.TrimSpace(d.Action))
	return d, nil
}

// recipeName reads the title from the first line of a recipe.
func recipeName(recipe string) string {
	first, _, _ := strings.Cut(recipe, "\n")
	if name, ok := strings.CutPrefix(first, "# "); ok {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return DefaultName
}

func pick(preferred, fallback string) string {
	if strings.TrimSpace(preferred) != "" {
		return preferred
	}
	return fallback
}
