package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/smartchef/internal"
	"github.com/starford/smartchef/internal/agent"
	"github.com/starford/smartchef/internal/chef"
	"github.com/starford/smartchef/internal/mcpserver"
	"github.com/starford/smartchef/internal/ui"
)

const previewLines = 15

// withComponents loads config, wires the services with a stderr logger, and
// runs fn. stdout stays free for command output.
func withComponents(cmd *cli.Command, tune func(*internal.Config), fn func(*internal.Components) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if tune != nil {
		tune(cfg)
	}
	logger := internal.NewLogger(os.Stderr, max(cfg.App.LogLevel, slog.LevelWarn))
	slog.SetDefault(logger)

	comps, err := internal.NewComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer comps.Close()
	return fn(comps)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API with the file watcher",
		Action: serve,
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate and save a recipe",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ingredients", Aliases: []string{"i"}, Usage: "Comma-separated ingredients", Required: true},
			&cli.StringFlag{Name: "cuisine", Usage: "Cuisine type", Value: "中餐"},
			&cli.StringFlag{Name: "requirements", Usage: "Special requirements"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withComponents(cmd, nil, func(c *internal.Components) error {
				res, err := c.Chef.Create(ctx, chef.Request{
					Ingredients:         cmd.String("ingredients"),
					CuisineType:         cmd.String("cuisine"),
					SpecialRequirements: cmd.String("requirements"),
				})
				if err != nil {
					return err
				}
				if res.Fallback {
					fmt.Println(ui.WarnStyle.Render("text generation unavailable, served a canned recipe"))
				}
				fmt.Println(ui.TitleStyle.Render(res.Name))
				fmt.Println(ui.RenderMarkdown(ui.Head(res.Markdown, previewLines)))
				fmt.Println(ui.PassStyle.Render("saved: " + res.SavedFile))
				return nil
			})
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List saved recipes, newest first",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withComponents(cmd, nil, func(c *internal.Components) error {
				recipes, err := c.Store.List(ctx)
				if err != nil {
					return err
				}
				if len(recipes) == 0 {
					fmt.Println(ui.MutedStyle.Render("no recipes saved"))
					return nil
				}
				for _, r := range recipes {
					fmt.Printf("%s  %s\n", ui.TitleStyle.Render(r.Name), ui.MutedStyle.Render(r.Filename))
				}
				return nil
			})
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the latest version of a recipe",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New("recipe name is required")
			}
			return withComponents(cmd, nil, func(c *internal.Components) error {
				rec, err := c.Store.Load(ctx, name)
				if err != nil {
					return err
				}
				fmt.Println(ui.RenderMarkdown(rec.Body))
				return nil
			})
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Find saved recipes matching a query",
		ArgsUsage: "QUERY",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := cmd.Args().First()
			if query == "" {
				return errors.New("search query is required")
			}
			return withComponents(cmd, nil, func(c *internal.Components) error {
				results, err := c.Store.Search(ctx, query)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Println(ui.MutedStyle.Render("no matches"))
					return nil
				}
				for _, r := range results {
					fmt.Printf("%s  %s\n", ui.TitleStyle.Render(r.Name), ui.MutedStyle.Render(r.Filename))
				}
				return nil
			})
		},
	}
}

func agentCommand() *cli.Command {
	return &cli.Command{
		Name:  "agent",
		Usage: "Plan, draft, and refine a recipe over several model rounds",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ingredients", Aliases: []string{"i"}, Usage: "Available ingredients", Required: true},
			&cli.StringFlag{Name: "cuisine", Usage: "Cuisine type", Value: "中餐"},
			&cli.StringFlag{Name: "dietary", Usage: "Dietary restrictions"},
			&cli.StringFlag{Name: "skill", Usage: "Cooking skill level"},
			&cli.StringFlag{Name: "requirements", Usage: "Special requirements"},
			&cli.IntFlag{Name: "rounds", Usage: "Maximum planner rounds", Value: agent.DefaultMaxRounds},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tune := func(cfg *internal.Config) { cfg.Agent.MaxRounds = int(cmd.Int("rounds")) }
			return withComponents(cmd, tune, func(c *internal.Components) error {
				out, err := c.Agent.Run(ctx, agent.Request{
					Ingredients:         cmd.String("ingredients"),
					CuisineType:         cmd.String("cuisine"),
					DietaryRestrictions: cmd.String("dietary"),
					CookingSkill:        cmd.String("skill"),
					SpecialRequirements: cmd.String("requirements"),
				})
				if err != nil {
					return err
				}
				for _, step := range out.Steps {
					fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("step %d: %s", step.Decision.Step, step.Decision.Action)))
				}
				if out.Recipe == "" {
					fmt.Println(ui.WarnStyle.Render("agent stopped before producing a recipe"))
					return nil
				}
				fmt.Println(ui.RenderMarkdown(out.Recipe))
				fmt.Println(ui.PassStyle.Render("saved: " + out.SavedPath))
				return nil
			})
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve SmartChef tools over MCP stdio",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return withComponents(cmd, nil, func(c *internal.Components) error {
				return mcpserver.New(c.Chef, c.Store).ServeStdio()
			})
		},
	}
}
