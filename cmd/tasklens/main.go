// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/tasklens"
	"github.com/poiesic/tasklens/ai"
	"github.com/poiesic/tasklens/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "tasklens",
		Usage: "Task retrieval and ranking over markdown vaults",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "query",
				Usage:  "List tasks matching the filter",
				Action: queryCommand,
				Flags: append(filterFlags(),
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Comma-separated sort criteria (dueDate, priority, created, alphabetical)",
					},
					&cli.BoolFlag{
						Name:  "desc",
						Usage: "Reverse the sort direction",
					},
				),
			},
			{
				Name:   "count",
				Usage:  "Count tasks matching the filter",
				Action: countCommand,
				Flags:  filterFlags(),
			},
			{
				Name:      "search",
				Usage:     "Rank matching tasks by keyword relevance",
				Action:    searchCommand,
				ArgsUsage: "<query words>",
				Flags: append(filterFlags(),
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: 10,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Let an AI model pick the tasks answering a request",
				Action:    askCommand,
				ArgsUsage: "<request>",
				Flags: append(filterFlags(),
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "OpenAI-compatible chat service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Model name for task selection",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "min-relevance",
						Usage: "Minimum relevance score (1-10) for picked tasks",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: 10,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// filterFlags returns the flags shared by every retrieval command.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "vault",
			Aliases:  []string{"v"},
			Usage:    "Path to the markdown vault directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "index",
			Usage: "Directory for the persistent index (in-memory if unset)",
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "Backend preference (auto, memindex, badgerindex)",
			Value:   "auto",
		},
		&cli.StringSliceFlag{
			Name:  "folder",
			Usage: "Include tasks from this folder (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-folder",
			Usage: "Exclude tasks from this folder (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "note",
			Usage: "Include tasks from this note (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-note",
			Usage: "Exclude tasks from this note (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "tag",
			Usage: "Include tasks carrying this tag (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-tag",
			Usage: "Exclude tasks carrying this tag (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "note-tag",
			Usage: "Include tasks from notes carrying this tag (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-note-tag",
			Usage: "Exclude tasks from notes carrying this tag (repeatable)",
		},
		&cli.StringFlag{
			Name:    "priority",
			Aliases: []string{"p"},
			Usage:   "Priority filter: 'any', 'none', or comma-separated values (0-5)",
		},
		&cli.StringSliceFlag{
			Name:  "due",
			Usage: "Due filter: all, none, today, tomorrow, overdue, future, week, next-week, or a date (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "status",
			Usage: "Status filter: a symbol or category name (repeatable)",
		},
	}
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	spec, err := buildFilterSpec(c)
	if err != nil {
		return err
	}
	sortSpec, err := buildSortSpec(c)
	if err != nil {
		return err
	}

	tasks, err := sys.Engine().Query(ctx, spec, sortSpec)
	if err != nil {
		return err
	}

	printTasks(tasks)
	return nil
}

func countCommand(c *cli.Context) error {
	ctx := context.Background()

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	spec, err := buildFilterSpec(c)
	if err != nil {
		return err
	}

	n, err := sys.Engine().Count(ctx, spec)
	if err != nil {
		return err
	}

	fmt.Println(n)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	spec, err := buildFilterSpec(c)
	if err != nil {
		return err
	}

	searcher, err := sys.NewSearcher()
	if err != nil {
		return err
	}

	hits, scores, err := searcher.Keyword(ctx, query, spec, c.Int("max-hits"))
	if err != nil {
		return err
	}

	printScoredTasks(hits, scores)
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	request := strings.Join(c.Args().Slice(), " ")
	if request == "" {
		return fmt.Errorf("request text is required")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithModel(c.String("ai-model")),
		ai.WithMinRelevance(c.Int("min-relevance")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	sys, err := openSystem(c, tasklens.WithAIConfig(aiConfig))
	if err != nil {
		return err
	}
	defer sys.Close()

	spec, err := buildFilterSpec(c)
	if err != nil {
		return err
	}

	searcher, err := sys.NewSearcher()
	if err != nil {
		return err
	}

	hits, scores, err := searcher.Assisted(ctx, request, spec, c.Int("max-hits"))
	if err != nil {
		return err
	}

	printScoredTasks(hits, scores)
	return nil
}

// openSystem assembles the system for a command and populates the indexes.
func openSystem(c *cli.Context, extra ...tasklens.SystemOption) (*tasklens.System, error) {
	cfg := core.DefaultConfig()
	cfg.BackendPreference = c.String("backend")

	opts := append([]tasklens.SystemOption{
		tasklens.WithConfig(cfg),
		tasklens.WithIndexPath(c.String("index")),
	}, extra...)

	sys, err := tasklens.NewSystem(c.String("vault"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}

	if err := sys.Refresh(context.Background()); err != nil {
		sys.Close()
		return nil, fmt.Errorf("failed to build indexes: %w", err)
	}
	return sys, nil
}

func buildFilterSpec(c *cli.Context) (core.FilterSpec, error) {
	spec := core.FilterSpec{
		Folders:         c.StringSlice("folder"),
		ExcludeFolders:  c.StringSlice("exclude-folder"),
		Notes:           c.StringSlice("note"),
		ExcludeNotes:    c.StringSlice("exclude-note"),
		TaskTags:        c.StringSlice("tag"),
		ExcludeTaskTags: c.StringSlice("exclude-tag"),
		NoteTags:        c.StringSlice("note-tag"),
		ExcludeNoteTags: c.StringSlice("exclude-note-tag"),
		StatusValues:    c.StringSlice("status"),
	}

	if raw := c.String("priority"); raw != "" {
		pf, err := parsePriorityFlag(raw)
		if err != nil {
			return core.FilterSpec{}, err
		}
		spec.Priority = pf
	}

	spec.DueDate = core.DueDateFilter{Values: c.StringSlice("due")}
	return spec, nil
}

func parsePriorityFlag(raw string) (core.PriorityFilter, error) {
	switch strings.ToLower(raw) {
	case "any", "all":
		return core.PriorityFilter{Any: true}, nil
	case "none":
		return core.PriorityFilter{None: true}, nil
	}

	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return core.PriorityFilter{}, fmt.Errorf("invalid priority value %q", part)
		}
		values = append(values, v)
	}
	return core.PriorityFilter{Values: values}, nil
}

func buildSortSpec(c *cli.Context) (core.SortSpec, error) {
	spec := core.SortSpec{Descending: c.Bool("desc")}

	raw := c.String("sort")
	if raw == "" {
		return spec, nil
	}

	for _, part := range strings.Split(raw, ",") {
		criterion := core.SortCriterion(strings.TrimSpace(part))
		switch criterion {
		case core.SortRelevance, core.SortDueDate, core.SortPriority, core.SortCreated, core.SortAlphabetical:
			spec.Criteria = append(spec.Criteria, criterion)
		default:
			return core.SortSpec{}, fmt.Errorf("invalid sort criterion %q", part)
		}
	}
	return spec, nil
}

func printTasks(tasks []core.Task) {
	fmt.Printf("Found %d tasks\n", len(tasks))
	for i, task := range tasks {
		fmt.Printf("%d: [%s] %s (%s:%d)%s\n",
			i, task.Status, task.Text, task.SourcePath, task.LineNumber, taskNotes(task))
	}
}

func printScoredTasks(tasks []core.Task, scores map[string]float64) {
	fmt.Printf("Found %d hits\n", len(tasks))
	for i, task := range tasks {
		fmt.Printf("%d: [%s] %s (%s:%d)[%0.3f]%s\n",
			i, task.Status, task.Text, task.SourcePath, task.LineNumber, scores[task.ID], taskNotes(task))
	}
}

func taskNotes(task core.Task) string {
	var notes []string
	if task.DueDate != "" {
		notes = append(notes, "due "+task.DueDate)
	}
	if task.Priority != nil {
		notes = append(notes, fmt.Sprintf("p%d", *task.Priority))
	}
	if len(notes) == 0 {
		return ""
	}
	return " {" + strings.Join(notes, ", ") + "}"
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
