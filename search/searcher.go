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


package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/tasklens/ai"
	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/engine"
)

// Searcher ranks filtered tasks by relevance to a free-text query.
// Keyword search needs only the engine; Assisted search additionally
// requires a task picker.
type Searcher struct {
	engine *engine.Engine
	picker ai.TaskPicker
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPicker sets the AI task picker used by Assisted.
func WithPicker(picker ai.TaskPicker) Option {
	return func(s *Searcher) error {
		s.picker = picker
		return nil
	}
}

// NewSearcher creates a new searcher on top of a query engine.
func NewSearcher(eng *engine.Engine, opts ...Option) (*Searcher, error) {
	if eng == nil {
		return nil, ErrEngineRequired
	}

	s := &Searcher{
		engine: eng,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Keyword retrieves the tasks matching spec and ranks them by keyword
// relevance to the query. Tasks sharing no query words are dropped.
// Returns up to maxHits tasks plus the score map keyed by task ID, which
// callers may feed back into a relevance sort.
// A maxHits of 0 or less means no limit.
func (s *Searcher) Keyword(ctx context.Context, query string, spec core.FilterSpec, maxHits int) ([]core.Task, map[string]float64, error) {
	tasks, err := s.engine.Query(ctx, spec, core.SortSpec{})
	if err != nil {
		return nil, nil, err
	}

	queryWords := tokenizeAndFilter(query)
	s.logger.Debug("keyword search",
		"query", query,
		"terms", len(queryWords),
		"candidates", len(tasks))

	scores := make(map[string]float64, len(tasks))
	for _, task := range tasks {
		if score := scoreTask(task, queryWords); score > 0 {
			scores[task.ID] = score
		}
	}

	return rankByScore(tasks, scores, maxHits), scores, nil
}

// Assisted retrieves the tasks matching spec and asks the configured AI
// picker which ones answer the request. Picker relevance (1-10) is scaled
// to a 0-1 score map keyed by task ID. Tasks the picker skipped are dropped.
// A maxHits of 0 or less means no limit.
func (s *Searcher) Assisted(ctx context.Context, request string, spec core.FilterSpec, maxHits int) ([]core.Task, map[string]float64, error) {
	if s.picker == nil {
		return nil, nil, ErrPickerRequired
	}

	tasks, err := s.engine.Query(ctx, spec, core.SortSpec{})
	if err != nil {
		return nil, nil, err
	}
	if len(tasks) == 0 {
		return []core.Task{}, map[string]float64{}, nil
	}

	picks, err := s.picker.PickTasks(ctx, request, tasks)
	if err != nil {
		return nil, nil, err
	}

	scores := make(map[string]float64, len(picks))
	for _, p := range picks {
		scores[p.TaskID] = float64(p.Relevance) / 10.0
	}
	s.logger.Debug("assisted search",
		"request", request,
		"candidates", len(tasks),
		"picked", len(scores))

	return rankByScore(tasks, scores, maxHits), scores, nil
}

// rankByScore keeps the scored tasks, ordered by score descending.
// Ties preserve the incoming task order. The result is truncated to
// maxHits when maxHits is positive.
func rankByScore(tasks []core.Task, scores map[string]float64, maxHits int) []core.Task {
	hits := make([]core.Task, 0, len(scores))
	for _, task := range tasks {
		if _, ok := scores[task.ID]; ok {
			hits = append(hits, task)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return scores[hits[i].ID] > scores[hits[j].ID]
	})

	if maxHits > 0 && len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return hits
}
