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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/tasklens/ai"
	"github.com/poiesic/tasklens/ai/mock"
	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/backend/memindex"
	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/engine"
	"github.com/poiesic/tasklens/vault"
)

// offlineBackend stands in for the persistent index, which these tests
// never exercise.
type offlineBackend struct{}

func (offlineBackend) Name() string                                     { return "offline" }
func (offlineBackend) Available() bool                                  { return false }
func (offlineBackend) CompileQuery(core.FilterSpec, core.Config) string { return "" }
func (offlineBackend) ExecuteQuery(context.Context, string) ([]backend.RawRecord, error) {
	return nil, fmt.Errorf("offline")
}
func (offlineBackend) ExecutePageQuery(context.Context) ([]backend.Page, error) {
	return nil, fmt.Errorf("offline")
}
func (offlineBackend) FoldsExclusions() bool                { return false }
func (offlineBackend) IsValidRecord(backend.RawRecord) bool { return false }
func (offlineBackend) ExtractField(backend.RawRecord, core.Field) (string, bool) {
	return "", false
}

func newSearchEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := core.DefaultConfig()

	docs := []vault.Document{
		{
			Path: "Work/todo.md",
			Tasks: []vault.TaskLine{
				{Line: 1, Symbol: " ", Text: "Draft quarterly report"},
				{Line: 2, Symbol: " ", Text: "Review quarterly budget numbers"},
				{Line: 3, Symbol: " ", Text: "Call the plumber about the sink", Tags: []string{"home"}},
				{Line: 4, Symbol: " ", Text: "Water the office plants"},
			},
		},
	}

	mem := memindex.New()
	require.NoError(t, mem.Build(context.Background(), docs, cfg))

	eng, err := engine.New(backend.NewSelector(mem, offlineBackend{}), cfg)
	require.NoError(t, err)
	return eng
}

func TestNewSearcher(t *testing.T) {
	t.Run("requires engine", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.ErrorIs(t, err, ErrEngineRequired)
	})

	t.Run("engine alone suffices", func(t *testing.T) {
		s, err := NewSearcher(newSearchEngine(t))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}

func TestKeyword(t *testing.T) {
	s, err := NewSearcher(newSearchEngine(t))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("ranks full matches above partial", func(t *testing.T) {
		hits, scores, err := s.Keyword(ctx, "quarterly report", core.FilterSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "Draft quarterly report", hits[0].Text)
		assert.Equal(t, "Review quarterly budget numbers", hits[1].Text)
		assert.Greater(t, scores[hits[0].ID], scores[hits[1].ID])
	})

	t.Run("drops unmatched tasks", func(t *testing.T) {
		hits, _, err := s.Keyword(ctx, "plumber", core.FilterSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "Call the plumber about the sink", hits[0].Text)
	})

	t.Run("matches task tags", func(t *testing.T) {
		hits, _, err := s.Keyword(ctx, "home", core.FilterSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "Call the plumber about the sink", hits[0].Text)
	})

	t.Run("honors max hits", func(t *testing.T) {
		hits, _, err := s.Keyword(ctx, "quarterly", core.FilterSpec{}, 1)
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})

	t.Run("no matches yields empty result", func(t *testing.T) {
		hits, scores, err := s.Keyword(ctx, "zeppelin", core.FilterSpec{}, 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
		assert.Empty(t, scores)
	})
}

func TestAssisted(t *testing.T) {
	ctx := context.Background()

	t.Run("requires picker", func(t *testing.T) {
		s, err := NewSearcher(newSearchEngine(t))
		require.NoError(t, err)

		_, _, err = s.Assisted(ctx, "what should I do", core.FilterSpec{}, 0)
		assert.ErrorIs(t, err, ErrPickerRequired)
	})

	t.Run("ranks by picker relevance", func(t *testing.T) {
		picker := mock.NewMockTaskPicker()
		picker.PickTasksFunc = func(_ context.Context, _ string, candidates []core.Task) ([]ai.PickedTask, error) {
			picks := make([]ai.PickedTask, 0, 2)
			for _, c := range candidates {
				switch c.Text {
				case "Draft quarterly report":
					picks = append(picks, ai.PickedTask{TaskID: c.ID, Relevance: 6})
				case "Water the office plants":
					picks = append(picks, ai.PickedTask{TaskID: c.ID, Relevance: 9})
				}
			}
			return picks, nil
		}

		s, err := NewSearcher(newSearchEngine(t), WithPicker(picker))
		require.NoError(t, err)

		hits, scores, err := s.Assisted(ctx, "what needs doing", core.FilterSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "Water the office plants", hits[0].Text)
		assert.Equal(t, "Draft quarterly report", hits[1].Text)
		assert.InDelta(t, 0.9, scores[hits[0].ID], 1e-9)
		assert.InDelta(t, 0.6, scores[hits[1].ID], 1e-9)
		assert.Equal(t, 1, picker.CallCount())
	})

	t.Run("picker error surfaces", func(t *testing.T) {
		picker := mock.NewMockTaskPicker()
		picker.PickTasksFunc = func(context.Context, string, []core.Task) ([]ai.PickedTask, error) {
			return nil, fmt.Errorf("model unavailable")
		}

		s, err := NewSearcher(newSearchEngine(t), WithPicker(picker))
		require.NoError(t, err)

		_, _, err = s.Assisted(ctx, "anything", core.FilterSpec{}, 0)
		assert.ErrorContains(t, err, "model unavailable")
	})

	t.Run("no candidates skips the picker", func(t *testing.T) {
		picker := mock.NewMockTaskPicker()
		s, err := NewSearcher(newSearchEngine(t), WithPicker(picker))
		require.NoError(t, err)

		hits, scores, err := s.Assisted(ctx, "anything", core.FilterSpec{Folders: []string{"Nowhere"}}, 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
		assert.Empty(t, scores)
		assert.Zero(t, picker.CallCount())
	})
}
