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


package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/tasklens/core"
)

func intPtr(n int) *int { return &n }

func sortedTexts(tasks []core.Task, spec core.SortSpec) []string {
	sorted := SortTasks(tasks, spec)
	texts := make([]string, len(sorted))
	for i, task := range sorted {
		texts[i] = task.Text
	}
	return texts
}

func TestSortTasksNoOp(t *testing.T) {
	tasks := []core.Task{
		{ID: "b", Text: "beta"},
		{ID: "a", Text: "alpha"},
	}

	t.Run("empty criteria", func(t *testing.T) {
		assert.Equal(t, []string{"beta", "alpha"}, sortedTexts(tasks, core.SortSpec{}))
	})

	t.Run("relevance alone", func(t *testing.T) {
		spec := core.SortSpec{
			Criteria: []core.SortCriterion{core.SortRelevance},
			Scores:   map[string]float64{"a": 1.0, "b": 0.1},
		}
		sorted := SortTasks(tasks, spec)
		assert.Equal(t, "beta", sorted[0].Text, "relevance-only means already ordered")
	})
}

func TestSortTasksDoesNotMutateInput(t *testing.T) {
	tasks := []core.Task{
		{Text: "zebra"},
		{Text: "apple"},
	}
	spec := core.SortSpec{Criteria: []core.SortCriterion{core.SortAlphabetical}}

	sorted := SortTasks(tasks, spec)
	assert.Equal(t, "apple", sorted[0].Text)
	assert.Equal(t, "zebra", tasks[0].Text, "input slice unchanged")
}

func TestSortTasksByDueDate(t *testing.T) {
	tasks := []core.Task{
		{Text: "none"},
		{Text: "late", DueDate: "2025-06-01"},
		{Text: "early", DueDate: "2025-01-15"},
	}
	spec := core.SortSpec{Criteria: []core.SortCriterion{core.SortDueDate}}

	t.Run("ascending, missing last", func(t *testing.T) {
		assert.Equal(t, []string{"early", "late", "none"}, sortedTexts(tasks, spec))
	})

	t.Run("descending, missing first", func(t *testing.T) {
		desc := spec
		desc.Descending = true
		assert.Equal(t, []string{"none", "late", "early"}, sortedTexts(tasks, desc))
	})
}

func TestSortTasksByPriority(t *testing.T) {
	tasks := []core.Task{
		{Text: "unset"},
		{Text: "lowest", Priority: intPtr(5)},
		{Text: "highest", Priority: intPtr(0)},
		{Text: "medium", Priority: intPtr(2)},
	}
	spec := core.SortSpec{Criteria: []core.SortCriterion{core.SortPriority}}

	// Missing priority ranks below lowest, so "unset" lands last.
	assert.Equal(t, []string{"highest", "medium", "lowest", "unset"}, sortedTexts(tasks, spec))
}

func TestSortTasksAlphabetical(t *testing.T) {
	tasks := []core.Task{
		{Text: "cherry"},
		{Text: "apple"},
		{Text: "banana"},
	}
	spec := core.SortSpec{Criteria: []core.SortCriterion{core.SortAlphabetical}}

	assert.Equal(t, []string{"apple", "banana", "cherry"}, sortedTexts(tasks, spec))

	spec.Descending = true
	assert.Equal(t, []string{"cherry", "banana", "apple"}, sortedTexts(tasks, spec))
}

func TestSortTasksMultiCriteria(t *testing.T) {
	tasks := []core.Task{
		{Text: "b-task", DueDate: "2025-03-01", Priority: intPtr(2)},
		{Text: "a-task", DueDate: "2025-03-01", Priority: intPtr(2)},
		{Text: "c-task", DueDate: "2025-03-01", Priority: intPtr(0)},
		{Text: "d-task", DueDate: "2025-02-01", Priority: intPtr(5)},
	}
	spec := core.SortSpec{
		Criteria: []core.SortCriterion{core.SortDueDate, core.SortPriority, core.SortAlphabetical},
	}

	assert.Equal(t, []string{"d-task", "c-task", "a-task", "b-task"}, sortedTexts(tasks, spec))
}

func TestSortTasksRelevanceAlwaysDescending(t *testing.T) {
	tasks := []core.Task{
		{ID: "low", Text: "low", DueDate: "2025-01-01"},
		{ID: "high", Text: "high", DueDate: "2025-01-01"},
	}
	spec := core.SortSpec{
		Criteria:   []core.SortCriterion{core.SortRelevance, core.SortDueDate},
		Descending: true,
		Scores:     map[string]float64{"high": 0.9, "low": 0.2},
	}

	// The direction flag flips due-date but never relevance.
	assert.Equal(t, []string{"high", "low"}, sortedTexts(tasks, spec))
}

func TestSortTasksStableOnFullTie(t *testing.T) {
	tasks := []core.Task{
		{ID: "1", Text: "same", DueDate: "2025-03-01"},
		{ID: "2", Text: "same", DueDate: "2025-03-01"},
		{ID: "3", Text: "same", DueDate: "2025-03-01"},
	}
	spec := core.SortSpec{
		Criteria: []core.SortCriterion{core.SortDueDate, core.SortAlphabetical},
	}

	sorted := SortTasks(tasks, spec)
	assert.Equal(t, []string{"1", "2", "3"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}
