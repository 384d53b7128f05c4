package mock

import (
	"context"
	"strings"

	"github.com/poiesic/tasklens/ai"
	"github.com/poiesic/tasklens/core"
)

// MockTaskPicker is a test double for ai.TaskPicker.
// It allows custom behavior injection via function fields.
type MockTaskPicker struct {
	// PickTasksFunc is called by PickTasks if set.
	// If nil, uses default word-overlap selection.
	PickTasksFunc func(ctx context.Context, request string, candidates []core.Task) ([]ai.PickedTask, error)

	callCount int
}

// NewMockTaskPicker creates a mock task picker with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockPicker().
func NewMockTaskPicker() *MockTaskPicker {
	return &MockTaskPicker{}
}

// PickTasks selects candidates whose text shares words with the request.
// Default behavior: a candidate is picked when at least one request word
// appears in its text, scored by how many words match.
func (m *MockTaskPicker) PickTasks(ctx context.Context, request string, candidates []core.Task) ([]ai.PickedTask, error) {
	m.callCount++

	if m.PickTasksFunc != nil {
		return m.PickTasksFunc(ctx, request, candidates)
	}

	words := strings.Fields(strings.ToLower(request))
	if len(words) == 0 {
		return []ai.PickedTask{}, nil
	}

	picks := make([]ai.PickedTask, 0, len(candidates))
	for _, task := range candidates {
		text := strings.ToLower(task.Text)

		matched := 0
		for _, word := range words {
			word = strings.Trim(word, ".,!?;:\"'()[]{}")
			if word != "" && strings.Contains(text, word) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		// Scale the match count into the 1-10 relevance range
		relevance := 5 + matched
		if relevance > 10 {
			relevance = 10
		}

		picks = append(picks, ai.PickedTask{
			TaskID:    task.ID,
			Relevance: relevance,
		})
	}

	return picks, nil
}

// CallCount returns the number of times PickTasks was called.
func (m *MockTaskPicker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTaskPicker) Reset() {
	m.callCount = 0
	m.PickTasksFunc = nil
}
