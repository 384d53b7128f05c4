package mock

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/tasklens/ai"
	"github.com/poiesic/tasklens/core"
)

func TestMockTaskPickerDefaultBehavior(t *testing.T) {
	picker := NewMockTaskPicker()
	candidates := []core.Task{
		{ID: "t1", Text: "Draft quarterly report"},
		{ID: "t2", Text: "Water the plants"},
		{ID: "t3", Text: "Review the report draft"},
	}

	picks, err := picker.PickTasks(context.Background(), "report draft", candidates)
	require.NoError(t, err)
	require.Len(t, picks, 2)

	byID := make(map[string]int, len(picks))
	for _, p := range picks {
		byID[p.TaskID] = p.Relevance
	}
	assert.Equal(t, 7, byID["t1"], "two matched words")
	assert.Equal(t, 7, byID["t3"])
	assert.NotContains(t, byID, "t2")
}

func TestMockTaskPickerEmptyRequest(t *testing.T) {
	picker := NewMockTaskPicker()

	picks, err := picker.PickTasks(context.Background(), "", []core.Task{{ID: "t1", Text: "anything"}})
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestMockTaskPickerRelevanceCap(t *testing.T) {
	picker := NewMockTaskPicker()
	candidates := []core.Task{
		{ID: "t1", Text: "one two three four five six seven"},
	}

	picks, err := picker.PickTasks(context.Background(), "one two three four five six seven", candidates)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, 10, picks[0].Relevance)
}

func TestMockTaskPickerInjection(t *testing.T) {
	picker := NewMockTaskPicker()
	picker.PickTasksFunc = func(context.Context, string, []core.Task) ([]ai.PickedTask, error) {
		return nil, fmt.Errorf("injected failure")
	}

	_, err := picker.PickTasks(context.Background(), "anything", nil)
	assert.ErrorContains(t, err, "injected failure")
	assert.Equal(t, 1, picker.CallCount())

	picker.Reset()
	assert.Zero(t, picker.CallCount())
	assert.Nil(t, picker.PickTasksFunc)
}

func TestMockProvider(t *testing.T) {
	provider := NewMockProvider()
	require.NotNil(t, provider.TaskPicker())
	assert.NoError(t, provider.Close())

	concrete, ok := provider.(*MockProvider)
	require.True(t, ok)
	assert.Same(t, concrete.GetMockPicker(), provider.TaskPicker())
}
