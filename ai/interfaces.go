package ai

import (
	"context"

	"github.com/poiesic/tasklens/core"
)

// TaskPicker selects the tasks most relevant to a natural-language request.
// Implementations must be thread-safe for concurrent use.
type TaskPicker interface {
	// PickTasks examines the candidate tasks and returns the ones relevant
	// to the request, each with a relevance score.
	// Candidates not worth surfacing are simply omitted from the result.
	// Returns an empty slice if nothing is relevant.
	// Returns an error if the underlying model call fails.
	PickTasks(ctx context.Context, request string, candidates []core.Task) ([]PickedTask, error)
}

// PickedTask identifies one selected task and how relevant the picker
// judged it to be.
type PickedTask struct {
	// TaskID is the ID of the selected task, matching core.Task.ID.
	TaskID string

	// Relevance is a score from 1-10 indicating how well the task matches
	// the request. Higher scores = more relevant.
	Relevance int
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages TaskPicker instances, ensuring
// they share configuration and resources appropriately.
type Provider interface {
	// TaskPicker returns the task selection service.
	// The returned TaskPicker is safe for concurrent use.
	TaskPicker() TaskPicker

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
