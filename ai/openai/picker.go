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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/tasklens/ai"
	"github.com/poiesic/tasklens/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TaskPicker implements ai.TaskPicker using OpenAI-compatible chat APIs.
type TaskPicker struct {
	client        llms.Model
	minRelevance  int
	maxCandidates int
	logger        *slog.Logger
}

// pick is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type pick struct {
	Number    int `json:"number"`
	Relevance int `json:"relevance"`
}

// selection is the wrapper structure for the LLM's JSON response.
type selection struct {
	PickedTasks []pick `json:"picked_tasks"`
}

// newTaskPicker is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTaskPicker(config *ai.Config) (*TaskPicker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &TaskPicker{
		client:        client,
		minRelevance:  config.MinRelevance,
		maxCandidates: config.MaxCandidates,
		logger:        slog.Default().With("component", "openai-picker"),
	}, nil
}

// NewTaskPicker creates a new task picker using the provided configuration.
//
// Returns ai.TaskPicker interface to enforce abstraction.
func NewTaskPicker(config *ai.Config) (ai.TaskPicker, error) {
	return newTaskPicker(config)
}

// PickTasks asks the model which candidate tasks answer the request.
// Candidates beyond the configured cap are dropped before the call, and picks
// below the minimum relevance are filtered from the result.
func (p *TaskPicker) PickTasks(ctx context.Context, request string, candidates []core.Task) ([]ai.PickedTask, error) {
	request = scrubString(request)
	if request == "" || len(candidates) == 0 {
		return []ai.PickedTask{}, nil
	}

	if len(candidates) > p.maxCandidates {
		p.logger.Debug("truncating candidate set",
			"candidates", len(candidates),
			"cap", p.maxCandidates)
		candidates = candidates[:p.maxCandidates]
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(request, candidates)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result selection
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			p.logger.Debug("no choices returned from model")
			return []ai.PickedTask{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			p.logger.Warn("error parsing picker response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		p.logger.Error("failed to parse picker response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Map candidate numbers back to task IDs, filtering by relevance.
	// Out-of-range numbers and duplicates are discarded.
	seen := make(map[int]bool, len(result.PickedTasks))
	picked := make([]ai.PickedTask, 0, len(result.PickedTasks))
	for _, c := range result.PickedTasks {
		if c.Number < 1 || c.Number > len(candidates) || seen[c.Number] {
			continue
		}
		seen[c.Number] = true

		if c.Relevance < p.minRelevance {
			continue
		}
		picked = append(picked, ai.PickedTask{
			TaskID:    candidates[c.Number-1].ID,
			Relevance: c.Relevance,
		})
	}

	// Sort by relevance (descending)
	slices.SortFunc(picked, func(a, b ai.PickedTask) int {
		if a.Relevance == b.Relevance {
			return 0
		}
		if a.Relevance < b.Relevance {
			return 1
		}
		return -1
	})

	p.logger.Debug("picked tasks",
		"candidates", len(candidates),
		"raw", len(result.PickedTasks),
		"kept", len(picked))

	return picked, nil
}
