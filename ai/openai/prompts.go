package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/tasklens/core"
)

const selectionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "picked_tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "number": {
            "type": "integer",
            "minimum": 1
          },
          "relevance": {
            "type": "integer",
            "minimum": 1,
            "maximum": 10
          }
        },
        "required": ["number", "relevance"],
        "additionalProperties": false
      }
    }
  },
  "required": ["picked_tasks"],
  "additionalProperties": false
}`

const selectionPromptTemplate = `You are given a numbered list of tasks and a request. Select the tasks that answer the request and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "number" must be the task's number from the list. Never invent numbers that are not in the list.
- Relevance is an integer from 1 (barely related) to 10 (exactly what was asked for). Rate based on how directly the task satisfies the request.
- Include only tasks that genuinely match the request. Omitting a task is better than a low-confidence pick.
- Consider due dates, priorities, and tags shown next to each task when the request mentions timing or urgency.
- If no tasks match, return "picked_tasks": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Request: "what should I do for the website launch"
Tasks:
1. Write launch announcement (due: 2025-03-01, priority: high, tags: #website)
2. Water the plants
3. Fix homepage styling bug (tags: #website #bug)
Output:
{
  "picked_tasks": [
    {"number":1,"relevance":9},
    {"number":3,"relevance":8}
  ]
}`

// buildSystemPrompt creates the system prompt with the response schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(selectionPromptTemplate, selectionResponseSchema)
}

// buildUserPrompt formats the request and the numbered candidate list.
// Each candidate line carries the task text plus whatever date, priority,
// and tag context the task has.
func buildUserPrompt(request string, candidates []core.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request: %q\nTasks:\n", request)
	for i, task := range candidates {
		fmt.Fprintf(&b, "%d. %s", i+1, task.Text)

		var notes []string
		if task.DueDate != "" {
			notes = append(notes, "due: "+task.DueDate)
		}
		if task.Priority != nil {
			notes = append(notes, fmt.Sprintf("priority: %d", *task.Priority))
		}
		if len(task.Tags) > 0 {
			tags := make([]string, len(task.Tags))
			for j, tag := range task.Tags {
				tags[j] = "#" + tag
			}
			notes = append(notes, "tags: "+strings.Join(tags, " "))
		}
		if task.StatusCategory != "" {
			notes = append(notes, "status: "+task.StatusCategory)
		}
		if len(notes) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(notes, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
