package search

import (
	"strings"

	"github.com/poiesic/tasklens/core"
)

// Stop words to filter out when matching query terms
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// Full-phrase matches are worth more than partial term overlap.
const phraseBoost = 0.5

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// taskWordSet builds the lookup set of words a task can match against.
// Tags count as words so a query like "urgent" hits #urgent-tagged tasks.
func taskWordSet(task core.Task) map[string]bool {
	words := tokenizeAndFilter(task.Text)
	set := make(map[string]bool, len(words)+len(task.Tags))
	for _, word := range words {
		set[word] = true
	}
	for _, tag := range task.Tags {
		set[strings.ToLower(tag)] = true
	}
	return set
}

// scoreTask rates how well a task matches the query words.
// The base score is the fraction of query words found in the task;
// a task containing every query word gets the phrase boost on top.
// Returns 0 when nothing matches.
func scoreTask(task core.Task, queryWords []string) float64 {
	if len(queryWords) == 0 {
		return 0
	}

	set := taskWordSet(task)
	matched := 0
	for _, qWord := range queryWords {
		if set[qWord] {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}

	score := float64(matched) / float64(len(queryWords))
	if matched == len(queryWords) {
		score += phraseBoost
	}
	return score
}
