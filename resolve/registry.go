package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/tasklens/core"
)

// Priority ordinals. Lower means more urgent; the gap at 3 is historical and
// kept so ordinals written by older documents keep their meaning.
const (
	PriorityHighest = 0
	PriorityHigh    = 1
	PriorityMedium  = 2
	PriorityLow     = 4
	PriorityLowest  = 5

	// MissingPriorityRank is the sort rank of tasks without a priority:
	// one rank below the lowest explicit ordinal.
	MissingPriorityRank = PriorityLowest + 1
)

// priorityMarker binds a legacy emoji glyph to a priority ordinal.
type priorityMarker struct {
	Glyph   string
	Ordinal int
}

// priorityMarkers is the canonical marker table. Registry order is the tie
// break: when a text contains several glyphs, the first marker checked here
// wins, not the leftmost glyph in the text.
var priorityMarkers = []priorityMarker{
	{Glyph: "🔺", Ordinal: PriorityHighest},
	{Glyph: "⏫", Ordinal: PriorityHigh},
	{Glyph: "🔼", Ordinal: PriorityMedium},
	{Glyph: "🔽", Ordinal: PriorityLow},
	{Glyph: "⏬", Ordinal: PriorityLowest},
}

// priorityNames maps spelled-out priority values accepted in structured
// fields to ordinals.
var priorityNames = map[string]int{
	"highest": PriorityHighest,
	"high":    PriorityHigh,
	"medium":  PriorityMedium,
	"low":     PriorityLow,
	"lowest":  PriorityLowest,
}

// parsePriorityValue parses a structured priority value: an integer ordinal
// or a spelled-out level. Unrecognized tokens are absent, not errors.
func parsePriorityValue(raw string) (int, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < PriorityHighest || n > PriorityLowest {
			return 0, false
		}
		return n, true
	}
	n, ok := priorityNames[raw]
	return n, ok
}

// emojiDatePattern binds one legacy emoji shorthand to a date field. The
// capture group holds the candidate date substring, validated by parsing.
type emojiDatePattern struct {
	Field   core.Field
	Pattern *regexp.Regexp
}

// emojiDatePatterns is the fixed emoji registry for date shorthand.
var emojiDatePatterns = []emojiDatePattern{
	{Field: core.FieldDue, Pattern: regexp.MustCompile(`📅\s*(\d{4}-\d{2}-\d{2})`)},
	{Field: core.FieldDue, Pattern: regexp.MustCompile(`🗓️?\s*(\d{4}-\d{2}-\d{2})`)},
	{Field: core.FieldCompleted, Pattern: regexp.MustCompile(`✅\s*(\d{4}-\d{2}-\d{2})`)},
	{Field: core.FieldCreated, Pattern: regexp.MustCompile(`➕\s*(\d{4}-\d{2}-\d{2})`)},
}

// bracketFieldPattern matches inline [key::value] annotations.
var bracketFieldPattern = regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9_ -]*)::([^\]]*)\]`)

// InlineFields parses every [key::value] annotation in text into a bag with
// lower-cased keys. The first occurrence of a key wins.
func InlineFields(text string) map[string]string {
	matches := bracketFieldPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	bag := make(map[string]string, len(matches))
	for _, m := range matches {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		if _, ok := bag[key]; !ok {
			bag[key] = strings.TrimSpace(m[2])
		}
	}
	return bag
}

// canonicalKeys are the lower-cased inline keys accepted per logical field
// before the configured custom name is considered.
var canonicalKeys = map[core.Field][]string{
	core.FieldStatus:    {"status"},
	core.FieldPriority:  {"priority"},
	core.FieldDue:       {"due", "duedate"},
	core.FieldCreated:   {"created"},
	core.FieldCompleted: {"completed", "completion"},
}
