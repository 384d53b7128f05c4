package badgerindex

import (
	"fmt"
	"strings"

	"github.com/poiesic/tasklens/core"
)

// CompileQuery translates a FilterSpec into the keyword grammar, e.g.
//
//	TASK AND (FROM "Work" OR TAG #urgent)
//
// Only inclusion clauses compile; the grammar supports NOT, but this backend
// leaves exclusion enforcement to the caller's post-query pass so a single
// index scan serves the query. Inclusion predicates across all four
// categories join into one parenthesized OR group; with no inclusion clause
// the group is omitted entirely, never emitted as empty parentheses.
func (s *Store) CompileQuery(spec core.FilterSpec, cfg core.Config) string {
	var incl []string
	for _, folder := range spec.Folders {
		incl = append(incl, fmt.Sprintf("FROM %q", folder))
	}
	for _, note := range spec.Notes {
		incl = append(incl, fmt.Sprintf("NOTE %q", note))
	}
	for _, tag := range spec.NoteTags {
		incl = append(incl, "PAGETAG #"+core.NormalizeTag(tag))
	}
	for _, tag := range spec.TaskTags {
		incl = append(incl, "TAG #"+core.NormalizeTag(tag))
	}

	if len(incl) == 0 {
		return "TASK"
	}
	return "TASK AND (" + strings.Join(incl, " OR ") + ")"
}
