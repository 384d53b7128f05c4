package memindex

import (
	"fmt"
	"strings"

	"github.com/poiesic/tasklens/core"
)

// CompileQuery translates a FilterSpec into the functional predicate
// grammar, e.g.
//
//	tasks() and !path("Archive") and (path("Work") or tag("urgent"))
//
// Exclusions become negated conjuncts; all inclusion predicates across the
// four categories join into one parenthesized disjunction. When no inclusion
// clause exists the group is omitted entirely, never emitted as empty
// parentheses.
func (ix *Index) CompileQuery(spec core.FilterSpec, cfg core.Config) string {
	var b strings.Builder
	b.WriteString("tasks()")

	for _, folder := range spec.ExcludeFolders {
		fmt.Fprintf(&b, " and !path(%q)", folder)
	}
	for _, note := range spec.ExcludeNotes {
		fmt.Fprintf(&b, " and !note(%q)", note)
	}
	for _, tag := range spec.ExcludeNoteTags {
		fmt.Fprintf(&b, " and !pagetag(%q)", core.NormalizeTag(tag))
	}
	for _, tag := range spec.ExcludeTaskTags {
		fmt.Fprintf(&b, " and !tag(%q)", core.NormalizeTag(tag))
	}

	var incl []string
	for _, folder := range spec.Folders {
		incl = append(incl, fmt.Sprintf("path(%q)", folder))
	}
	for _, note := range spec.Notes {
		incl = append(incl, fmt.Sprintf("note(%q)", note))
	}
	for _, tag := range spec.NoteTags {
		incl = append(incl, fmt.Sprintf("pagetag(%q)", core.NormalizeTag(tag)))
	}
	for _, tag := range spec.TaskTags {
		incl = append(incl, fmt.Sprintf("tag(%q)", core.NormalizeTag(tag)))
	}
	if len(incl) > 0 {
		b.WriteString(" and (")
		b.WriteString(strings.Join(incl, " or "))
		b.WriteString(")")
	}

	return b.String()
}
