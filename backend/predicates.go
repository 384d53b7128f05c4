package backend

import (
	"strings"

	"github.com/poiesic/tasklens/core"
)

// Predicate helpers shared by both backend grammars and by the post-query
// exclusion pass. Keeping them in one place is what guarantees identical
// membership whether exclusions are folded into the compiled query or
// applied afterwards.

// PathInFolder reports whether a document path lives under a folder prefix.
// A trailing separator on the folder is optional.
func PathInFolder(path, folder string) bool {
	folder = strings.TrimSuffix(folder, "/")
	if folder == "" {
		return true
	}
	return path == folder || strings.HasPrefix(path, folder+"/")
}

// PathMatchesNote reports whether a document path names a specific note.
// The note may be given as a full path or a bare name, with or without the
// ".md" extension.
func PathMatchesNote(path, note string) bool {
	trim := func(s string) string { return strings.TrimSuffix(s, ".md") }
	if trim(path) == trim(note) {
		return true
	}
	base := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		base = path[idx+1:]
	}
	return trim(base) == trim(note)
}

// TagsContain reports whether a '#'-stripped tag set contains the given tag,
// case-sensitive after stripping.
func TagsContain(tags []string, tag string) bool {
	want := core.NormalizeTag(tag)
	for _, t := range tags {
		if core.NormalizeTag(t) == want {
			return true
		}
	}
	return false
}

// MatchesExclusion reports whether a record is removed by any exclusion
// clause of the spec. noteTags are the tags of the record's containing
// document. Exclusions always take precedence over inclusions.
func MatchesExclusion(rec RawRecord, noteTags []string, spec core.FilterSpec) bool {
	for _, folder := range spec.ExcludeFolders {
		if PathInFolder(rec.Path, folder) {
			return true
		}
	}
	for _, note := range spec.ExcludeNotes {
		if PathMatchesNote(rec.Path, note) {
			return true
		}
	}
	for _, tag := range spec.ExcludeNoteTags {
		if TagsContain(noteTags, tag) {
			return true
		}
	}
	for _, tag := range spec.ExcludeTaskTags {
		if TagsContain(rec.Tags, tag) {
			return true
		}
	}
	return false
}
