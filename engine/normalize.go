package engine

import (
	"fmt"

	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
)

// normalize converts one raw backend record into the canonical Task entity.
// Records that are not valid tasks are rejected, not errored. The ordinal is
// the record's index within the surviving result set; it is part of the ID
// so two tasks with the same path, line and text prefix still get distinct
// IDs.
func (e *Engine) normalize(b backend.Backend, rec backend.RawRecord, ordinal int, pageTags map[string][]string) (core.Task, bool) {
	if !b.IsValidRecord(rec) {
		return core.Task{}, false
	}

	status, _ := e.resolver.Status(b, rec)
	task := core.Task{
		ID:             makeTaskID(b.Name(), rec, ordinal),
		Text:           rec.Text,
		OriginalText:   rec.Text,
		Status:         status,
		StatusCategory: e.cfg.CategoryForSymbol(status),
		SourcePath:     rec.Path,
		Folder:         core.FolderOf(rec.Path),
		LineNumber:     rec.Line,
	}

	if v, ok := e.resolver.Date(b, rec, core.FieldDue); ok {
		task.DueDate = v
	}
	if v, ok := e.resolver.Date(b, rec, core.FieldCreated); ok {
		task.CreatedDate = v
	}
	if v, ok := e.resolver.Date(b, rec, core.FieldCompleted); ok {
		task.CompletedDate = v
	}
	if p, ok := e.resolver.Priority(b, rec); ok {
		task.Priority = &p
	}

	if len(rec.Tags) > 0 {
		tags := make([]string, 0, len(rec.Tags))
		for _, tag := range rec.Tags {
			tags = append(tags, core.NormalizeTag(tag))
		}
		task.Tags = tags
	}
	if noteTags := pageTags[rec.Path]; len(noteTags) > 0 {
		task.NoteTags = append([]string(nil), noteTags...)
	}

	return task, true
}

// makeTaskID derives the deterministic task ID: backend prefix, source
// path, line number, the first 20 characters of the text, and the ordinal
// index within the result set.
func makeTaskID(prefix string, rec backend.RawRecord, ordinal int) string {
	text := rec.Text
	if runes := []rune(text); len(runes) > 20 {
		text = string(runes[:20])
	}
	return fmt.Sprintf("%s-%s-%d-%s-%d", prefix, rec.Path, rec.Line, text, ordinal)
}
