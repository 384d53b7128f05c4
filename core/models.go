package core

import "strings"

// Field names a logical task field resolved by the field-resolution cascade.
type Field string

const (
	// FieldStatus is the raw status symbol of a task.
	FieldStatus Field = "status"
	// FieldPriority is the ordinal priority of a task (lower = more urgent).
	FieldPriority Field = "priority"
	// FieldDue is the due date of a task.
	FieldDue Field = "due"
	// FieldCreated is the creation date of a task.
	FieldCreated Field = "created"
	// FieldCompleted is the completion date of a task.
	FieldCompleted Field = "completed"
)

// Task is the canonical task entity handed to downstream consumers.
// It is immutable once produced; the engine never mutates a Task after
// construction.
//
// Optional date fields hold an ISO date ("2006-01-02") or the empty string
// when the task has no value for that field. Priority is nil when the task
// has no resolvable priority.
type Task struct {
	// ID is derived from the backend prefix, source path, line number,
	// a truncated text prefix and the record's ordinal index within the
	// result set. It is unique within one query result even when the task
	// text is empty or duplicated. Two queries may assign different IDs to
	// the "same" task if its ordinal differs.
	ID string

	Text         string
	OriginalText string

	// Status is the raw backend status symbol, empty when none was found.
	Status string
	// StatusCategory is the configured category key for Status. It is never
	// empty: unknown symbols map to the configured default category.
	StatusCategory string

	CreatedDate   string
	DueDate       string
	CompletedDate string

	Priority *int

	// Tags are task-level tags as written on the task line.
	Tags []string
	// NoteTags are tags of the containing document. They are a distinct
	// namespace from Tags even though a backend may conflate the two.
	NoteTags []string

	SourcePath string
	Folder     string
	LineNumber int
}

// FolderOf derives the folder component of a source path: everything before
// the last path separator, or empty when the path has none.
func FolderOf(sourcePath string) string {
	idx := strings.LastIndex(sourcePath, "/")
	if idx < 0 {
		return ""
	}
	return sourcePath[:idx]
}

// NormalizeTag strips any leading '#' characters from a tag. Comparison is
// case-sensitive after stripping.
func NormalizeTag(tag string) string {
	return strings.TrimLeft(tag, "#")
}
