// Package memindex implements the in-memory indexing backend.
//
// It materializes a whole vault snapshot in memory, extracting typed task
// properties (status, dates, priority) at index time. Its query grammar is a
// small functional predicate language:
//
//	tasks() and !path("Archive") and (path("Work") or tag("urgent"))
//
// Exclusion clauses are folded into the compiled query; the engine performs
// no separate exclusion pass for this backend. memindex is the backend the
// "auto" preference picks first.
package memindex
