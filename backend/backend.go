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


package backend

import (
	"context"

	"github.com/poiesic/tasklens/core"
)

// RawRecord is one record as shaped by an indexing backend, before
// normalization into a core.Task. The populated parts differ per backend:
// memindex fills Typed with strongly typed properties, badgerindex exposes
// only the text and the inline-field bag.
type RawRecord struct {
	// Path is the source document path within the corpus.
	Path string
	// Line is the 1-based line number of the task within the document.
	Line int
	// Symbol is the raw checkbox status symbol, empty when absent.
	Symbol string
	// Text is the raw task content after the checkbox.
	Text string
	// Tags are task-level tags found on the task line, '#'-stripped.
	Tags []string

	// IsTask marks records the backend explicitly typed as tasks. Records
	// without explicit typing are still valid when Symbol is non-empty.
	IsTask bool

	// Typed holds backend-native strongly typed properties keyed by logical
	// field. Checked first by the resolution cascade.
	Typed map[core.Field]string
	// Props holds direct record properties keyed by user-visible name,
	// matched against configured custom field names.
	Props map[string]string
	// Fields is the generic inline-field bag, keys lower-cased.
	Fields map[string]string
}

// Page is one document-level record, used to resolve note tags for tasks.
type Page struct {
	// Path is the document path within the corpus.
	Path string
	// Tags are document-level tags, '#'-stripped.
	Tags []string
}

// Backend is the common contract over the two indexing backends. One
// interface with two variant implementations keeps the orchestrator, filter
// pipeline and sorter backend-agnostic.
type Backend interface {
	// Name returns the backend identifier, also used as the ID prefix of
	// normalized tasks.
	Name() string

	// Available reports whether the backend is ready to serve queries.
	Available() bool

	// CompileQuery translates a FilterSpec into this backend's native query
	// grammar. When FoldsExclusions reports false, the compiled query covers
	// inclusions only and the caller must enforce exclusions post-query.
	CompileQuery(spec core.FilterSpec, cfg core.Config) string

	// ExecuteQuery runs a compiled query and returns raw records. It fails
	// on malformed query strings or when the backend is unavailable.
	ExecuteQuery(ctx context.Context, query string) ([]RawRecord, error)

	// ExecutePageQuery returns all document-level records, used to resolve
	// the tags of each task's containing document.
	ExecutePageQuery(ctx context.Context) ([]Page, error)

	// FoldsExclusions reports whether CompileQuery embeds exclusion clauses
	// into the query string. Either way the final membership for a given
	// FilterSpec must be identical across backends.
	FoldsExclusions() bool

	// IsValidRecord reports whether a raw record is a task: explicitly typed
	// as one, or carrying a status symbol.
	IsValidRecord(rec RawRecord) bool

	// ExtractField returns the backend-native typed value for a logical
	// field, when the backend indexed one. This is the first strategy of the
	// field-resolution cascade; later strategies read the record directly.
	ExtractField(rec RawRecord, field core.Field) (string, bool)
}
