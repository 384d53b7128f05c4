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


package memindex

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/resolve"
	"github.com/poiesic/tasklens/vault"
)

// Name is the backend identifier, also used as the task ID prefix.
const Name = "memindex"

// Index is the in-memory indexing backend. It holds a fully materialized
// snapshot of the corpus and extracts typed task properties at index time,
// so its raw records carry strongly typed fields the resolution cascade
// finds on its first strategy.
//
// An Index is not available until Build has run once. Queries and rebuilds
// may interleave; a build swaps the whole snapshot under the lock.
type Index struct {
	mu       sync.RWMutex
	records  []backend.RawRecord
	pages    []backend.Page
	pageTags map[string][]string
	ready    bool

	logger *slog.Logger
}

var _ backend.Backend = (*Index)(nil)

// Option configures an Index.
type Option func(*Index)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
	}
}

// New creates an empty, not-yet-available index.
func New(opts ...Option) *Index {
	ix := &Index{logger: slog.Default()}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Name returns the backend identifier.
func (ix *Index) Name() string { return Name }

// Available reports whether a snapshot has been built.
func (ix *Index) Available() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.ready
}

// FoldsExclusions reports that this backend embeds exclusion clauses into
// its compiled query string.
func (ix *Index) FoldsExclusions() bool { return true }

// Build indexes a vault snapshot, replacing any previous snapshot. Typed
// properties (status, dates, priority) are extracted from each task line now
// so queries read them without re-scanning text.
func (ix *Index) Build(ctx context.Context, docs []vault.Document, cfg core.Config) error {
	resolver := resolve.New(cfg)

	records := make([]backend.RawRecord, 0, len(docs))
	pages := make([]backend.Page, 0, len(docs))
	pageTags := make(map[string][]string, len(docs))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		pages = append(pages, backend.Page{Path: doc.Path, Tags: doc.Tags})
		pageTags[doc.Path] = doc.Tags

		for _, line := range doc.Tasks {
			typed := map[core.Field]string{
				core.FieldStatus: line.Symbol,
			}
			for _, f := range []core.Field{core.FieldDue, core.FieldCreated, core.FieldCompleted} {
				if v, ok := resolver.ExtractDate(line.Text, f); ok {
					typed[f] = v
				}
			}
			if n, ok := resolver.ExtractPriority(line.Text); ok {
				typed[core.FieldPriority] = strconv.Itoa(n)
			}
			records = append(records, backend.RawRecord{
				Path:   doc.Path,
				Line:   line.Line,
				Symbol: line.Symbol,
				Text:   line.Text,
				Tags:   line.Tags,
				IsTask: true,
				Typed:  typed,
			})
		}
	}

	ix.mu.Lock()
	ix.records = records
	ix.pages = pages
	ix.pageTags = pageTags
	ix.ready = true
	ix.mu.Unlock()

	ix.logger.Debug("memindex built", "documents", len(pages), "tasks", len(records))
	return nil
}

// ExecuteQuery parses a compiled query and returns the matching records.
func (ix *Index) ExecuteQuery(ctx context.Context, query string) ([]backend.RawRecord, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.ready {
		return nil, backend.ErrNoBackend
	}

	pred, err := parseQuery(query, ix.pageTags)
	if err != nil {
		return nil, err
	}

	var matched []backend.RawRecord
	for _, rec := range ix.records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if pred(rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// ExecutePageQuery returns all document-level records.
func (ix *Index) ExecutePageQuery(ctx context.Context) ([]backend.Page, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.ready {
		return nil, backend.ErrNoBackend
	}
	pages := make([]backend.Page, len(ix.pages))
	copy(pages, ix.pages)
	return pages, nil
}

// IsValidRecord accepts records this backend explicitly typed as tasks, or,
// absent typing, records exposing a status symbol.
func (ix *Index) IsValidRecord(rec backend.RawRecord) bool {
	return rec.IsTask || rec.Symbol != ""
}

// ExtractField returns the typed property indexed for a logical field.
func (ix *Index) ExtractField(rec backend.RawRecord, field core.Field) (string, bool) {
	if rec.Typed == nil {
		return "", false
	}
	v, ok := rec.Typed[field]
	return v, ok
}
