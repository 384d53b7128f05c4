package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/resolve"
)

// Engine is the task query orchestrator. Given a FilterSpec it drives
// backend selection, query compilation, the backend call, the post-query
// filter pipeline, normalization and sorting, and returns a deterministic
// ordered Task collection.
//
// An Engine holds no mutable state between calls; callers may issue queries
// concurrently. Every failure path degrades to fewer or zero results rather
// than an error reaching the caller: an unavailable backend or a failed
// backend call yields an empty result and a logged warning.
type Engine struct {
	selector *backend.Selector
	cfg      core.Config
	resolver *resolve.Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithClock sets the time source used for the calendar-day buckets of
// due-date filters. Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		if now == nil {
			now = time.Now
		}
		e.now = now
		return nil
	}
}

// New creates an engine over a backend selector and a configuration value.
// The config is validated once here and read-only afterwards.
func New(selector *backend.Selector, cfg core.Config, opts ...Option) (*Engine, error) {
	if selector == nil {
		return nil, ErrSelectorRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		selector: selector,
		cfg:      cfg,
		resolver: resolve.New(cfg),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Config returns the engine's configuration value.
func (e *Engine) Config() core.Config { return e.cfg }

// Selector returns the engine's backend selector.
func (e *Engine) Selector() *backend.Selector { return e.selector }

// Query retrieves, filters, normalizes and sorts the tasks matching the
// spec. The returned slice is never nil.
func (e *Engine) Query(ctx context.Context, spec core.FilterSpec, sortSpec core.SortSpec) ([]core.Task, error) {
	return e.QueryWithMonitor(ctx, spec, sortSpec, nil)
}

// QueryWithMonitor is Query with stage callbacks for observability.
func (e *Engine) QueryWithMonitor(ctx context.Context, spec core.FilterSpec, sortSpec core.SortSpec, monitor QueryMonitor) ([]core.Task, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(spec)

	survivors, pageTags, active, err := e.retrieve(ctx, spec, monitor)
	if err != nil {
		return nil, err
	}
	if active == nil {
		monitor.Finish(nil)
		return []core.Task{}, nil
	}

	tasks := make([]core.Task, 0, len(survivors))
	for _, rec := range survivors {
		task, ok := e.normalize(active, rec, len(tasks), pageTags)
		if !ok {
			continue
		}
		tasks = append(tasks, task)
	}
	monitor.AfterNormalize(tasks)

	sorted := SortTasks(tasks, sortSpec)
	monitor.Finish(sorted)
	return sorted, nil
}

// Count returns only the number of records surviving the post-query filter
// pipeline, skipping Task construction entirely.
func (e *Engine) Count(ctx context.Context, spec core.FilterSpec) (int, error) {
	survivors, _, active, err := e.retrieve(ctx, spec, &noopMonitor{})
	if err != nil {
		return 0, err
	}
	if active == nil {
		return 0, nil
	}
	return len(survivors), nil
}

// retrieve runs the shared front half of a query: backend selection, query
// compilation, the backend call, the exclusion pass when the backend did
// not fold exclusions, the validity gate, and the property filter pipeline.
// A nil returned backend means the call degraded to zero results.
func (e *Engine) retrieve(ctx context.Context, spec core.FilterSpec, monitor QueryMonitor) ([]backend.RawRecord, map[string][]string, backend.Backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	active := e.selector.DetermineActive(backend.Preference(e.cfg.BackendPreference))
	if active == nil {
		e.logger.Warn("no task index backend available", "preference", e.cfg.BackendPreference)
		return nil, nil, nil, nil
	}
	monitor.BackendSelected(active.Name())

	merged := e.mergeConfigExclusions(spec)
	query := active.CompileQuery(merged, e.cfg)
	monitor.QueryCompiled(query)

	records, err := active.ExecuteQuery(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, nil, ctx.Err()
		}
		e.logger.Warn("backend query failed", "backend", active.Name(), "err", err)
		return nil, nil, nil, nil
	}
	monitor.AfterExecute(len(records))

	pages, err := active.ExecutePageQuery(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, nil, ctx.Err()
		}
		e.logger.Warn("page query failed, note tags unavailable", "backend", active.Name(), "err", err)
	}
	pageTags := make(map[string][]string, len(pages))
	for _, page := range pages {
		pageTags[page.Path] = page.Tags
	}

	valid := records[:0:0]
	for _, rec := range records {
		if !active.IsValidRecord(rec) {
			continue
		}
		if !active.FoldsExclusions() && backend.MatchesExclusion(rec, pageTags[rec.Path], merged) {
			continue
		}
		valid = append(valid, rec)
	}

	survivors := e.applyPropertyFilters(active, valid, spec)
	monitor.AfterFilter(len(survivors))
	return survivors, pageTags, active, nil
}

// mergeConfigExclusions folds the configured global exclusion lists into
// the spec's own exclusion clauses. Inclusions are left untouched.
func (e *Engine) mergeConfigExclusions(spec core.FilterSpec) core.FilterSpec {
	merged := spec
	merged.ExcludeFolders = appendUnique(spec.ExcludeFolders, e.cfg.ExcludeFolders)
	merged.ExcludeNotes = appendUnique(spec.ExcludeNotes, e.cfg.ExcludeNotes)
	merged.ExcludeNoteTags = appendUnique(spec.ExcludeNoteTags, e.cfg.ExcludeNoteTags)
	merged.ExcludeTaskTags = appendUnique(spec.ExcludeTaskTags, e.cfg.ExcludeTaskTags)
	return merged
}

func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	out := append([]string(nil), base...)
	for _, v := range extra {
		dup := false
		for _, have := range out {
			if have == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}
