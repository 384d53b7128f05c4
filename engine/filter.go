package engine

import (
	"strings"
	"time"

	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
)

// The post-query filter pipeline evaluates the property filters the backend
// query grammars cannot express, directly against raw records. All
// configured sub-filters combine with AND.

// applyPropertyFilters keeps the records satisfying every configured
// property filter of the spec.
func (e *Engine) applyPropertyFilters(b backend.Backend, records []backend.RawRecord, spec core.FilterSpec) []backend.RawRecord {
	if spec.Priority.IsZero() && spec.DueDate.IsZero() && spec.DueDateRange.IsZero() && len(spec.StatusValues) == 0 {
		return records
	}

	today := e.today()
	out := records[:0:0]
	for _, rec := range records {
		if !e.matchesPriority(b, rec, spec.Priority) {
			continue
		}
		if !e.matchesStatus(b, rec, spec.StatusValues) {
			continue
		}
		if !e.matchesDueValues(b, rec, spec.DueDate, today) {
			continue
		}
		if !e.matchesDueRange(b, rec, spec.DueDateRange, today) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// today truncates the engine clock to the current calendar day. Every
// due-date comparison is day-granular, never timestamp-granular.
func (e *Engine) today() time.Time {
	now := e.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func isoDay(day time.Time, offsetDays int) string {
	return day.AddDate(0, 0, offsetDays).Format("2006-01-02")
}

func (e *Engine) matchesPriority(b backend.Backend, rec backend.RawRecord, f core.PriorityFilter) bool {
	if f.IsZero() {
		return true
	}
	p, ok := e.resolver.Priority(b, rec)
	switch {
	case f.Any:
		return ok
	case f.None:
		return !ok
	default:
		if !ok {
			return false
		}
		for _, want := range f.Values {
			if p == want {
				return true
			}
		}
		return false
	}
}

// matchesStatus matches each target token two ways: exact raw symbol
// equality, or category key/alias equality after normalization, in which
// case the record's symbol must belong to that category's symbol set.
func (e *Engine) matchesStatus(b backend.Backend, rec backend.RawRecord, targets []string) bool {
	if len(targets) == 0 {
		return true
	}
	symbol, _ := e.resolver.Status(b, rec)
	for _, target := range targets {
		if target == symbol {
			return true
		}
		cat, ok := e.cfg.CategoryByToken(target)
		if !ok {
			continue
		}
		for _, s := range cat.Symbols {
			if s == symbol {
				return true
			}
		}
	}
	return false
}

func (e *Engine) matchesDueValues(b backend.Backend, rec backend.RawRecord, f core.DueDateFilter, today time.Time) bool {
	if f.IsZero() {
		return true
	}
	due, has := e.resolver.Date(b, rec, core.FieldDue)
	for _, value := range f.Values {
		if e.matchesDueBucket(value, due, has, today) {
			return true
		}
	}
	return false
}

// matchesDueBucket evaluates one due-date keyword bucket or explicit date.
// ISO date strings compare lexicographically in calendar order.
func (e *Engine) matchesDueBucket(value, due string, has bool, today time.Time) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case core.FilterAll, core.FilterAny:
		return has
	case core.FilterNone:
		return !has
	case core.DueToday:
		return has && due == isoDay(today, 0)
	case core.DueTomorrow:
		return has && due == isoDay(today, 1)
	case core.DueOverdue:
		return has && due < isoDay(today, 0)
	case core.DueFuture:
		return has && due > isoDay(today, 0)
	case core.DueWeek:
		return has && due >= isoDay(today, 0) && due <= isoDay(today, 7)
	case core.DueNextWeek:
		return has && due >= isoDay(today, 8) && due <= isoDay(today, 14)
	default:
		want, ok := e.resolveDayToken(value, today)
		if !ok {
			return false
		}
		return has && due == want
	}
}

// matchesDueRange evaluates the inclusive due-date range. A record without
// a due date never matches; an unresolvable bound leaves that side open.
func (e *Engine) matchesDueRange(b backend.Backend, rec backend.RawRecord, r core.DateRange, today time.Time) bool {
	if r.IsZero() {
		return true
	}
	due, has := e.resolver.Date(b, rec, core.FieldDue)
	if !has {
		return false
	}
	if r.Start != "" {
		if start, ok := e.resolveDayToken(r.Start, today); ok && due < start {
			return false
		}
	}
	if r.End != "" {
		if end, ok := e.resolveDayToken(r.End, today); ok && due > end {
			return false
		}
	}
	return true
}

// resolveDayToken turns a range bound or explicit filter value into an ISO
// day: the keywords today/tomorrow, or a date in the configured format.
func (e *Engine) resolveDayToken(value string, today time.Time) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case core.DueToday:
		return isoDay(today, 0), true
	case core.DueTomorrow:
		return isoDay(today, 1), true
	}
	layout := e.cfg.DateFormat
	if layout == "" {
		layout = "2006-01-02"
	}
	if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
		return t.Format("2006-01-02"), true
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(value)); err == nil {
		return t.Format("2006-01-02"), true
	}
	return "", false
}
