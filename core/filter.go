package core

// Sentinel values accepted by property filters.
const (
	// FilterAll selects tasks where the property is present, regardless of
	// its value. "any" is accepted as an alias for due-date filters.
	FilterAll = "all"
	// FilterAny is an alias for FilterAll on due-date filters.
	FilterAny = "any"
	// FilterNone selects tasks where the property is absent.
	FilterNone = "none"
)

// Due-date keyword buckets. All comparisons are calendar-day granularity.
const (
	// DueToday matches tasks due on the current day.
	DueToday = "today"
	// DueTomorrow matches tasks due on the next day.
	DueTomorrow = "tomorrow"
	// DueOverdue matches tasks due strictly before the current day.
	DueOverdue = "overdue"
	// DueFuture matches tasks due strictly after the current day.
	DueFuture = "future"
	// DueWeek matches tasks due between today and today+7, inclusive.
	DueWeek = "week"
	// DueNextWeek matches tasks due between today+8 and today+14, inclusive.
	DueNextWeek = "next-week"
)

// PriorityFilter selects tasks by resolved priority. The zero value means
// "no priority filter". At most one of Any, None or Values should be set.
type PriorityFilter struct {
	// Any selects tasks with a resolvable priority ("all" sentinel).
	Any bool
	// None selects tasks without a priority ("none" sentinel).
	None bool
	// Values selects tasks whose resolved priority is in the set.
	Values []int
}

// IsZero reports whether the filter is unset.
func (f PriorityFilter) IsZero() bool {
	return !f.Any && !f.None && len(f.Values) == 0
}

// DueDateFilter selects tasks by due date. The zero value means "no due-date
// filter". Each value is either a keyword bucket (FilterAll, FilterAny,
// FilterNone, DueToday, DueTomorrow, DueOverdue, DueFuture, DueWeek,
// DueNextWeek) or an explicit "2006-01-02" date matched on the exact day.
// A task matches if it matches any one of the values.
type DueDateFilter struct {
	Values []string
}

// IsZero reports whether the filter is unset.
func (f DueDateFilter) IsZero() bool { return len(f.Values) == 0 }

// DateRange selects tasks whose due date falls between Start and End,
// inclusive on both ends. Start and End are each either an explicit
// "2006-01-02" date or one of the keywords DueToday / DueTomorrow. A task
// with no due date never matches a range. The zero value means "no filter".
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool { return r.Start == "" && r.End == "" }

// FilterSpec is the structured filter input to the engine, constructed by an
// upstream query parser and read-only here.
//
// Inclusion clauses across all four categories form one unioned disjunction:
// a record is included if any single inclusion clause matches. Exclusion
// clauses are independent: a record matching any exclusion clause is removed,
// even when it also matches an inclusion clause.
type FilterSpec struct {
	// Inclusion clauses (OR across all four categories combined).
	Folders  []string
	Notes    []string
	NoteTags []string
	TaskTags []string

	// Exclusion clauses (each one independently removes matches).
	ExcludeFolders  []string
	ExcludeNotes    []string
	ExcludeNoteTags []string
	ExcludeTaskTags []string

	// Property filters, applied after the backend query and combined
	// with AND.
	Priority     PriorityFilter
	DueDate      DueDateFilter
	DueDateRange DateRange
	// StatusValues holds raw status symbols or category keys/aliases.
	StatusValues []string
}

// HasInclusions reports whether any inclusion clause is set.
func (s FilterSpec) HasInclusions() bool {
	return len(s.Folders) > 0 || len(s.Notes) > 0 || len(s.NoteTags) > 0 || len(s.TaskTags) > 0
}

// HasExclusions reports whether any exclusion clause is set.
func (s FilterSpec) HasExclusions() bool {
	return len(s.ExcludeFolders) > 0 || len(s.ExcludeNotes) > 0 ||
		len(s.ExcludeNoteTags) > 0 || len(s.ExcludeTaskTags) > 0
}

// SortCriterion is one tie-break criterion for the multi-criteria sorter.
type SortCriterion string

const (
	// SortRelevance orders by an externally supplied score map, always
	// descending regardless of the global direction.
	SortRelevance SortCriterion = "relevance"
	// SortDueDate orders by due date.
	SortDueDate SortCriterion = "dueDate"
	// SortPriority orders by priority ordinal (lower = more urgent first).
	SortPriority SortCriterion = "priority"
	// SortCreated orders by creation date.
	SortCreated SortCriterion = "created"
	// SortAlphabetical orders by task text, locale-aware.
	SortAlphabetical SortCriterion = "alphabetical"
)

// SortSpec is the ordered tie-break specification for final result ordering.
type SortSpec struct {
	// Criteria are evaluated in order; the first non-tie decides a pair.
	Criteria []SortCriterion
	// Descending flips every non-relevance criterion. Relevance is always
	// descending by score.
	Descending bool
	// Scores maps Task.ID to an externally computed relevance score.
	// Required only when Criteria contains SortRelevance; missing entries
	// default to zero.
	Scores map[string]float64
}
