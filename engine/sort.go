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


package engine

import (
	"sort"
	"strings"

	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/resolve"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortTasks orders tasks by the spec's criteria, criterion by criterion:
// the first criterion with a non-zero comparison decides each pair, and the
// sort is stable so full ties keep their input order.
//
// An empty criteria list, or a list consisting of relevance alone, is a
// no-op: callers use it to mean "already ordered". Relevance is always
// descending by the external score map regardless of the direction flag;
// every other criterion respects it.
func SortTasks(tasks []core.Task, spec core.SortSpec) []core.Task {
	if len(spec.Criteria) == 0 ||
		(len(spec.Criteria) == 1 && spec.Criteria[0] == core.SortRelevance) {
		return tasks
	}

	out := append([]core.Task(nil), tasks...)
	coll := collate.New(language.Und)
	dir := 1
	if spec.Descending {
		dir = -1
	}

	sort.SliceStable(out, func(i, j int) bool {
		return compareTasks(out[i], out[j], spec, coll, dir) < 0
	})
	return out
}

func compareTasks(a, b core.Task, spec core.SortSpec, coll *collate.Collator, dir int) int {
	for _, criterion := range spec.Criteria {
		var cmp int
		switch criterion {
		case core.SortRelevance:
			sa, sb := spec.Scores[a.ID], spec.Scores[b.ID]
			switch {
			case sa > sb:
				cmp = -1
			case sa < sb:
				cmp = 1
			}
		case core.SortDueDate:
			cmp = dir * compareDates(a.DueDate, b.DueDate)
		case core.SortCreated:
			cmp = dir * compareDates(a.CreatedDate, b.CreatedDate)
		case core.SortPriority:
			cmp = dir * comparePriorities(a.Priority, b.Priority)
		case core.SortAlphabetical:
			cmp = dir * coll.CompareString(a.Text, b.Text)
		}
		if cmp != 0 {
			return cmp
		}
	}
	return 0
}

// compareDates compares ISO date strings. A missing date sorts after every
// present date (before, under a descending direction); two missing dates
// tie.
func compareDates(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(a, b)
}

// comparePriorities compares ordinals ascending (lower = more urgent
// first). Missing priority ranks one below the lowest explicit ordinal.
func comparePriorities(a, b *int) int {
	ra, rb := priorityRank(a), priorityRank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}

func priorityRank(p *int) int {
	if p == nil {
		return resolve.MissingPriorityRank
	}
	return *p
}
