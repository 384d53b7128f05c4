package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSpecHasInclusions(t *testing.T) {
	assert.False(t, FilterSpec{}.HasInclusions())
	assert.True(t, FilterSpec{Folders: []string{"Work"}}.HasInclusions())
	assert.True(t, FilterSpec{TaskTags: []string{"urgent"}}.HasInclusions())

	// Exclusions alone do not count as inclusions
	assert.False(t, FilterSpec{ExcludeFolders: []string{"Archive"}}.HasInclusions())
}

func TestFilterSpecHasExclusions(t *testing.T) {
	assert.False(t, FilterSpec{}.HasExclusions())
	assert.True(t, FilterSpec{ExcludeNotes: []string{"scratch.md"}}.HasExclusions())
	assert.True(t, FilterSpec{ExcludeNoteTags: []string{"archive"}}.HasExclusions())
}

func TestPriorityFilterIsZero(t *testing.T) {
	assert.True(t, PriorityFilter{}.IsZero())
	assert.False(t, PriorityFilter{Any: true}.IsZero())
	assert.False(t, PriorityFilter{None: true}.IsZero())
	assert.False(t, PriorityFilter{Values: []int{1}}.IsZero())
}

func TestDateRangeIsZero(t *testing.T) {
	assert.True(t, DateRange{}.IsZero())
	assert.False(t, DateRange{Start: "2025-01-01"}.IsZero())
	assert.False(t, DateRange{End: "2025-01-31"}.IsZero())
}
