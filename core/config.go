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


package core

import "strings"

// StatusCategory groups raw status symbols under a user-configurable key.
// A category is matched by its key or any of its aliases, normalized with
// NormalizeCategoryToken.
type StatusCategory struct {
	// Key identifies the category, e.g. "open" or "in-progress".
	Key string
	// Symbols are the raw checkbox symbols belonging to this category.
	Symbols []string
	// Aliases are alternative names accepted in status filters.
	Aliases []string
}

// FieldNames holds the user-configured custom property names checked by the
// field-resolution cascade before the generic inline-field bag.
type FieldNames struct {
	Status    string
	Priority  string
	Due       string
	Created   string
	Completed string
}

// For returns the configured custom name for a logical field, empty when the
// field has none.
func (n FieldNames) For(field Field) string {
	switch field {
	case FieldStatus:
		return n.Status
	case FieldPriority:
		return n.Priority
	case FieldDue:
		return n.Due
	case FieldCreated:
		return n.Created
	case FieldCompleted:
		return n.Completed
	}
	return ""
}

// Config is the read-only configuration consumed at the start of each query.
// It is an explicit value threaded into every call that needs it; the engine
// never mutates it, and there is no process-global registry behind it.
type Config struct {
	// StatusCategories maps symbols to category keys. Order matters only for
	// presentation; symbol lookup takes the first category listing it.
	StatusCategories []StatusCategory
	// DefaultCategory is assigned to symbols no category lists. It must name
	// one of the configured categories.
	DefaultCategory string

	// FieldNames are the custom property names for the resolution cascade.
	FieldNames FieldNames

	// Global exclusion lists merged into every FilterSpec's exclusions.
	ExcludeFolders  []string
	ExcludeNotes    []string
	ExcludeNoteTags []string
	ExcludeTaskTags []string

	// DateFormat is the reference layout for parsing user-written dates.
	DateFormat string

	// BackendPreference selects the indexing backend: "auto", "memindex"
	// or "badgerindex".
	BackendPreference string
}

// DefaultConfig returns the configuration used when the host supplies none.
func DefaultConfig() Config {
	return Config{
		StatusCategories: []StatusCategory{
			{Key: "open", Symbols: []string{" "}, Aliases: []string{"todo", "incomplete"}},
			{Key: "in-progress", Symbols: []string{"/"}, Aliases: []string{"doing", "wip"}},
			{Key: "completed", Symbols: []string{"x", "X"}, Aliases: []string{"done", "complete"}},
			{Key: "cancelled", Symbols: []string{"-"}, Aliases: []string{"dropped"}},
		},
		DefaultCategory: "open",
		FieldNames: FieldNames{
			Priority:  "priority",
			Due:       "due",
			Created:   "created",
			Completed: "completion",
		},
		DateFormat:        "2006-01-02",
		BackendPreference: "auto",
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if len(c.StatusCategories) == 0 {
		return ErrNoStatusCategories
	}
	if c.DefaultCategory == "" {
		return ErrNoDefaultCategory
	}
	for _, cat := range c.StatusCategories {
		if cat.Key == c.DefaultCategory {
			return nil
		}
	}
	return ErrUnknownDefaultCategory
}

// CategoryForSymbol returns the category key for a raw status symbol,
// falling back to the default category for unknown symbols. The result is
// never empty when the config is valid.
func (c Config) CategoryForSymbol(symbol string) string {
	for _, cat := range c.StatusCategories {
		for _, s := range cat.Symbols {
			if s == symbol {
				return cat.Key
			}
		}
	}
	return c.DefaultCategory
}

// CategoryByToken looks up a category by key or alias. The token is
// normalized with NormalizeCategoryToken before comparison.
func (c Config) CategoryByToken(token string) (StatusCategory, bool) {
	norm := NormalizeCategoryToken(token)
	for _, cat := range c.StatusCategories {
		if NormalizeCategoryToken(cat.Key) == norm {
			return cat, true
		}
		for _, alias := range cat.Aliases {
			if NormalizeCategoryToken(alias) == norm {
				return cat, true
			}
		}
	}
	return StatusCategory{}, false
}

// NormalizeCategoryToken lower-cases a category key or alias and strips
// hyphens, underscores and whitespace, so "In Progress", "in-progress" and
// "in_progress" all compare equal.
func NormalizeCategoryToken(token string) string {
	token = strings.ToLower(token)
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '\t':
			return -1
		}
		return r
	}, token)
}
