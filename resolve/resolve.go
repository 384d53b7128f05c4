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


package resolve

import (
	"strings"
	"time"

	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
)

// Resolver performs the per-record, multi-strategy lookup of logical task
// fields. The cascade is an explicit ordered list of typed accessor
// strategies; the first strategy returning a value wins. A field no strategy
// resolves is absent, never an error.
type Resolver struct {
	cfg core.Config
}

// New creates a resolver bound to a configuration value. The config is read
// on every call and never mutated.
func New(cfg core.Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// strategy is one accessor in the resolution cascade. It returns the raw
// string value for the field and whether it resolved.
type strategy func(rec backend.RawRecord, field core.Field) (string, bool)

// cascade returns the ordered strategy list for one backend:
//
//  1. backend-native typed property (strongly typed, unambiguous)
//  2. user-configured custom property name, as a direct record property
//  3. the generic inline-field bag
//  4. legacy emoji shorthand scanned in the raw text (date fields only)
//  5. bracketed [key::value] syntax scanned in the raw text
func (r *Resolver) cascade(b backend.Backend) []strategy {
	return []strategy{
		b.ExtractField,
		r.customProperty,
		r.inlineBag,
		r.emojiShorthand,
		r.bracketField,
	}
}

// Raw resolves the raw string value of a logical field without any
// field-specific validation.
func (r *Resolver) Raw(b backend.Backend, rec backend.RawRecord, field core.Field) (string, bool) {
	for _, s := range r.cascade(b) {
		if v, ok := s(rec, field); ok {
			return v, true
		}
	}
	return "", false
}

// Date resolves a date field and normalizes it to "2006-01-02". Unparsable
// values are treated as absent.
func (r *Resolver) Date(b backend.Backend, rec backend.RawRecord, field core.Field) (string, bool) {
	raw, ok := r.Raw(b, rec, field)
	if !ok {
		return "", false
	}
	return r.parseDate(raw)
}

// Status resolves the raw status symbol, falling back to the record's own
// checkbox symbol when no strategy yields one.
func (r *Resolver) Status(b backend.Backend, rec backend.RawRecord) (string, bool) {
	if v, ok := r.Raw(b, rec, core.FieldStatus); ok && v != "" {
		return v, true
	}
	if rec.Symbol != "" {
		return rec.Symbol, true
	}
	return "", false
}

// Priority resolves the ordinal priority. When no structured value exists
// anywhere in the cascade, the raw text is scanned for the priority marker
// glyphs; the first marker in the registry found anywhere in the text wins,
// regardless of glyph positions within the text.
func (r *Resolver) Priority(b backend.Backend, rec backend.RawRecord) (int, bool) {
	if raw, ok := r.Raw(b, rec, core.FieldPriority); ok {
		if n, ok := parsePriorityValue(raw); ok {
			return n, true
		}
		return 0, false
	}
	for _, marker := range priorityMarkers {
		if strings.Contains(rec.Text, marker.Glyph) {
			return marker.Ordinal, true
		}
	}
	return 0, false
}

// customProperty checks the configured custom field name as a direct record
// property.
func (r *Resolver) customProperty(rec backend.RawRecord, field core.Field) (string, bool) {
	name := r.cfg.FieldNames.For(field)
	if name == "" || rec.Props == nil {
		return "", false
	}
	v, ok := rec.Props[name]
	return v, ok
}

// inlineBag checks the generic inline-field bag under the canonical key
// names and the configured custom name, case-insensitive.
func (r *Resolver) inlineBag(rec backend.RawRecord, field core.Field) (string, bool) {
	if rec.Fields == nil {
		return "", false
	}
	for _, key := range r.keysFor(field) {
		if v, ok := rec.Fields[key]; ok {
			return v, true
		}
	}
	return "", false
}

// emojiShorthand scans the raw text for the legacy emoji date patterns.
// Only date fields carry shorthand. Captured substrings that do not parse as
// calendar dates are discarded and the scan continues with the next pattern.
func (r *Resolver) emojiShorthand(rec backend.RawRecord, field core.Field) (string, bool) {
	for _, pat := range emojiDatePatterns {
		if pat.Field != field {
			continue
		}
		m := pat.Pattern.FindStringSubmatch(rec.Text)
		if m == nil {
			continue
		}
		if iso, ok := r.parseDate(m[1]); ok {
			return iso, true
		}
	}
	return "", false
}

// bracketField scans the raw text for [key::value] annotations with a
// case-insensitive key match.
func (r *Resolver) bracketField(rec backend.RawRecord, field core.Field) (string, bool) {
	keys := r.keysFor(field)
	for _, m := range bracketFieldPattern.FindAllStringSubmatch(rec.Text, -1) {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		for _, want := range keys {
			if key == want {
				return strings.TrimSpace(m[2]), true
			}
		}
	}
	return "", false
}

// keysFor returns the lower-cased key names accepted for a field in the
// inline bag and bracket syntax.
func (r *Resolver) keysFor(field core.Field) []string {
	keys := canonicalKeys[field]
	if custom := r.cfg.FieldNames.For(field); custom != "" {
		custom = strings.ToLower(custom)
		found := false
		for _, k := range keys {
			if k == custom {
				found = true
				break
			}
		}
		if !found {
			keys = append(append([]string{}, keys...), custom)
		}
	}
	return keys
}

// ExtractDate resolves a date field from raw task text alone: emoji
// shorthand first, then bracket syntax. Backends that index typed
// properties use it at index time; query-time resolution then finds the
// value through the typed-property strategy.
func (r *Resolver) ExtractDate(text string, field core.Field) (string, bool) {
	rec := backend.RawRecord{Text: text}
	if v, ok := r.emojiShorthand(rec, field); ok {
		return v, true
	}
	if v, ok := r.bracketField(rec, field); ok {
		return r.parseDate(v)
	}
	return "", false
}

// ExtractPriority resolves a priority ordinal from raw task text alone:
// bracket syntax first, then the marker glyph registry.
func (r *Resolver) ExtractPriority(text string) (int, bool) {
	rec := backend.RawRecord{Text: text}
	if v, ok := r.bracketField(rec, core.FieldPriority); ok {
		if n, ok2 := parsePriorityValue(v); ok2 {
			return n, true
		}
		return 0, false
	}
	for _, marker := range priorityMarkers {
		if strings.Contains(text, marker.Glyph) {
			return marker.Ordinal, true
		}
	}
	return 0, false
}

// parseDate parses a user-written date with the configured layout and
// normalizes it to ISO. ISO input is accepted regardless of the layout.
func (r *Resolver) parseDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	layout := r.cfg.DateFormat
	if layout == "" {
		layout = "2006-01-02"
	}
	if t, err := time.Parse(layout, raw); err == nil {
		return t.Format("2006-01-02"), true
	}
	if layout != "2006-01-02" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
