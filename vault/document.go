package vault

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one markdown file of the corpus, reduced to what the indexing
// backends need: its path, document-level tags and checkbox task lines.
type Document struct {
	// Path is relative to the vault root, forward-slash separated.
	Path string
	// Tags are document-level tags from the YAML frontmatter, '#'-stripped.
	Tags []string
	// Tasks are the checkbox list items of the document.
	Tasks []TaskLine
}

// TaskLine is one checkbox list item as written in a document.
type TaskLine struct {
	// Line is the 1-based line number within the document.
	Line int
	// Symbol is the single character between the brackets, including " ".
	Symbol string
	// Text is the raw content after the checkbox, possibly empty.
	Text string
	// Tags are '#'-stripped tags found in Text.
	Tags []string
}

var (
	checkboxPattern = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+\[(.)\]\s?(.*)$`)
	tagPattern      = regexp.MustCompile(`#[\p{L}\p{N}_][\p{L}\p{N}_/-]*`)
)

// frontmatter is the subset of YAML frontmatter the scanner reads. Tags may
// be written as a YAML list or as one comma-separated string.
type frontmatter struct {
	Tags any `yaml:"tags"`
}

// parseDocument extracts frontmatter tags and checkbox lines from raw
// markdown. It never fails: malformed frontmatter just yields no tags.
func parseDocument(path string, content []byte) Document {
	doc := Document{Path: path}

	body, fm := splitFrontmatter(string(content))
	if fm != "" {
		var meta frontmatter
		if err := yaml.Unmarshal([]byte(fm), &meta); err == nil {
			doc.Tags = normalizeFrontmatterTags(meta.Tags)
		}
	}

	// Line numbers count from the top of the file, frontmatter included.
	offset := 0
	if fm != "" {
		offset = strings.Count(fm, "\n") + 1 + 2 // fm lines plus both delimiters
	}
	for i, line := range strings.Split(body, "\n") {
		m := checkboxPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		doc.Tasks = append(doc.Tasks, TaskLine{
			Line:   offset + i + 1,
			Symbol: m[1],
			Text:   strings.TrimRight(m[2], " \t\r"),
			Tags:   extractTags(m[2]),
		})
	}
	return doc
}

// splitFrontmatter separates a leading YAML frontmatter block from the body.
// Returns the body and the frontmatter content without delimiters; the
// frontmatter is empty when the document has none.
func splitFrontmatter(content string) (body, fm string) {
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return content, ""
	}
	rest := strings.TrimPrefix(content, "---\n")
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return content, ""
	}
	fm = rest[:idx]
	body = rest[idx+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return body, fm
}

// normalizeFrontmatterTags accepts list-shaped or string-shaped tag values.
func normalizeFrontmatterTags(raw any) []string {
	var tags []string
	add := func(s string) {
		s = strings.TrimLeft(strings.TrimSpace(s), "#")
		if s != "" {
			tags = append(tags, s)
		}
	}
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	case string:
		for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			add(part)
		}
	}
	return tags
}

// extractTags returns the '#'-stripped tags written in a task line.
func extractTags(text string) []string {
	matches := tagPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		tag := strings.TrimLeft(m, "#")
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
