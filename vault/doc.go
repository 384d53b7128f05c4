// Package vault reads a markdown document corpus from disk.
//
// A Vault is strictly read-only: it walks a directory tree, parses YAML
// frontmatter for document-level tags, and extracts checkbox list items
// with their line numbers, status symbols and inline tags. Parsing runs on
// a bounded worker pool and the resulting snapshot is sorted by path so it
// is deterministic across runs.
package vault
