package badgerindex

import (
	"context"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
)

// Name is the backend identifier, also used as the task ID prefix.
const Name = "badgerindex"

var _ backend.Backend = (*Store)(nil)

// Name returns the backend identifier.
func (s *Store) Name() string { return Name }

// Available reports whether the index database is open.
func (s *Store) Available() bool {
	return s != nil && s.db != nil && !s.db.IsClosed()
}

// FoldsExclusions reports that this backend compiles inclusions only;
// the caller enforces exclusion clauses with a post-query pass.
func (s *Store) FoldsExclusions() bool { return false }

// ExecuteQuery parses a compiled query and scans the task records for
// matches. Records come back in key order (path, then line), so results are
// deterministic.
func (s *Store) ExecuteQuery(ctx context.Context, query string) ([]backend.RawRecord, error) {
	if s.db.IsClosed() {
		return nil, ErrStoreClosed
	}

	pageTags, err := s.loadPageTags()
	if err != nil {
		return nil, err
	}

	pred, err := parseQuery(query, pageTags)
	if err != nil {
		return nil, err
	}

	var matched []backend.RawRecord
	err = s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(taskPrefix + ":")
		it := tx.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec indexRecord
			err := it.Item().Value(func(val []byte) error {
				var umErr error
				rec, umErr = unmarshalIndexRecord(val)
				return umErr
			})
			if err != nil {
				return err
			}
			raw := toRawRecord(rec)
			if pred(raw) {
				matched = append(matched, raw)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// ExecutePageQuery returns every document entry as a page record.
func (s *Store) ExecutePageQuery(ctx context.Context) ([]backend.Page, error) {
	if s.db.IsClosed() {
		return nil, ErrStoreClosed
	}

	var pages []backend.Page
	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(docPrefix + ":")
		it := tx.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			path := strings.TrimPrefix(string(item.Key()), docPrefix+":")
			err := item.Value(func(val []byte) error {
				entry, err := unmarshalDocEntry(val)
				if err != nil {
					return err
				}
				pages = append(pages, backend.Page{Path: path, Tags: entry.Tags})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// IsValidRecord accepts records carrying a status symbol. This backend does
// not explicitly type its records as tasks.
func (s *Store) IsValidRecord(rec backend.RawRecord) bool {
	return rec.IsTask || rec.Symbol != ""
}

// ExtractField always misses: this backend stores no typed properties, so
// field resolution falls through to the later cascade strategies.
func (s *Store) ExtractField(rec backend.RawRecord, field core.Field) (string, bool) {
	return "", false
}

// loadPageTags reads document tags keyed by path for the page-scoped tag
// predicate.
func (s *Store) loadPageTags() (map[string][]string, error) {
	tags := make(map[string][]string)
	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(docPrefix + ":")
		it := tx.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			path := strings.TrimPrefix(string(item.Key()), docPrefix+":")
			err := item.Value(func(val []byte) error {
				entry, err := unmarshalDocEntry(val)
				if err != nil {
					return err
				}
				tags[path] = entry.Tags
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// toRawRecord converts a stored record to the backend-neutral shape.
func toRawRecord(rec indexRecord) backend.RawRecord {
	var fields map[string]string
	if len(rec.Fields) > 0 {
		fields = make(map[string]string, len(rec.Fields))
		for _, p := range rec.Fields {
			fields[p.Key] = p.Value
		}
	}
	return backend.RawRecord{
		Path:   rec.Path,
		Line:   rec.Line,
		Symbol: rec.Symbol,
		Text:   rec.Text,
		Tags:   rec.Tags,
		Fields: fields,
	}
}
