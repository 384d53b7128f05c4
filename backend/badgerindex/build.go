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


package badgerindex

import (
	"context"
	"encoding/binary"
	"sort"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/resolve"
	"github.com/poiesic/tasklens/vault"
)

// Build indexes a vault snapshot. Documents whose fingerprint matches the
// stored entry are skipped; changed documents have their task records
// replaced wholesale, and documents no longer in the vault are removed.
func (s *Store) Build(ctx context.Context, docs []vault.Document, cfg core.Config) error {
	if s.db.IsClosed() {
		return ErrStoreClosed
	}

	existing, err := s.loadFingerprints()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(docs))
	reindexed := 0
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[doc.Path] = true

		fp := fingerprintDocument(doc)
		if prev, ok := existing[doc.Path]; ok && prev == fp {
			continue
		}
		if err := s.reindexDocument(doc, fp); err != nil {
			return err
		}
		reindexed++
	}

	removed := 0
	for path := range existing {
		if seen[path] {
			continue
		}
		if err := s.removeDocument(path); err != nil {
			return err
		}
		removed++
	}

	s.logger.Debug("badgerindex built", "documents", len(docs), "reindexed", reindexed, "removed", removed)
	return nil
}

// loadFingerprints reads every stored document fingerprint.
func (s *Store) loadFingerprints() (map[string]uint64, error) {
	fps := make(map[string]uint64)
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
				fps[path] = entry.Fingerprint
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
	return fps, nil
}

// reindexDocument replaces the stored records of one document.
func (s *Store) reindexDocument(doc vault.Document, fp uint64) error {
	return s.withTx(func(tx *badger.Txn) error {
		if err := deletePrefix(tx, makeTaskPathPrefix(doc.Path)); err != nil {
			return err
		}

		entry := docEntry{Fingerprint: fp, Tags: doc.Tags}
		if err := tx.Set(makeDocKey(doc.Path), marshalDocEntry(entry)); err != nil {
			return err
		}

		for _, line := range doc.Tasks {
			rec := indexRecord{
				Path:   doc.Path,
				Line:   line.Line,
				Symbol: line.Symbol,
				Text:   line.Text,
				Tags:   line.Tags,
				Fields: fieldPairs(resolve.InlineFields(line.Text)),
			}
			if err := tx.Set(makeTaskKey(doc.Path, line.Line), marshalIndexRecord(rec)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// removeDocument drops a document entry and all its task records.
func (s *Store) removeDocument(path string) error {
	return s.withTx(func(tx *badger.Txn) error {
		if err := deletePrefix(tx, makeTaskPathPrefix(path)); err != nil {
			return err
		}
		if err := tx.Delete(makeDocKey(path)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// deletePrefix removes every key under a prefix within the transaction.
func deletePrefix(tx *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	it := tx.NewIterator(opts)

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// fieldPairs converts an inline-field bag to a deterministic sorted pair
// list for serialization.
func fieldPairs(bag map[string]string) []fieldPair {
	if len(bag) == 0 {
		return nil
	}
	pairs := make([]fieldPair, 0, len(bag))
	for k, v := range bag {
		pairs = append(pairs, fieldPair{Key: k, Value: v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs
}

// fingerprintDocument hashes the indexed content of a document with BLAKE2b
// so unchanged documents can be skipped on rebuild.
func fingerprintDocument(doc vault.Document) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(doc.Path))
	for _, tag := range doc.Tags {
		h.Write([]byte("\x00" + tag))
	}
	for _, line := range doc.Tasks {
		h.Write([]byte("\x01" + strconv.Itoa(line.Line) + "|" + line.Symbol + "|" + line.Text))
	}
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}
