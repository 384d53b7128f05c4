// Package badgerindex implements the persistent indexing backend on
// BadgerDB.
//
// Task records and document entries are serialized with hand-written MUS
// codecs and stored under composite keys (path, then line) so scans come
// back in a stable order. Documents carry a BLAKE2b fingerprint; rebuilds
// skip documents whose fingerprint is unchanged and drop documents that
// disappeared from the vault.
//
// The query grammar is a keyword language:
//
//	TASK AND (FROM "Work" OR TAG #urgent)
//
// Compiled queries cover inclusion clauses only; exclusion clauses are
// enforced by the caller's post-query pass using the shared predicate
// helpers, which yields the same membership the folded form would.
package badgerindex
