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


// Package backend defines the common contract over the two task-indexing
// backends and the selection logic that picks one per query.
//
// The two implementations (memindex and badgerindex) expose different data
// shapes and query grammars; this package holds everything they must agree
// on: the RawRecord/Page shapes, the Backend interface, the shared predicate
// semantics for folder/note/tag matching, and the Selector with its bounded
// readiness poll.
//
// Exclusion clauses always win over inclusion clauses. A backend may fold
// exclusions into its compiled query string or leave them to the caller's
// post-query pass; both paths use the predicate helpers in this package so
// the final membership is identical either way.
package backend
