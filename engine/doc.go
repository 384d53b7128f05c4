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


// Package engine orchestrates task retrieval, filtering and ranking.
//
// One query flows: backend selection → query compilation → backend call →
// post-query filter pipeline → normalization into canonical Tasks →
// multi-criteria sort. A count-only path stops before normalization.
//
// The engine reconciles the two indexing backends behind one contract: it
// enforces exclusion clauses itself when the active backend does not fold
// them into its compiled query, evaluates the property filters no backend
// grammar can express, and resolves task fields through the multi-strategy
// cascade so differently shaped raw records normalize identically.
//
// Failures degrade rather than propagate: an unavailable backend or a
// failed backend call produces an empty result and a logged warning, and a
// malformed raw record is skipped. Nothing in this package is fatal to the
// host process, and no results are cached across calls.
package engine
