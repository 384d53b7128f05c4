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


// Package search ranks filtered tasks by relevance to free-text input.
//
// The Searcher type offers two modes:
//   - Keyword matching with stop-word filtering and a full-phrase boost
//   - AI-assisted selection delegated to an ai.TaskPicker
//
// Both modes run the filter through the query engine first and produce a
// relevance-score map alongside the ranked tasks, so results can be re-sorted
// with the engine's relevance criterion.
package search
