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


package backend

import (
	"log/slog"
	"time"
)

// Preference selects which backend a query should use.
type Preference string

const (
	// PreferenceAuto picks the faster backend (memindex) when available.
	PreferenceAuto Preference = "auto"
	// PreferenceMemIndex requests the in-memory index backend.
	PreferenceMemIndex Preference = "memindex"
	// PreferenceBadgerIndex requests the persistent index backend.
	PreferenceBadgerIndex Preference = "badgerindex"
)

// Availability reports which backends are present and ready.
type Availability struct {
	MemIndex    bool
	BadgerIndex bool
}

// Selector detects available backends and applies the user's preference with
// fallback. Either backend may be nil when the host did not configure it.
type Selector struct {
	memIndex    Backend
	badgerIndex Backend
	logger      *slog.Logger
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) SelectorOption {
	return func(s *Selector) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSelector creates a selector over the two backend slots.
func NewSelector(memIndex, badgerIndex Backend, opts ...SelectorOption) *Selector {
	s := &Selector{
		memIndex:    memIndex,
		badgerIndex: badgerIndex,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DetectAvailable probes both backend slots.
func (s *Selector) DetectAvailable() Availability {
	return Availability{
		MemIndex:    s.memIndex != nil && s.memIndex.Available(),
		BadgerIndex: s.badgerIndex != nil && s.badgerIndex.Available(),
	}
}

// DetermineActive picks the backend for a query, or nil when none is usable:
//
//  1. A specifically named backend is used when available.
//  2. A specifically named but unavailable backend falls back to the other.
//  3. PreferenceAuto prefers memindex, the faster of the two.
func (s *Selector) DetermineActive(pref Preference) Backend {
	avail := s.DetectAvailable()
	switch pref {
	case PreferenceMemIndex:
		if avail.MemIndex {
			return s.memIndex
		}
		if avail.BadgerIndex {
			s.logger.Debug("preferred backend unavailable, falling back", "preferred", pref, "fallback", PreferenceBadgerIndex)
			return s.badgerIndex
		}
	case PreferenceBadgerIndex:
		if avail.BadgerIndex {
			return s.badgerIndex
		}
		if avail.MemIndex {
			s.logger.Debug("preferred backend unavailable, falling back", "preferred", pref, "fallback", PreferenceMemIndex)
			return s.memIndex
		}
	default:
		if avail.MemIndex {
			return s.memIndex
		}
		if avail.BadgerIndex {
			return s.badgerIndex
		}
	}
	return nil
}

// WaitForReady polls DetermineActive up to maxAttempts times, sleeping the
// interval between attempts, and returns the first non-nil backend. This is
// a bounded retry, not a subscription: no readiness push is assumed from the
// backends, and the wait is not cancellable mid-sleep. Callers that need
// cancellation must race this call against their own timeout.
func (s *Selector) WaitForReady(pref Preference, maxAttempts int, interval time.Duration) (Backend, error) {
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if b := s.DetermineActive(pref); b != nil {
			if attempt > 1 {
				s.logger.Debug("backend became ready", "backend", b.Name(), "attempt", attempt)
			}
			return b, nil
		}
		if attempt < maxAttempts {
			time.Sleep(interval)
		}
	}
	return nil, ErrNoBackend
}
