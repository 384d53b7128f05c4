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


package tasklens

import (
	"context"
	"log/slog"

	"github.com/poiesic/tasklens/ai"
	"github.com/poiesic/tasklens/ai/openai"
	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/backend/badgerindex"
	"github.com/poiesic/tasklens/backend/memindex"
	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/engine"
	"github.com/poiesic/tasklens/search"
	"github.com/poiesic/tasklens/vault"
)

// System wires a markdown vault, both indexing backends, and the query
// engine into one handle.
type System struct {
	vault    *vault.Vault
	memIndex *memindex.Index
	store    *badgerindex.Store
	selector *backend.Selector
	engine   *engine.Engine
	provider ai.Provider
	config   core.Config
	logger   *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	config    core.Config
	aiConfig  *ai.Config
	provider  ai.Provider
	indexPath string
}

// WithConfig sets the task configuration.
// Default is core.DefaultConfig().
func WithConfig(cfg core.Config) SystemOption {
	return func(o *systemOptions) {
		o.config = cfg
	}
}

// WithAIConfig sets the configuration used to build the default AI provider.
func WithAIConfig(cfg *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider injects an AI provider, bypassing the default OpenAI one.
func WithProvider(provider ai.Provider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithIndexPath sets the directory for the persistent index database.
// When unset the persistent backend runs in memory.
func WithIndexPath(path string) SystemOption {
	return func(o *systemOptions) {
		o.indexPath = path
	}
}

// NewSystem opens the vault at root and assembles the full query stack.
// Call Refresh to populate the indexes before querying.
func NewSystem(root string, opts ...SystemOption) (*System, error) {
	// Apply options
	options := &systemOptions{
		config:   core.DefaultConfig(),
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	v, err := vault.Open(root)
	if err != nil {
		return nil, err
	}

	memIndex := memindex.New()

	store, err := badgerindex.Open(options.indexPath, options.indexPath == "")
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	selector := backend.NewSelector(memIndex, store)

	eng, err := engine.New(selector, options.config)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	return &System{
		vault:    v,
		memIndex: memIndex,
		store:    store,
		selector: selector,
		engine:   eng,
		provider: provider,
		config:   options.config,
		logger:   slog.Default(),
	}, nil
}

// Refresh scans the vault and rebuilds both indexes from the snapshot.
func (s *System) Refresh(ctx context.Context) error {
	docs, err := s.vault.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := s.memIndex.Build(ctx, docs, s.config); err != nil {
		return err
	}
	return s.store.Build(ctx, docs, s.config)
}

// Close releases the system's resources.
func (s *System) Close() error {
	// Close AI provider first
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing index store", "err", err)
		return err
	}
	return nil
}

// Engine returns the query engine.
func (s *System) Engine() *engine.Engine {
	return s.engine
}

// Vault returns the markdown vault.
func (s *System) Vault() *vault.Vault {
	return s.vault
}

// Selector returns the backend selector.
func (s *System) Selector() *backend.Selector {
	return s.selector
}

// NewSearcher creates a searcher over the system's engine, wired to the
// system's AI picker.
func (s *System) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	base := []search.Option{search.WithPicker(s.provider.TaskPicker())}
	return search.NewSearcher(s.engine, append(base, opts...)...)
}
