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


package vault

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Vault is a read-only view over a directory tree of markdown documents.
// It never mutates source files.
type Vault struct {
	root     string
	poolSize int
	logger   *slog.Logger
}

// Option configures a Vault.
type Option func(*Vault)

// WithPoolSize sets the worker pool size for concurrent document parsing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(v *Vault) {
		if size < 1 {
			size = 1
		}
		v.poolSize = size
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Vault) {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
	}
}

// Open validates that root is a directory and returns a Vault over it.
func Open(root string, opts ...Option) (*Vault, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrNotADirectory
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	v := &Vault{
		root:     root,
		poolSize: poolSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Root returns the vault root directory.
func (v *Vault) Root() string { return v.root }

// Snapshot scans the whole tree and parses every markdown document. Parsing
// runs on a bounded worker pool; the returned slice is sorted by path so the
// snapshot is deterministic regardless of completion order. Documents that
// cannot be read are logged and skipped.
func (v *Vault) Snapshot(ctx context.Context) ([]Document, error) {
	paths, err := v.listMarkdownFiles()
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(v.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		docs = make([]Document, 0, len(paths))
	)
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			break
		}
		rel := rel
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			content, readErr := os.ReadFile(filepath.Join(v.root, filepath.FromSlash(rel)))
			if readErr != nil {
				v.logger.Warn("skipping unreadable document", "path", rel, "err", readErr)
				return
			}
			doc := parseDocument(rel, content)
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			v.logger.Warn("failed to submit document parse", "path", rel, "err", submitErr)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// listMarkdownFiles walks the tree collecting relative .md paths. Hidden
// directories are skipped.
func (v *Vault) listMarkdownFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != v.root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(v.root, path)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
