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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/tasklens/ai/mock"
	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
)

func writeVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	notes := map[string]string{
		"Work/plan.md": `---
tags: [work]
---
- [ ] Draft quarterly report 📅 2025-03-10 ⏫
- [x] File taxes
`,
		"Personal/home.md": `- [ ] Call the plumber #urgent
- [ ] Water the plants
`,
	}
	for path, content := range notes {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func newTestSystem(t *testing.T) *System {
	t.Helper()
	sys, err := NewSystem(writeVault(t), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })
	require.NoError(t, sys.Refresh(context.Background()))
	return sys
}

func TestSystemQuery(t *testing.T) {
	sys := newTestSystem(t)

	tasks, err := sys.Engine().Query(context.Background(), core.FilterSpec{}, core.SortSpec{})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)

	n, err := sys.Engine().Count(context.Background(), core.FilterSpec{Folders: []string{"Work"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSystemSearch(t *testing.T) {
	sys := newTestSystem(t)

	searcher, err := sys.NewSearcher()
	require.NoError(t, err)

	t.Run("keyword", func(t *testing.T) {
		hits, _, err := searcher.Keyword(context.Background(), "plumber", core.FilterSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "Call the plumber #urgent", hits[0].Text)
	})

	t.Run("assisted uses the injected picker", func(t *testing.T) {
		hits, scores, err := searcher.Assisted(context.Background(), "water plants", core.FilterSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "Water the plants", hits[0].Text)
		assert.NotEmpty(t, scores)
	})
}

func TestSystemRefreshIsRepeatable(t *testing.T) {
	sys := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))

	tasks, err := sys.Engine().Query(context.Background(), core.FilterSpec{}, core.SortSpec{})
	require.NoError(t, err)
	assert.Len(t, tasks, 4, "rebuilding the indexes does not duplicate tasks")
}

func TestSystemPersistentIndexPath(t *testing.T) {
	dir := t.TempDir()
	sys, err := NewSystem(writeVault(t),
		WithProvider(mock.NewMockProvider()),
		WithIndexPath(filepath.Join(dir, "index")))
	require.NoError(t, err)
	defer sys.Close()

	require.NoError(t, sys.Refresh(context.Background()))

	active := sys.Selector().DetermineActive(backend.PreferenceBadgerIndex)
	require.NotNil(t, active)
	assert.Equal(t, "badgerindex", active.Name())

	tasks, err := sys.Engine().Query(context.Background(), core.FilterSpec{}, core.SortSpec{})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}
