package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestOpen(t *testing.T) {
	t.Run("directory", func(t *testing.T) {
		v, err := Open(t.TempDir())
		require.NoError(t, err)
		assert.NotNil(t, v)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "file.md", "x")
		_, err := Open(filepath.Join(root, "file.md"))
		assert.ErrorIs(t, err, ErrNotADirectory)
	})
}

func TestSnapshot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "inbox.md", "- [ ] triage mail\n")
	writeFile(t, root, "Work/plan.md", "---\ntags:\n  - work\n---\n- [x] ship it #release\n")
	writeFile(t, root, "Work/readme.txt", "not markdown")
	writeFile(t, root, ".obsidian/config.md", "- [ ] hidden\n")

	v, err := Open(root)
	require.NoError(t, err)

	docs, err := v.Snapshot(context.Background())
	require.NoError(t, err)

	// Sorted by path; hidden dirs and non-markdown files skipped
	require.Len(t, docs, 2)
	assert.Equal(t, "Work/plan.md", docs[0].Path)
	assert.Equal(t, []string{"work"}, docs[0].Tags)
	require.Len(t, docs[0].Tasks, 1)
	assert.Equal(t, "x", docs[0].Tasks[0].Symbol)
	assert.Equal(t, []string{"release"}, docs[0].Tasks[0].Tags)

	assert.Equal(t, "inbox.md", docs[1].Path)
	require.Len(t, docs[1].Tasks, 1)
	assert.Equal(t, "triage mail", docs[1].Tasks[0].Text)
}

func TestSnapshotCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "- [ ] one\n")

	v, err := Open(root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = v.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshotEmptyVault(t *testing.T) {
	v, err := Open(t.TempDir())
	require.NoError(t, err)

	docs, err := v.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
