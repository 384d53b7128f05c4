package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "open", cfg.DefaultCategory)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.Equal(t, "auto", cfg.BackendPreference)
}

func TestConfigValidate(t *testing.T) {
	t.Run("no categories", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StatusCategories = nil
		assert.ErrorIs(t, cfg.Validate(), ErrNoStatusCategories)
	})

	t.Run("no default", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DefaultCategory = ""
		assert.ErrorIs(t, cfg.Validate(), ErrNoDefaultCategory)
	})

	t.Run("unknown default", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DefaultCategory = "archived"
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownDefaultCategory)
	})
}

func TestCategoryForSymbol(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "open", cfg.CategoryForSymbol(" "))
	assert.Equal(t, "in-progress", cfg.CategoryForSymbol("/"))
	assert.Equal(t, "completed", cfg.CategoryForSymbol("x"))
	assert.Equal(t, "completed", cfg.CategoryForSymbol("X"))
	assert.Equal(t, "cancelled", cfg.CategoryForSymbol("-"))

	// Unknown symbols land in the default category
	assert.Equal(t, "open", cfg.CategoryForSymbol("?"))
}

func TestCategoryByToken(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("by key", func(t *testing.T) {
		cat, ok := cfg.CategoryByToken("completed")
		require.True(t, ok)
		assert.Equal(t, "completed", cat.Key)
	})

	t.Run("by alias", func(t *testing.T) {
		cat, ok := cfg.CategoryByToken("done")
		require.True(t, ok)
		assert.Equal(t, "completed", cat.Key)
	})

	t.Run("spelling variants normalize", func(t *testing.T) {
		for _, token := range []string{"in-progress", "In Progress", "in_progress", "INPROGRESS"} {
			cat, ok := cfg.CategoryByToken(token)
			require.True(t, ok, "token %q", token)
			assert.Equal(t, "in-progress", cat.Key)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, ok := cfg.CategoryByToken("archived")
		assert.False(t, ok)
	})
}

func TestFolderOf(t *testing.T) {
	assert.Equal(t, "Work/Projects", FolderOf("Work/Projects/launch.md"))
	assert.Equal(t, "Work", FolderOf("Work/notes.md"))
	assert.Equal(t, "", FolderOf("inbox.md"))
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "urgent", NormalizeTag("#urgent"))
	assert.Equal(t, "urgent", NormalizeTag("urgent"))
	assert.Equal(t, "Urgent", NormalizeTag("#Urgent"), "case is preserved")
}
