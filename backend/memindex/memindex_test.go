package memindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/vault"
)

func testDocs() []vault.Document {
	return []vault.Document{
		{
			Path: "Personal/errands.md",
			Tags: []string{"personal"},
			Tasks: []vault.TaskLine{
				{Line: 3, Symbol: " ", Text: "buy groceries #errand", Tags: []string{"errand"}},
				{Line: 4, Symbol: "x", Text: "renew passport ✅ 2025-02-01"},
			},
		},
		{
			Path: "Work/plan.md",
			Tags: []string{"work"},
			Tasks: []vault.TaskLine{
				{Line: 1, Symbol: " ", Text: "write report 📅 2025-03-01 ⏫"},
				{Line: 2, Symbol: "/", Text: "review budget [priority::low] #urgent", Tags: []string{"urgent"}},
			},
		},
	}
}

func builtIndex(t *testing.T) *Index {
	t.Helper()
	ix := New()
	require.NoError(t, ix.Build(context.Background(), testDocs(), core.DefaultConfig()))
	return ix
}

func TestIndexAvailability(t *testing.T) {
	ix := New()
	assert.False(t, ix.Available(), "unbuilt index is not ready")

	require.NoError(t, ix.Build(context.Background(), testDocs(), core.DefaultConfig()))
	assert.True(t, ix.Available())
	assert.Equal(t, Name, ix.Name())
	assert.True(t, ix.FoldsExclusions())
}

func TestBuildExtractsTypedFields(t *testing.T) {
	ix := builtIndex(t)

	recs, err := ix.ExecuteQuery(context.Background(), "tasks()")
	require.NoError(t, err)
	require.Len(t, recs, 4)

	byText := make(map[string]backend.RawRecord, len(recs))
	for _, rec := range recs {
		byText[rec.Text] = rec
	}

	due, ok := ix.ExtractField(byText["write report 📅 2025-03-01 ⏫"], core.FieldDue)
	require.True(t, ok)
	assert.Equal(t, "2025-03-01", due)

	prio, ok := ix.ExtractField(byText["write report 📅 2025-03-01 ⏫"], core.FieldPriority)
	require.True(t, ok)
	assert.Equal(t, "1", prio)

	prio, ok = ix.ExtractField(byText["review budget [priority::low] #urgent"], core.FieldPriority)
	require.True(t, ok)
	assert.Equal(t, "4", prio)

	done, ok := ix.ExtractField(byText["renew passport ✅ 2025-02-01"], core.FieldCompleted)
	require.True(t, ok)
	assert.Equal(t, "2025-02-01", done)

	status, ok := ix.ExtractField(byText["buy groceries #errand"], core.FieldStatus)
	require.True(t, ok)
	assert.Equal(t, " ", status)

	_, ok = ix.ExtractField(byText["buy groceries #errand"], core.FieldDue)
	assert.False(t, ok)
}

func TestCompileQuery(t *testing.T) {
	ix := New()
	cfg := core.DefaultConfig()

	t.Run("empty spec", func(t *testing.T) {
		assert.Equal(t, "tasks()", ix.CompileQuery(core.FilterSpec{}, cfg))
	})

	t.Run("inclusions group into one disjunction", func(t *testing.T) {
		spec := core.FilterSpec{
			Folders:  []string{"Work"},
			TaskTags: []string{"#urgent"},
		}
		assert.Equal(t, `tasks() and (path("Work") or tag("urgent"))`, ix.CompileQuery(spec, cfg))
	})

	t.Run("exclusions are negated conjuncts", func(t *testing.T) {
		spec := core.FilterSpec{
			ExcludeFolders: []string{"Archive"},
			ExcludeNotes:   []string{"scratch"},
			Folders:        []string{"Work"},
		}
		assert.Equal(t,
			`tasks() and !path("Archive") and !note("scratch") and (path("Work"))`,
			ix.CompileQuery(spec, cfg))
	})

	t.Run("exclusions only", func(t *testing.T) {
		spec := core.FilterSpec{ExcludeNoteTags: []string{"archive"}}
		assert.Equal(t, `tasks() and !pagetag("archive")`, ix.CompileQuery(spec, cfg))
	})
}

func TestExecuteQuery(t *testing.T) {
	ix := builtIndex(t)
	ctx := context.Background()

	run := func(t *testing.T, query string) []string {
		t.Helper()
		recs, err := ix.ExecuteQuery(ctx, query)
		require.NoError(t, err)
		texts := make([]string, len(recs))
		for i, rec := range recs {
			texts[i] = rec.Text
		}
		return texts
	}

	t.Run("folder inclusion", func(t *testing.T) {
		texts := run(t, `tasks() and (path("Work"))`)
		assert.ElementsMatch(t, []string{
			"write report 📅 2025-03-01 ⏫",
			"review budget [priority::low] #urgent",
		}, texts)
	})

	t.Run("tag inclusion", func(t *testing.T) {
		texts := run(t, `tasks() and (tag("urgent"))`)
		assert.Equal(t, []string{"review budget [priority::low] #urgent"}, texts)
	})

	t.Run("note tag", func(t *testing.T) {
		texts := run(t, `tasks() and (pagetag("personal"))`)
		assert.Len(t, texts, 2)
	})

	t.Run("exclusion folds", func(t *testing.T) {
		texts := run(t, `tasks() and !path("Personal")`)
		assert.Len(t, texts, 2)
		for _, text := range texts {
			assert.NotContains(t, text, "groceries")
		}
	})

	t.Run("exclusion wins over inclusion", func(t *testing.T) {
		texts := run(t, `tasks() and !tag("urgent") and (path("Work"))`)
		assert.Equal(t, []string{"write report 📅 2025-03-01 ⏫"}, texts)
	})

	t.Run("note match by bare name", func(t *testing.T) {
		texts := run(t, `tasks() and (note("plan"))`)
		assert.Len(t, texts, 2)
	})
}

func TestExecutePageQuery(t *testing.T) {
	ix := builtIndex(t)

	pages, err := ix.ExecutePageQuery(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Personal/errands.md", pages[0].Path)
	assert.Equal(t, []string{"personal"}, pages[0].Tags)
}

func TestParseQueryErrors(t *testing.T) {
	ix := builtIndex(t)
	ctx := context.Background()

	for _, query := range []string{
		"",
		"tasks(",
		"tasks() and",
		"tasks() and (path(\"Work\")",
		"unknownpred()",
		"tasks() and path()",
		"tasks() or or tasks()",
		`tasks("arg")`,
	} {
		t.Run(query, func(t *testing.T) {
			_, err := ix.ExecuteQuery(ctx, query)
			assert.ErrorIs(t, err, backend.ErrMalformedQuery)
		})
	}
}

func TestIsValidRecord(t *testing.T) {
	ix := New()

	assert.True(t, ix.IsValidRecord(backend.RawRecord{IsTask: true}))
	assert.True(t, ix.IsValidRecord(backend.RawRecord{Symbol: "x"}))
	assert.False(t, ix.IsValidRecord(backend.RawRecord{Text: "no checkbox"}))
}
