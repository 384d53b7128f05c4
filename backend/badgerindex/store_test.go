package badgerindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/tasklens/backend"
	"github.com/poiesic/tasklens/core"
	"github.com/poiesic/tasklens/vault"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDocs() []vault.Document {
	return []vault.Document{
		{
			Path: "Personal/errands.md",
			Tags: []string{"personal"},
			Tasks: []vault.TaskLine{
				{Line: 1, Symbol: " ", Text: "buy groceries #errand", Tags: []string{"errand"}},
			},
		},
		{
			Path: "Work/plan.md",
			Tags: []string{"work"},
			Tasks: []vault.TaskLine{
				{Line: 2, Symbol: " ", Text: "write report [due::2025-03-01]"},
				{Line: 5, Symbol: "x", Text: "review budget #urgent", Tags: []string{"urgent"}},
			},
		},
	}
}

func buildStore(t *testing.T) *Store {
	t.Helper()
	store := testStore(t)
	require.NoError(t, store.Build(context.Background(), testDocs(), core.DefaultConfig()))
	return store
}

func TestStoreIdentity(t *testing.T) {
	store := buildStore(t)

	assert.Equal(t, Name, store.Name())
	assert.True(t, store.Available())
	assert.False(t, store.FoldsExclusions())

	_, ok := store.ExtractField(backend.RawRecord{}, core.FieldDue)
	assert.False(t, ok, "this backend stores no typed properties")
}

func TestBuildAndExecuteQuery(t *testing.T) {
	store := buildStore(t)
	ctx := context.Background()

	t.Run("all tasks in key order", func(t *testing.T) {
		recs, err := store.ExecuteQuery(ctx, "TASK")
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "buy groceries #errand", recs[0].Text)
		assert.Equal(t, "Work/plan.md", recs[1].Path)
		assert.Equal(t, 2, recs[1].Line)
	})

	t.Run("inline fields round-trip", func(t *testing.T) {
		recs, err := store.ExecuteQuery(ctx, `TASK AND (NOTE "plan")`)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "2025-03-01", recs[0].Fields["due"])
	})

	t.Run("folder clause", func(t *testing.T) {
		recs, err := store.ExecuteQuery(ctx, `TASK AND (FROM "Personal")`)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "buy groceries #errand", recs[0].Text)
	})

	t.Run("tag and pagetag clauses", func(t *testing.T) {
		recs, err := store.ExecuteQuery(ctx, "TASK AND (TAG #urgent)")
		require.NoError(t, err)
		require.Len(t, recs, 1)

		recs, err = store.ExecuteQuery(ctx, "TASK AND (PAGETAG #work)")
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("keywords are case-insensitive", func(t *testing.T) {
		recs, err := store.ExecuteQuery(ctx, `task and (from "Work" or tag #errand)`)
		require.NoError(t, err)
		assert.Len(t, recs, 3)
	})

	t.Run("not clause", func(t *testing.T) {
		recs, err := store.ExecuteQuery(ctx, `TASK AND NOT FROM "Work"`)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Personal/errands.md", recs[0].Path)
	})
}

func TestBuildIncremental(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	cfg := core.DefaultConfig()

	docs := testDocs()
	require.NoError(t, store.Build(ctx, docs, cfg))

	t.Run("rebuild with same content is a no-op", func(t *testing.T) {
		require.NoError(t, store.Build(ctx, docs, cfg))
		recs, err := store.ExecuteQuery(ctx, "TASK")
		require.NoError(t, err)
		assert.Len(t, recs, 3)
	})

	t.Run("changed document replaces its records", func(t *testing.T) {
		changed := testDocs()
		changed[1].Tasks = []vault.TaskLine{
			{Line: 2, Symbol: " ", Text: "rewrite report"},
		}
		require.NoError(t, store.Build(ctx, changed, cfg))

		recs, err := store.ExecuteQuery(ctx, `TASK AND (NOTE "plan")`)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "rewrite report", recs[0].Text)
	})

	t.Run("vanished document is removed", func(t *testing.T) {
		require.NoError(t, store.Build(ctx, testDocs()[:1], cfg))

		recs, err := store.ExecuteQuery(ctx, "TASK")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Personal/errands.md", recs[0].Path)

		pages, err := store.ExecutePageQuery(ctx)
		require.NoError(t, err)
		assert.Len(t, pages, 1)
	})
}

func TestExecutePageQuery(t *testing.T) {
	store := buildStore(t)

	pages, err := store.ExecutePageQuery(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Personal/errands.md", pages[0].Path)
	assert.Equal(t, []string{"personal"}, pages[0].Tags)
	assert.Equal(t, []string{"work"}, pages[1].Tags)
}

func TestCompileQuery(t *testing.T) {
	store := testStore(t)
	cfg := core.DefaultConfig()

	t.Run("empty spec", func(t *testing.T) {
		assert.Equal(t, "TASK", store.CompileQuery(core.FilterSpec{}, cfg))
	})

	t.Run("inclusions group into one OR", func(t *testing.T) {
		spec := core.FilterSpec{
			Folders:  []string{"Work"},
			NoteTags: []string{"#project"},
			TaskTags: []string{"urgent"},
		}
		assert.Equal(t,
			`TASK AND (FROM "Work" OR PAGETAG #project OR TAG #urgent)`,
			store.CompileQuery(spec, cfg))
	})

	t.Run("exclusions do not compile", func(t *testing.T) {
		spec := core.FilterSpec{ExcludeFolders: []string{"Archive"}}
		assert.Equal(t, "TASK", store.CompileQuery(spec, cfg))
	})
}

func TestQueryErrors(t *testing.T) {
	store := buildStore(t)
	ctx := context.Background()

	for _, query := range []string{
		"",
		"FROM",
		`TASK AND (FROM "Work"`,
		"TASK AND OR",
		"TAG urgent",
		`BOGUS "Work"`,
	} {
		t.Run(query, func(t *testing.T) {
			_, err := store.ExecuteQuery(ctx, query)
			assert.ErrorIs(t, err, backend.ErrMalformedQuery)
		})
	}
}

func TestClosedStore(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.False(t, store.Available())

	_, err = store.ExecuteQuery(context.Background(), "TASK")
	assert.ErrorIs(t, err, ErrStoreClosed)

	err = store.Build(context.Background(), nil, core.DefaultConfig())
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestSerializationRoundTrip(t *testing.T) {
	rec := indexRecord{
		Path:   "Work/plan.md",
		Line:   42,
		Symbol: "/",
		Text:   "review budget [priority::low]",
		Tags:   []string{"urgent", "q3"},
		Fields: []fieldPair{{Key: "priority", Value: "low"}},
	}

	got, err := unmarshalIndexRecord(marshalIndexRecord(rec))
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	entry := docEntry{Fingerprint: 0xDEADBEEF, Tags: []string{"work"}}
	gotEntry, err := unmarshalDocEntry(marshalDocEntry(entry))
	require.NoError(t, err)
	assert.Equal(t, entry, gotEntry)
}

func TestSerializationCorrupt(t *testing.T) {
	_, err := unmarshalIndexRecord([]byte{0xFF})
	assert.Error(t, err)
}

func TestFingerprintDocument(t *testing.T) {
	doc := testDocs()[0]
	same := testDocs()[0]
	assert.Equal(t, fingerprintDocument(doc), fingerprintDocument(same))

	changed := testDocs()[0]
	changed.Tasks[0].Text = "different"
	assert.NotEqual(t, fingerprintDocument(doc), fingerprintDocument(changed))
}
