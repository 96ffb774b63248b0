package adapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/treesync/internal/model"
)

func TestSQLiteJournalStore(t *testing.T) {
	ctx := context.Background()

	store, err := NewSQLiteJournalStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entries := []m.JournalEntry{
		{Path: "/src/A.kt", Hash: "h2", Size: 20, SavedAt: base.Add(time.Minute), SessionID: "s1"},
		{Path: "/src/A.kt", Hash: "h1", Size: 10, SavedAt: base, SessionID: "s1"},
		{Path: "/src/B.kt", Hash: "h3", Size: 30, SavedAt: base, SessionID: "s2"},
	}

	for _, e := range entries {
		require.NoError(t, store.Record(ctx, e))
	}

	got, err := store.List(ctx, "/src/A.kt")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "h1", got[0].Hash, "oldest first")
	assert.Equal(t, "h2", got[1].Hash)
	assert.Equal(t, 20, got[1].Size)
	assert.Equal(t, "s1", got[1].SessionID)
	assert.True(t, got[0].SavedAt.Equal(base))

	none, err := store.List(ctx, "/src/C.kt")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteJournalStore_DefaultsTimestamp(t *testing.T) {
	ctx := context.Background()

	store, err := NewSQLiteJournalStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	before := time.Now()
	require.NoError(t, store.Record(ctx, m.JournalEntry{Path: "A.kt", Hash: "h"}))

	got, err := store.List(ctx, "A.kt")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].SavedAt.Before(before))
}

func TestSQLiteJournalStore_Persists(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "journal.db")

	store, err := NewSQLiteJournalStore(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, m.JournalEntry{Path: "A.kt", Hash: "h"}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteJournalStore(ctx, dsn)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.List(ctx, "A.kt")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLiteJournalStore_BadLocation(t *testing.T) {
	_, err := NewSQLiteJournalStore(context.Background(), filepath.Join(t.TempDir(), "missing", "journal.db"))
	assert.Error(t, err)
}

func TestNopJournalStore(t *testing.T) {
	store := NewNopJournalStore()

	require.NoError(t, store.Record(context.Background(), m.JournalEntry{Path: "A.kt"}))

	got, err := store.List(context.Background(), "A.kt")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, store.Close())
}
