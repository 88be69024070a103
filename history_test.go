package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*HistoryStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.db")
	store, err := openHistory(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store, path
}

func testRecord(n int) HistoryRecord {
	return HistoryRecord{
		Category: CategoryLetters,
		Score:    n,
		Total:    11,
		Duration: 60 + n,
		Date:     fmt.Sprintf("0%d Jan 2026, 10:0%d AM", n, n),
	}
}

func TestHistoryListIsMostRecentFirst(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Append(testRecord(1)))
	require.NoError(t, store.Append(testRecord(2)))
	require.NoError(t, store.Append(testRecord(3)))

	records, err := store.List()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, 3, records[0].Score)
	assert.Equal(t, 2, records[1].Score)
	assert.Equal(t, 1, records[2].Score)
}

func TestHistoryCapsAtFiveEvictingOldest(t *testing.T) {
	store, _ := newTestStore(t)

	for n := 1; n <= 6; n++ {
		require.NoError(t, store.Append(testRecord(n)))
	}

	records, err := store.List()
	require.NoError(t, err)

	require.Len(t, records, historyCap)
	for i, record := range records {
		assert.Equal(t, 6-i, record.Score)
	}
}

func TestHistorySurvivesReopen(t *testing.T) {
	store, path := newTestStore(t)

	record := testRecord(4)
	record.Category = CategoryShapes
	require.NoError(t, store.Append(record))
	require.NoError(t, store.Close())

	reopened, err := openHistory(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List()
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, record, records[0])
}

func TestHistoryEmptyListsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	records, err := store.List()
	require.NoError(t, err)

	assert.Empty(t, records)
}

func TestOpenHistoryCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := openHistory(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(testRecord(1)))
}
