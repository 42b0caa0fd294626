package index

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebeat/internal/periodic"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenAt(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func entry(name, kind string, y int, m time.Month, d int) Entry {
	k, _ := periodic.KindFromString(kind)
	return Entry{
		Path:    "/vault/" + name + ".md",
		Name:    name,
		Title:   name,
		Kind:    k,
		Date:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		ModTime: time.Date(y, m, d, 12, 0, 0, 0, time.UTC),
		Size:    int64(len(name)),
	}
}

func TestSyncAndQuery(t *testing.T) {
	db := openTestDB(t)

	entries := []Entry{
		entry("2025-06-15", "day", 2025, 6, 15),
		entry("2025-06-14", "day", 2025, 6, 14),
		entry("2025-W24", "week", 2025, 6, 9),
		entry("2025-06", "month", 2025, 6, 1),
	}
	require.NoError(t, Sync(db, entries))

	all, err := All(db, time.UTC)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	// newest date first
	assert.Equal(t, "2025-06-15", all[0].Name)

	counts, err := CountsByKind(db)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[periodic.KindDay])
	assert.Equal(t, 1, counts[periodic.KindWeek])
	assert.Equal(t, 1, counts[periodic.KindMonth])
}

func TestSyncReplaces(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Sync(db, []Entry{entry("2025-06-15", "day", 2025, 6, 15)}))
	require.NoError(t, Sync(db, []Entry{entry("2025-06-16", "day", 2025, 6, 16)}))

	all, err := All(db, time.UTC)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2025-06-16", all[0].Name)
}

func TestFilterKindAndRange(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Sync(db, []Entry{
		entry("2025-06-15", "day", 2025, 6, 15),
		entry("2025-05-01", "day", 2025, 5, 1),
		entry("2025-W24", "week", 2025, 6, 9),
	}))

	got, err := Notes(db, time.UTC, Filter{Kind: "day", Since: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}, 50, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-06-15", got[0].Name)

	n, err := Count(db, Filter{Kind: "day"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOnDate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Sync(db, []Entry{
		entry("2024-06-15", "day", 2024, 6, 15),
		entry("2025-06-15", "day", 2025, 6, 15),
	}))

	got, err := OnDate(db, time.UTC, periodic.KindDay, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-06-15", got[0].Name)
}

func TestClassifiedRoundTrip(t *testing.T) {
	entries := []Entry{
		entry("2025-06-15", "day", 2025, 6, 15),
		entry("2025-W24", "week", 2025, 6, 9),
	}
	cls := Classified(entries)
	require.Len(t, cls, 2)
	assert.Equal(t, periodic.KindDay, cls[0].Kind)
	assert.Equal(t, periodic.KindWeek, cls[1].Kind)
}

func TestEnsureTitleColumnIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, EnsureTitleColumn(db))
	require.NoError(t, EnsureTitleColumn(db))
}
