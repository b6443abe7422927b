package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leighmacdonald/dota-tui/internal/store"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *store.Queries {
	t.Helper()

	database, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return store.New(database)
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()
	queries := openDB(t)

	inserted, err := queries.SnapshotInsert(ctx, store.SnapshotInsertParams{ReceivedAt: 20, PayloadHash: "b", Payload: []byte(`{"b":1}`)})
	require.NoError(t, err)
	require.Equal(t, int64(1), inserted)

	_, err = queries.SnapshotInsert(ctx, store.SnapshotInsertParams{ReceivedAt: 10, PayloadHash: "a", Payload: []byte(`{"a":1}`)})
	require.NoError(t, err)

	// Duplicate payloads are skipped.
	duplicate, errDup := queries.SnapshotInsert(ctx, store.SnapshotInsertParams{ReceivedAt: 30, PayloadHash: "a", Payload: []byte(`{"a":1}`)})
	require.NoError(t, errDup)
	require.Equal(t, int64(0), duplicate)

	count, errCount := queries.SnapshotCount(ctx)
	require.NoError(t, errCount)
	require.Equal(t, int64(2), count)

	rows, errRows := queries.Snapshots(ctx)
	require.NoError(t, errRows)
	require.Len(t, rows, 2)
	require.Equal(t, "a", rows[0].PayloadHash)
	require.Equal(t, "b", rows[1].PayloadHash)

	pruned, errPrune := queries.SnapshotsPrune(ctx, 15)
	require.NoError(t, errPrune)
	require.Equal(t, int64(1), pruned)
}

func TestMigrateDown(t *testing.T) {
	ctx := context.Background()
	database, err := store.Open(ctx, filepath.Join(t.TempDir(), "test.sqlite"), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, store.Migrate(database, store.MigrateDn))
	_, errCount := store.New(database).SnapshotCount(ctx)
	require.Error(t, errCount)

	require.NoError(t, store.Migrate(database, store.MigrateUp))
	require.NoError(t, store.Migrate(database, store.MigrateUp))
}

func TestOpenInMemory(t *testing.T) {
	ctx := context.Background()
	database, err := store.Open(ctx, "", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	queries := store.New(database)
	for idx, hash := range []string{"a", "b", "c"} {
		_, errInsert := queries.SnapshotInsert(ctx, store.SnapshotInsertParams{
			ReceivedAt: int64(idx), PayloadHash: hash, Payload: []byte(`{}`),
		})
		require.NoError(t, errInsert)
	}

	// Every query must land on the migrated database.
	count, errCount := queries.SnapshotCount(ctx)
	require.NoError(t, errCount)
	require.Equal(t, int64(3), count)
	require.Equal(t, 1, database.Stats().MaxOpenConnections)
}

func TestMigrateUnknownAction(t *testing.T) {
	database, err := store.Open(context.Background(), "", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.ErrorIs(t, store.Migrate(database, store.MigrationAction(99)), store.ErrMigrate)
}
