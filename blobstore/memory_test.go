package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	// 1. Nothing before Close
	w, err := store.Create(ctx, "a.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)

	_, err = store.Open(ctx, "a.bin")
	require.ErrorIs(t, err, ErrNotFound, "blob must not be visible before Close")

	require.NoError(t, w.Close())

	// 2. Read back
	rc, err := store.Open(ctx, "a.bin")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "payload", string(got))

	// 3. List is prefix-filtered and sorted
	for _, name := range []string{"c.bin", "b/nested.bin"} {
		w, err := store.Create(ctx, name)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.bin", "b/nested.bin", "c.bin"}, names)

	names, err = store.List(ctx, "b/")
	require.NoError(t, err)
	assert.Equal(t, []string{"b/nested.bin"}, names)

	// 4. Delete
	require.NoError(t, store.Delete(ctx, "a.bin"))
	_, err = store.Open(ctx, "a.bin")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, store.Len())
}

func TestMemory_OpenSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	w, err := store.Create(ctx, "a.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("old"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rc, err := store.Open(ctx, "a.bin")
	require.NoError(t, err)
	defer rc.Close()

	// Overwrite while the reader is open
	w, err = store.Create(ctx, "a.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "an open reader keeps its snapshot")
}

func TestMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := NewMemoryCatalog()

	_, err := catalog.Current(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, catalog.Publish(ctx, "snap-000001.lks"))

	name, err := catalog.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "snap-000001.lks", name)

	require.NoError(t, catalog.Publish(ctx, "snap-000002.lks"))

	name, err = catalog.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "snap-000002.lks", name)
}
