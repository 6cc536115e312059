package snapshot

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longlongdada/lenskit/blobstore"
	"github.com/longlongdada/lenskit/ratings"
	"github.com/longlongdada/lenskit/store"
)

func writeBlob(t *testing.T, bs blobstore.Store, name string, data []byte) {
	t.Helper()

	w, err := bs.Create(context.Background(), name)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

// failingStore injects write failures into an underlying store.
type failingStore struct {
	blobstore.Store
	writeErr error
}

func (s *failingStore) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	w, err := s.Store.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &failingWriter{w: w, err: s.writeErr}, nil
}

type failingWriter struct {
	w   io.WriteCloser
	err error
}

func (f *failingWriter) Write(p []byte) (int, error) { return 0, f.err }
func (f *failingWriter) Close() error                { return f.w.Close() }

func TestPublisherPublishLoad(t *testing.T) {
	ctx := context.Background()
	pub := NewPublisher(blobstore.NewMemory(), blobstore.NewMemoryCatalog())

	st := store.NewMemoryStore()
	st.AddAll(snapshotRatings())

	name, err := pub.Publish(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "snap-000001.lks", name)

	loaded, loadedName, err := pub.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, name, loadedName)
	assert.ElementsMatch(t, snapshotRatings(), loaded.Ratings())
}

func TestPublisherRepublish(t *testing.T) {
	ctx := context.Background()
	pub := NewPublisher(blobstore.NewMemory(), blobstore.NewMemoryCatalog())

	st := store.NewMemoryStore()
	st.AddAll(snapshotRatings())

	first, err := pub.Publish(ctx, st)
	require.NoError(t, err)

	st.Add(ratings.Rating{User: 4, Item: 40, Value: 5.0, Timestamp: 200})

	second, err := pub.Publish(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "snap-000002.lks", second)

	// The catalog now points at the second snapshot.
	loaded, loadedName, err := pub.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, loadedName)
	assert.Equal(t, 5, loaded.Len())

	names, err := pub.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, names)
}

func TestPublisherLoadEmpty(t *testing.T) {
	ctx := context.Background()
	pub := NewPublisher(blobstore.NewMemory(), blobstore.NewMemoryCatalog())

	_, _, err := pub.Load(ctx)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestPublisherListIgnoresForeignNames(t *testing.T) {
	ctx := context.Background()
	bs := blobstore.NewMemory()
	pub := NewPublisher(bs, blobstore.NewMemoryCatalog())

	st := store.NewMemoryStore()
	st.AddAll(snapshotRatings())

	name, err := pub.Publish(ctx, st)
	require.NoError(t, err)

	writeBlob(t, bs, "snap-backup.lks", []byte("not a snapshot"))
	writeBlob(t, bs, "notes.txt", []byte("unrelated"))

	names, err := pub.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)
}

func TestPublisherPrune(t *testing.T) {
	ctx := context.Background()
	pub := NewPublisher(blobstore.NewMemory(), blobstore.NewMemoryCatalog())

	st := store.NewMemoryStore()
	st.AddAll(snapshotRatings())

	for i := 0; i < 3; i++ {
		_, err := pub.Publish(ctx, st)
		require.NoError(t, err)
	}

	deleted, err := pub.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	names, err := pub.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"snap-000003.lks"}, names)

	// The remaining snapshot is still loadable.
	_, loadedName, err := pub.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "snap-000003.lks", loadedName)
}

func TestPublisherPruneKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	cat := blobstore.NewMemoryCatalog()
	pub := NewPublisher(blobstore.NewMemory(), cat)

	st := store.NewMemoryStore()
	st.AddAll(snapshotRatings())

	for i := 0; i < 3; i++ {
		_, err := pub.Publish(ctx, st)
		require.NoError(t, err)
	}

	// Roll the catalog back to the oldest snapshot.
	require.NoError(t, cat.Publish(ctx, "snap-000001.lks"))

	deleted, err := pub.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	names, err := pub.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"snap-000001.lks", "snap-000003.lks"}, names)
}

func TestPublisherPruneValidation(t *testing.T) {
	pub := NewPublisher(blobstore.NewMemory(), blobstore.NewMemoryCatalog())

	_, err := pub.Prune(context.Background(), 0)
	require.Error(t, err)
}

func TestPublisherPublishWriteFailure(t *testing.T) {
	ctx := context.Background()
	errBroken := errors.New("disk full")

	bs := blobstore.NewMemory()
	pub := NewPublisher(&failingStore{Store: bs, writeErr: errBroken}, blobstore.NewMemoryCatalog())

	st := store.NewMemoryStore()
	st.AddAll(snapshotRatings())

	_, err := pub.Publish(ctx, st)
	require.ErrorIs(t, err, errBroken)

	// The failed snapshot is cleaned up and never published.
	names, err := bs.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, _, err = pub.Load(ctx)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestParseSnapshotName(t *testing.T) {
	tests := []struct {
		name string
		id   int
		ok   bool
	}{
		{"snap-000001.lks", 1, true},
		{"snap-42.lks", 42, true},
		{"snap-000000.lks", 0, false},
		{"snap-abc.lks", 0, false},
		{"snap-000001.bin", 0, false},
		{"other-000001.lks", 0, false},
	}

	for _, tt := range tests {
		id, ok := parseSnapshotName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		if tt.ok {
			assert.Equal(t, tt.id, id, tt.name)
		}
	}
}
