package blobstore

import (
	"bytes"
	"context"
	"io"

	"github.com/longlongdada/lenskit/internal/lru"
)

// Cached wraps a Store and keeps recently read blobs in memory.
//
// A blob enters the cache only after a reader has consumed it to EOF and
// closed it, so partial reads never poison the cache. Writes and deletes
// through the wrapper invalidate the affected name.
type Cached struct {
	inner        Store
	blobs        *lru.Cache[string, []byte]
	maxBlobBytes int64
}

// NewCached creates a caching wrapper holding up to capacity blobs.
// Blobs larger than maxBlobBytes bypass the cache; maxBlobBytes defaults
// to 64MB if <= 0.
func NewCached(inner Store, capacity int, maxBlobBytes int64) *Cached {
	if maxBlobBytes <= 0 {
		maxBlobBytes = 64 << 20
	}
	return &Cached{
		inner:        inner,
		blobs:        lru.New[string, []byte](capacity),
		maxBlobBytes: maxBlobBytes,
	}
}

// Open serves the blob from memory when cached, otherwise reads through
// and records the bytes for next time. Callers must not modify the
// returned data.
func (s *Cached) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if data, ok := s.blobs.Get(name); ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	rc, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	return &cachingReader{
		inner: rc,
		store: s,
		name:  name,
	}, nil
}

// Create passes through to the inner store and invalidates the name once
// the new bytes are committed.
func (s *Cached) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	wc, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &invalidatingWriter{inner: wc, store: s, name: name}, nil
}

// Delete invalidates the name and removes the blob.
func (s *Cached) Delete(ctx context.Context, name string) error {
	s.blobs.Remove(name)
	return s.inner.Delete(ctx, name)
}

// List passes through to the inner store.
func (s *Cached) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns the cache hit and miss counters.
func (s *Cached) Stats() (hits, misses int64) {
	return s.blobs.Stats()
}

// cachingReader tees the blob into a buffer while the caller reads it.
type cachingReader struct {
	inner io.ReadCloser
	store *Cached
	name  string

	buf      bytes.Buffer
	sawEOF   bool
	overflow bool
}

func (r *cachingReader) Read(p []byte) (int, error) {
	n, err := r.inner.Read(p)
	if n > 0 && !r.overflow {
		r.buf.Write(p[:n])
		if int64(r.buf.Len()) > r.store.maxBlobBytes {
			r.overflow = true
			r.buf.Reset()
		}
	}
	if err == io.EOF {
		r.sawEOF = true
	}
	return n, err
}

func (r *cachingReader) Close() error {
	err := r.inner.Close()
	if err == nil && r.sawEOF && !r.overflow {
		data := make([]byte, r.buf.Len())
		copy(data, r.buf.Bytes())
		r.store.blobs.Put(r.name, data)
	}
	return err
}

type invalidatingWriter struct {
	inner io.WriteCloser
	store *Cached
	name  string
}

func (w *invalidatingWriter) Write(p []byte) (int, error) {
	return w.inner.Write(p)
}

func (w *invalidatingWriter) Close() error {
	err := w.inner.Close()
	if err == nil {
		w.store.blobs.Remove(w.name)
	}
	return err
}
