package blobstore

import (
	"context"
	"io"
	"testing"
)

func benchmarkOpens(b *testing.B, s Store, name string) {
	b.Helper()

	ctx := context.Background()
	buf := make([]byte, 32*1024)

	b.ResetTimer()
	for b.Loop() {
		rc, err := s.Open(ctx, name)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := io.CopyBuffer(io.Discard, rc, buf); err != nil {
			b.Fatal(err)
		}
		if err := rc.Close(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOpen(b *testing.B) {
	ctx := context.Background()

	mem := NewMemory()
	w, err := mem.Create(ctx, "blob")
	if err != nil {
		b.Fatal(err)
	}
	if _, err := w.Write(make([]byte, 1<<20)); err != nil {
		b.Fatal(err)
	}
	if err := w.Close(); err != nil {
		b.Fatal(err)
	}

	b.Run("direct", func(b *testing.B) { benchmarkOpens(b, mem, "blob") })
	b.Run("cached", func(b *testing.B) { benchmarkOpens(b, NewCached(mem, 4, 0), "blob") })
}
