// Package snapshot persists rating stores as self-describing binary
// files.
//
// A snapshot records the codec and compression it was written with, an
// exact rating count, and a CRC32 of the compressed payload, so any
// reader can validate and decode it without out-of-band knowledge.
// Snapshots are immutable once written; Publisher layers versioned
// naming and a current-snapshot catalog on top of a blob store.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/longlongdada/lenskit/codec"
	"github.com/longlongdada/lenskit/ratings"
	"github.com/longlongdada/lenskit/store"
)

// Options configures how a snapshot is written.
type Options struct {
	// Codec encodes the rating payload. Defaults to codec.Default.
	Codec codec.Codec

	// Compression is applied to the encoded payload. Defaults to
	// CompressionZstd.
	Compression Compression
}

// Option modifies the write Options.
type Option func(*Options)

// WithCodec sets the payload codec.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) {
		o.Codec = c
	}
}

// WithCompression sets the payload compression.
func WithCompression(c Compression) Option {
	return func(o *Options) {
		o.Compression = c
	}
}

// document is the encoded payload of a snapshot file.
type document struct {
	CreatedAt int64            `json:"created_at"`
	Ratings   []ratings.Rating `json:"ratings"`
}

// Write writes all ratings held by st to w as a snapshot file.
func Write(w io.Writer, st *store.MemoryStore, optFns ...Option) error {
	opts := Options{
		Codec:       codec.Default,
		Compression: CompressionZstd,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	name := opts.Codec.Name()
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("invalid codec name %q", name)
	}

	doc := document{
		CreatedAt: time.Now().Unix(),
		Ratings:   st.Ratings(),
	}

	payload, err := opts.Codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)
	if err := compressTo(cw, payload, opts.Compression); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	header := FileHeader{
		Magic:        MagicNumber,
		Version:      Version,
		Compression:  uint8(opts.Compression),
		CodecNameLen: uint8(len(name)),
		RatingCount:  uint64(len(doc.Ratings)),
		PayloadSize:  uint64(buf.Len()),
		Checksum:     cw.Sum(),
	}

	if err := binary.Write(w, byteOrder, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := io.WriteString(w, name); err != nil {
		return fmt.Errorf("write codec name: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Read reads a snapshot file and returns its ratings in a fresh
// in-memory store. Corrupt payloads surface as ChecksumMismatchError.
func Read(r io.Reader) (*store.MemoryStore, error) {
	var header FileHeader
	if err := binary.Read(r, byteOrder, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, header.Version)
	}

	nameBuf := make([]byte, header.CodecNameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, fmt.Errorf("read codec name: %w", err)
	}

	c, ok := codec.ByName(string(nameBuf))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, nameBuf)
	}

	cr := NewChecksumReader(r)
	compressed := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(cr, compressed); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if err := cr.Verify(header.Checksum); err != nil {
		return nil, err
	}

	payload, err := decompress(compressed, Compression(header.Compression))
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var doc document
	if err := c.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if uint64(len(doc.Ratings)) != header.RatingCount {
		return nil, fmt.Errorf("rating count mismatch: header says %d, payload has %d",
			header.RatingCount, len(doc.Ratings))
	}

	st := store.NewMemoryStore()
	st.AddAll(doc.Ratings)
	return st, nil
}

func compressTo(w io.Writer, data []byte, c Compression) error {
	switch c {
	case CompressionNone:
		_, err := w.Write(data)
		return err

	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()

	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()

	default:
		return fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

func decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)

	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
