package snapshot

import (
	"encoding/binary"
	"errors"
)

const (
	// MagicNumber identifies snapshot files (ASCII: "LKS1")
	MagicNumber = 0x4C4B5331
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000
)

// byteOrder is the on-disk byte order for all header fields.
var byteOrder = binary.LittleEndian

// Compression identifies the payload compression recorded in the header.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionZstd compresses the payload with zstd (the default).
	CompressionZstd Compression = 1
	// CompressionLZ4 compresses the payload with the lz4 frame format.
	CompressionLZ4 Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCodec       = errors.New("unknown codec")
	ErrUnknownCompression = errors.New("unknown compression")
)

// FileHeader is the fixed-size header at the start of every snapshot
// file. The variable-length codec name follows immediately after it,
// then the compressed payload.
type FileHeader struct {
	Magic        uint32 // 0x4C4B5331 ("LKS1")
	Version      uint32 // File format version
	Compression  uint8  // Payload compression, see Compression
	CodecNameLen uint8  // Length of the codec name after the header
	Padding1     [2]byte
	RatingCount  uint64 // Number of ratings in the payload
	PayloadSize  uint64 // Compressed payload size in bytes
	Checksum     uint32 // CRC32 of the compressed payload
	Padding2     [4]byte
}
