// Package blobstore provides storage abstraction for published rating
// snapshots.
//
// Store is the interface for reading and writing immutable blobs; Catalog
// tracks which snapshot is the current one. Implementations must be safe
// for concurrent use.
//
// # Built-in Implementations
//
//   - Memory: in-memory store and catalog for tests
//   - Local: local filesystem with atomic temp-and-rename writes
//   - s3.Store: Amazon S3 with streaming multipart uploads
//   - s3.DDBCatalog: DynamoDB-backed catalog with conditional writes
//   - minio.Store: MinIO and other S3-compatible object stores
//
// # Custom Implementations
//
// Implement the Store interface to support custom backends:
//
//	type Store interface {
//	    Open(ctx, name) (io.ReadCloser, error)    // Sequential read
//	    Create(ctx, name) (io.WriteCloser, error) // Committed on Close
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
