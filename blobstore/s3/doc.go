// Package s3 provides S3 implementations of the blobstore.Store and
// blobstore.Catalog interfaces.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("snapshots/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	catalog := s3.NewDDBCatalog(ddbClient, "lenskit-commits", "s3://my-bucket/snapshots/")
//	publisher := snapshot.NewPublisher(store, catalog)
//
// # Features
//
//   - Streaming multipart uploads for large snapshots
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - DynamoDB-backed catalog for safe concurrent publishers
package s3
