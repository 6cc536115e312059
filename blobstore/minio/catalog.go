package minio

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/longlongdada/lenskit/blobstore"
)

// Compile time check to ensure Catalog satisfies the Catalog interface.
var _ blobstore.Catalog = (*Catalog)(nil)

// Catalog implements blobstore.Catalog as a small pointer object.
// Publishing overwrites the object, so the last writer wins; use a
// coordinating catalog such as s3.DDBCatalog when publishers race.
type Catalog struct {
	client *minio.Client
	bucket string
	key    string
}

// NewCatalog creates a catalog that stores the current snapshot name
// in the object at key.
func NewCatalog(client *minio.Client, bucket, key string) *Catalog {
	return &Catalog{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

// Publish points the catalog at name.
func (c *Catalog) Publish(ctx context.Context, name string) error {
	data := []byte(name + "\n")
	_, err := c.client.PutObject(ctx, c.bucket, c.key,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// Current returns the published name, or blobstore.ErrNotFound if
// nothing has been published yet.
func (c *Catalog) Current(ctx context.Context) (string, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, c.key, minio.GetObjectOptions{})
	if err != nil {
		return "", err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return "", blobstore.ErrNotFound
		}
		return "", err
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", blobstore.ErrNotFound
	}
	return name, nil
}
