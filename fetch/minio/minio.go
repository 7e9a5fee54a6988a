// Package minio provides a fetch.Source for MinIO and other S3-compatible
// object stores.
package minio

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"

	"logslice/fetch"
)

// Source fetches the archive object from a MinIO bucket.
type Source struct {
	client *minio.Client
	bucket string
	object string
}

// New creates a MinIO source for the given bucket and object key.
func New(client *minio.Client, bucket, object string) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		object: object,
	}
}

// Fetch downloads the object into dir and returns the file path.
func (s *Source) Fetch(ctx context.Context, dir string) (string, error) {
	outPath := filepath.Join(dir, path.Base(s.object))

	err := s.client.FGetObject(ctx, s.bucket, s.object, outPath, minio.GetObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return "", fmt.Errorf("fetch: %s/%s: %w", s.bucket, s.object, fetch.ErrNotFound)
		}
		return "", fmt.Errorf("fetch: get %s/%s: %w", s.bucket, s.object, err)
	}

	return outPath, nil
}
