// Package s3 provides a fetch.Source backed by Amazon S3.
package s3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"logslice/fetch"
)

// Client is the subset of the S3 API the source depends on.
// *s3.Client satisfies it.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Source fetches the archive object from an S3 bucket using the transfer
// manager's parallel part downloads.
type Source struct {
	client Client
	bucket string
	key    string

	// PartSize overrides the manager's download part size when positive.
	PartSize int64
	// Concurrency overrides the manager's parallel part count when positive.
	Concurrency int
}

// New creates an S3 source for s3://bucket/key.
func New(client Client, bucket, key string) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

// Fetch downloads the object into dir and returns the file path.
func (s *Source) Fetch(ctx context.Context, dir string) (string, error) {
	// Verify existence first so a missing object maps cleanly instead of
	// surfacing as a mid-download failure.
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return "", fmt.Errorf("fetch: s3://%s/%s: %w", s.bucket, s.key, fetch.ErrNotFound)
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return "", fmt.Errorf("fetch: s3://%s/%s: %w", s.bucket, s.key, fetch.ErrNotFound)
		}
		return "", fmt.Errorf("fetch: head s3://%s/%s: %w", s.bucket, s.key, err)
	}

	outPath := filepath.Join(dir, path.Base(s.key))
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	downloader := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		if s.PartSize > 0 {
			d.PartSize = s.PartSize
		}
		if s.Concurrency > 0 {
			d.Concurrency = s.Concurrency
		}
	})

	if _, err := downloader.Download(ctx, out, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	}); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("fetch: download s3://%s/%s: %w", s.bucket, s.key, err)
	}

	return outPath, nil
}
