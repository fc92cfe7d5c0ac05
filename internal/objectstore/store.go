// Package objectstore keeps raw extracted batches as immutable objects addressed by key.
package objectstore

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("object not found")

type (
	// Store is a flat key space with '/' separated keys.
	Store interface {
		// Put writes data under key, replacing any previous object.
		Put(ctx context.Context, key string, data []byte) error
		Get(ctx context.Context, key string) ([]byte, error)
		// List returns the keys starting with prefix in lexical order.
		List(ctx context.Context, prefix string) ([]string, error)
		// Delete removes key. Deleting a missing key is not an error.
		Delete(ctx context.Context, key string) error
	}

	// S3Client is the part of the S3 API the store uses.
	S3Client interface {
		HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
		ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	}

	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// observed records an operation's outcome, counting a missing key as success.
func observed(metrics Metrics, operation string, err error, started time.Time) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.Observe(operation, err, started)
}
