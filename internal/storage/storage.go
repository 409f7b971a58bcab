package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage holds the rendered PDF bytes behind an S3-compatible
// object store abstraction. Implementations stream through io.Reader and
// never touch local disk.

var (
	// ErrObjectNotFound is returned by Get when no object exists under the key.
	ErrObjectNotFound = errors.New("object not found")
	// ErrPresignUnsupported is returned by backends that cannot hand out URLs.
	ErrPresignUnsupported = errors.New("presigned urls are not supported by this storage backend")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
