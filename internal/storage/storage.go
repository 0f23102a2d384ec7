// Package storage archives original uploads to an S3-compatible object store.
// The archive is a best-effort side channel: the document pipeline succeeds
// or fails independently of it. Implementations must rely on streaming I/O
// only, never local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions define optional parameters for archiving an object.
// Size should be the exact number of bytes if known; -1 lets the backend
// buffer or chunk as it supports.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes an archived object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is a write-only S3-compatible archive client. The pipeline only
// ever writes originals; nothing reads them back or prunes them, so the
// port stays as narrow as its single caller.
type Storage interface {
	// Put uploads an object under the given key from the provided reader.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
}
