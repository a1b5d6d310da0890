// internal/app/system/storage/storage.go

// Package storage abstracts where uploaded files live. The local backend
// serves files from disk through the app itself; the S3 backend hands out
// bucket URLs. Which one runs is a deployment choice (storage_type).
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownBackend is returned by New for an unrecognized storage_type.
var ErrUnknownBackend = errors.New("unknown storage backend")

// PutOptions carries metadata for a stored object.
type PutOptions struct {
	ContentType string
}

// Store is the minimal surface the upload features need.
type Store interface {
	// Put streams the object body under key and returns the public URL.
	Put(ctx context.Context, key string, body io.Reader, size int64, opts PutOptions) (string, error)
	// URL returns the public URL for an existing key.
	URL(key string) string
	// Remove deletes the object. Missing objects are not an error.
	Remove(ctx context.Context, key string) error
}

// Config selects and parameterizes a backend.
type Config struct {
	Type      string // "local" or "s3"
	LocalDir  string // local: directory files are written under
	LocalBase string // local: URL prefix the fileserver mounts at
	S3Bucket  string
	S3Region  string
	S3Prefix  string
}

// New builds the configured backend.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", "local":
		return newLocalStore(cfg.LocalDir, cfg.LocalBase)
	case "s3":
		return newS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix)
	default:
		return nil, ErrUnknownBackend
	}
}

// ObjectKey builds a collision-free key preserving the original extension.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
