package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var ErrNotFound = errors.New("file not found")

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores size bytes from reader at key
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Get opens the file at key; a missing file is ErrNotFound
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the file at key; a missing file is not an error
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists at key
	Exists(ctx context.Context, key string) (bool, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, minio
	BasePath  string // local
	Bucket    string // s3, minio
	Region    string // s3
	AccessKey string
	SecretKey string
	Endpoint  string // minio host:port or custom s3 endpoint
	UseSSL    bool
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "minio":
		return NewMinioStorage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
