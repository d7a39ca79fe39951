package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("file not found")

type FileStorage interface {
	// Upload writes file at path and returns the cleaned path
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Move renames a stored file, creating the target directory
	Move(ctx context.Context, from, to string) error

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// RemoveAll removes a directory tree
	RemoveAll(ctx context.Context, dir string) error

	// URL returns the public URL a stored path is served under
	URL(path string) string

	// PathFromURL reverses URL; ok is false for URLs outside the storage
	PathFromURL(url string) (path string, ok bool)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}

// PrivateDir holds scratch files. The uploads file server never serves it.
const PrivateDir = "tmp"
