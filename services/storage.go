package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists uploaded media bytes under opaque keys
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	// Remove deletes the object; a missing object yields an error matching os.ErrNotExist
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

// LocalFileStore keeps media in a directory on local disk
type LocalFileStore struct {
	dir           string
	publicBaseURL string
}

func NewLocalFileStore(dir, publicBaseURL string) *LocalFileStore {
	return &LocalFileStore{
		dir:           dir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *LocalFileStore) path(key string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + key))
	if clean == "/" || clean == "." || clean != key {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}

// Save writes r to a temporary file and renames it into place
func (s *LocalFileStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	target, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return 0, fmt.Errorf("failed to store %s: %w", key, err)
	}
	return written, nil
}

func (s *LocalFileStore) Remove(_ context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	return os.Remove(target)
}

func (s *LocalFileStore) URL(key string) string {
	return s.publicBaseURL + "/uploads/" + key
}
