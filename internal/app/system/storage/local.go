// internal/app/system/storage/local.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type localStore struct {
	dir  string
	base string
}

func newLocalStore(dir, base string) (*localStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("local storage dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	if base == "" {
		base = "/uploads"
	}
	return &localStore{dir: dir, base: strings.TrimRight(base, "/")}, nil
}

func (s *localStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ PutOptions) (string, error) {
	dst, err := s.pathFor(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write object: %w", err)
	}
	return s.URL(key), nil
}

func (s *localStore) URL(key string) string {
	return s.base + "/" + strings.TrimLeft(key, "/")
}

func (s *localStore) Remove(_ context.Context, key string) error {
	dst, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// pathFor rejects keys that would escape the storage dir.
func (s *localStore) pathFor(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}
