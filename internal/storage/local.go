package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/maheshk/workpulse/internal/domain"
)

// LocalStore keeps objects on the local filesystem under a root directory.
// Locators are root-relative paths.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	key = filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(key, "..") || filepath.IsAbs(key) {
		return "", fmt.Errorf("%w: invalid object key %q", domain.ErrStorageUnavailable, key)
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	return key, nil
}

func (s *LocalStore) Delete(ctx context.Context, locator string) error {
	locator = filepath.ToSlash(filepath.Clean(locator))
	if strings.HasPrefix(locator, "..") || filepath.IsAbs(locator) {
		return fmt.Errorf("%w: invalid locator %q", domain.ErrStorageUnavailable, locator)
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(locator)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
