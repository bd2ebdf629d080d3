package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each key in its own JSON file inside a directory.
type FileStore struct {
	dir string
}

var _ KeyValueStore = (*FileStore)(nil)

// NewFileStore returns a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(key string) string {
	name := strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(key)
	return filepath.Join(s.dir, name+".json")
}

// Get implements KeyValueStore.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: failed to read %q: %w", ErrStorageFailure, key, err)
	}
	return payload, true, nil
}

// Set implements KeyValueStore. The file is replaced atomically.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create store dir: %w", ErrStorageFailure, err)
	}
	tmpFile, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file for %q: %w", ErrStorageFailure, key, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(value); err != nil {
		return fmt.Errorf("%w: failed to write %q: %w", ErrStorageFailure, key, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %q: %w", ErrStorageFailure, key, err)
	}
	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		return fmt.Errorf("%w: failed to replace %q: %w", ErrStorageFailure, key, err)
	}
	return nil
}
