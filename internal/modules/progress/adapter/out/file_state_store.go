package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	progressout "mente/internal/modules/progress/port/out"
	apperrors "mente/internal/platform/errors"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStateStore keeps one JSON file per key under dir.
type FileStateStore struct {
	dir string
}

func NewFileStateStore(dir string) progressout.StateStore {
	return &FileStateStore{dir: dir}
}

func (s *FileStateStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: state key %q", apperrors.ErrInvalidInput, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStateStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrKeyNotFound
		}
		return nil, fmt.Errorf("read state %s: %w", key, err)
	}
	return payload, nil
}

// Put writes through a temp file and rename so a crash never leaves a torn blob.
func (s *FileStateStore) Put(_ context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit state %s: %w", key, err)
	}
	return nil
}
