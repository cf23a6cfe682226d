package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStore is the ObjectStore backed by a directory on the local filesystem.
// Writes go to a temporary file that is renamed into place, so a reader never
// observes a half-written object.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed and returns a store on it.
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("NewLocalStore: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("NewLocalStore: create %q: %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Put writes data under name, overwriting any previous file.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return fmt.Errorf("LocalStore.Put: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("LocalStore.Put: create dir for %q: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-"+filepath.Base(p)+"-*")
	if err != nil {
		return fmt.Errorf("LocalStore.Put: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("LocalStore.Put: write %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("LocalStore.Put: close %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("LocalStore.Put: rename into %q: %w", name, err)
	}
	return nil
}

// Get reads the file stored under name.
func (s *LocalStore) Get(ctx context.Context, name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, fmt.Errorf("LocalStore.Get: %w", err)
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("LocalStore.Get: %s: %w", p, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("LocalStore.Get: read %s: %w", p, err)
	}
	return data, nil
}

// List returns slash-separated names of files under prefix, sorted.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("LocalStore.List: walk %s: %w", s.root, err)
	}
	sort.Strings(names)
	return names, nil
}

// URI returns the filesystem path of name.
func (s *LocalStore) URI(name string) string {
	p, err := s.path(name)
	if err != nil {
		return filepath.Join(s.root, name)
	}
	return p
}

// Close is a no-op for the local store.
func (s *LocalStore) Close() error {
	return nil
}

var _ ObjectStore = (*LocalStore)(nil)
