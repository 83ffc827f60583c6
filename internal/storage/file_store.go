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

// FileStore keeps one JSON file per key under rootDir.
type FileStore struct {
	rootDir string
}

// NewFileStore creates rootDir if needed.
func NewFileStore(rootDir string) (*FileStore, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll > %w", err)
	}
	return &FileStore{rootDir: rootDir}, nil
}

func (f *FileStore) filePath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.rootDir, key+".json"), nil
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := f.filePath(key)
	if err != nil {
		return nil, err
	}
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}
	return contents, nil
}

func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	path, err := f.filePath(key)
	if err != nil {
		return err
	}

	// write to a temporary file first so readers never see a partial value
	tmp, err := os.CreateTemp(f.rootDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file.Write > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	path, err := f.filePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove > %w", err)
	}
	return nil
}

func (f *FileStore) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.rootDir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir > %w", err)
	}
	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *FileStore) Close() error {
	return nil
}
