package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CacheStore persists the skill embedding cache between process runs.
type CacheStore interface {
	Load(ctx context.Context) (map[string][]float32, error)
	Save(ctx context.Context, entries map[string][]float32) error
}

type fileCacheStore struct {
	path string
}

// NewFileCacheStore keeps the cache as a JSON object mapping each skill to
// its vector.
func NewFileCacheStore(path string) CacheStore {
	return &fileCacheStore{path: path}
}

// Load implements CacheStore. A missing file is an empty cache.
func (s *fileCacheStore) Load(_ context.Context) (map[string][]float32, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]float32{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding cache: %w", err)
	}

	entries := make(map[string][]float32)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode embedding cache: %w", err)
	}

	return entries, nil
}

// Save implements CacheStore. The file is replaced atomically.
func (s *fileCacheStore) Save(_ context.Context, entries map[string][]float32) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode embedding cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write embedding cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close embedding cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace embedding cache: %w", err)
	}

	return nil
}
