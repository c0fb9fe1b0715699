package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// File is a Store backed by a single JSON file, the moral equivalent of
// browser localStorage. Writes go through to disk synchronously. Last
// writer wins if several processes share the file.
type File struct {
	mu   sync.Mutex
	path string
	data map[string][]byte
}

// OpenFile loads the store at path, creating an empty one if the file does
// not exist yet.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, data: make(map[string][]byte)}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv: read %s: %w", path, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.data); err != nil {
			return nil, fmt.Errorf("kv: parse %s: %w", path, err)
		}
	}
	return f, nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	f.data[key] = cp
	return f.flush()
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return f.flush()
}

func (f *File) flush() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("kv: marshal: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("kv: write %s: %w", f.path, err)
	}
	return nil
}
