// Package snapshot provides file- and memory-backed persistence slots for
// the ledger. Each slot is a named durable location holding one collection's
// JSON document, read at startup and overwritten after each mutation.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each slot in <dir>/<key>.json. Writes go through a temp
// file and rename so a crashed write never leaves a truncated slot behind.
type FileStore struct {
	dir string
}

// NewFileStore ensures the data directory exists and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) (string, error) {
	// Slot keys are fixed identifiers; reject anything that could escape
	// the data directory.
	if key == "" || strings.ContainsAny(key, `/\.`) {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	payload, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return payload, true, nil
}

func (f *FileStore) Save(_ context.Context, key string, payload []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("replace slot %s: %w", key, err)
	}
	return nil
}
