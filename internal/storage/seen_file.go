package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorruptSeenSet is returned when the seen file holds something other
// than a JSON array of strings.
var ErrCorruptSeenSet = errors.New("corrupt seen set")

// FileStore keeps the seen set as a JSON array in a single flat file.
type FileStore struct {
	filePath string
}

// NewFileStore creates a file-backed seen set store.
func NewFileStore(filePath string) *FileStore {
	return &FileStore{filePath: filePath}
}

// Path returns the location of the seen file.
func (fs *FileStore) Path() string {
	return fs.filePath
}

// Load reads the whole seen set into memory. A missing or empty file yields
// an empty set.
func (fs *FileStore) Load(_ context.Context) (SeenSet, error) {
	data, err := os.ReadFile(fs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return NewSeenSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read seen file %s: %w", fs.filePath, err)
	}

	if len(data) == 0 {
		return NewSeenSet(), nil
	}

	var hashes []string
	if err := json.Unmarshal(data, &hashes); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSeenSet, fs.filePath, err)
	}
	return NewSeenSet(hashes...), nil
}

// Save overwrites the seen file with the full set.
func (fs *FileStore) Save(_ context.Context, set SeenSet) error {
	data, err := json.MarshalIndent(set.Hashes(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen set: %w", err)
	}

	if dir := filepath.Dir(fs.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create seen file directory: %w", err)
		}
	}

	if err := os.WriteFile(fs.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write seen file %s: %w", fs.filePath, err)
	}
	return nil
}
