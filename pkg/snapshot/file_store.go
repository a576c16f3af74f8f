package snapshot

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

const fileExt = ".json"

// FileStore implements Store with one JSON file per snapshot in a directory
type FileStore struct {
	dir string
}

// NewFileStore creates a new file-based snapshot store. The directory is
// created on first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir: dir,
	}
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name+fileExt)
}

// Save writes the snapshot, replacing any snapshot with the same name
func (f *FileStore) Save(ctx context.Context, s *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(s.Name); err != nil {
		return err
	}

	data, err := marshal(s)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory %s: %w", f.dir, err)
	}

	// Readers never observe a partially written snapshot
	tmp, err := os.CreateTemp(f.dir, "."+s.Name+"-*")
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.Name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot %s: %w", s.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.Name, err)
	}
	if err := os.Rename(tmp.Name(), f.path(s.Name)); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.Name, err)
	}
	return nil
}

// Load reads the snapshot stored under name
func (f *FileStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot from file %s: %w", f.path(name), err)
	}
	return decode(name, data)
}

// List returns the stored snapshot names in sorted order. A missing
// directory holds no snapshots.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(f.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot directory %s: %w", f.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the snapshot stored under name
func (f *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	err := os.Remove(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", name, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles
func (f *FileStore) Close() error {
	return nil
}
