// Package snapshot saves and restores the state of in-memory union-find
// structures under a name.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
)

var (
	// ErrNotFound is returned when no snapshot is stored under a name
	ErrNotFound = errors.New("snapshot not found")

	// ErrInvalidName is returned for empty names or names that cannot be used as keys
	ErrInvalidName = errors.New("invalid snapshot name")

	// ErrUnknownBackend is returned by Open for an unrecognized backend
	ErrUnknownBackend = errors.New("unknown snapshot backend")
)

// Snapshot is the persisted form of a union-find structure
type Snapshot struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Strategy   unionfind.Strategy `json:"strategy"`
	Size       int                `json:"size"`
	Components int                `json:"components"`
	CreatedAt  time.Time          `json:"created_at"`
	State      json.RawMessage    `json:"state"`
}

// Capture records the current state of uf under name
func Capture(name string, uf unionfind.UnionFind) (*Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	enc, err := unionfind.Encode(uf)
	if err != nil {
		return nil, fmt.Errorf("failed to capture snapshot %s: %w", name, err)
	}

	return &Snapshot{
		ID:         uuid.New().String(),
		Name:       name,
		Strategy:   enc.Strategy,
		Size:       enc.Size,
		Components: enc.Components,
		CreatedAt:  time.Now().UTC(),
		State:      enc.Data,
	}, nil
}

// Restore rebuilds the union-find structure held by the snapshot
func (s *Snapshot) Restore() (unionfind.UnionFind, error) {
	uf, err := unionfind.Decode(s.Strategy, s.State)
	if err != nil {
		return nil, fmt.Errorf("failed to restore snapshot %s: %w", s.Name, err)
	}

	if uf.Len() != s.Size || uf.Count() != s.Components {
		return nil, fmt.Errorf("failed to restore snapshot %s: %w: header says %d elements in %d sets, state has %d in %d",
			s.Name, unionfind.ErrCorruptState, s.Size, s.Components, uf.Len(), uf.Count())
	}
	return uf, nil
}

// Store persists snapshots by name
type Store interface {
	Save(ctx context.Context, s *Snapshot) error
	Load(ctx context.Context, name string) (*Snapshot, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// ValidateName accepts names made of letters, digits, '-', '_' and '.'
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

// Backend names a Store implementation
type Backend string

const (
	BackendFile   Backend = "file"
	BackendBolt   Backend = "bolt"
	BackendBadger Backend = "badger"
)

// ParseBackend converts a backend name. An empty name selects BackendFile.
func ParseBackend(name string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	switch b {
	case "":
		return BackendFile, nil
	case BackendFile, BackendBolt, BackendBadger:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// DefaultPath returns the store location used for backend when none is given.
// Each backend gets its own, since a file store is a directory of JSON files,
// a bolt store is a single file and a badger store is a database directory.
func DefaultPath(backend Backend) string {
	switch backend {
	case BackendBolt:
		return "./snapshots.db"
	case BackendBadger:
		return "./snapshots.badger"
	}
	return "./snapshots"
}

// Open opens the store for backend at path. For the file backend path is a
// directory; for bolt it is the database file; for badger it is the database
// directory. A nil logger discards log output.
func Open(ctx context.Context, backend Backend, path string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendBolt:
		store, err := OpenBoltStore(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendBadger:
		store, err := OpenBadgerStore(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

func marshal(s *Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot %s: %w", s.Name, err)
	}
	return data, nil
}

func decode(name string, data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", name, err)
	}
	return &s, nil
}
