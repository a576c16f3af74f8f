package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/FrenchMajesty/dynamic-connectivity/internal/retry"
)

var snapshotsBucket = []byte("snapshots")

// BoltStore implements Store on a single bbolt database file
type BoltStore struct {
	db     *bbolt.DB
	logger *slog.Logger
}

// OpenBoltStore opens or creates the database at path. While another process
// holds the file lock, opening is retried with backoff.
func OpenBoltStore(ctx context.Context, path string, logger *slog.Logger) (*BoltStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create bolt directory for %s: %w", path, err)
	}

	opts := retry.Options{
		Config: retry.DefaultConfig(),
		ErrorChecker: func(err error) bool {
			return errors.Is(err, bbolt.ErrTimeout)
		},
		Logger:    logger.Debug,
		Operation: "open bolt store",
	}
	db, err := retry.Execute(ctx, opts, func(int) (*bbolt.DB, error) {
		return bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshots bucket: %w", err)
	}

	logger.Debug("opened bolt snapshot store", "path", path)
	return &BoltStore{db: db, logger: logger}, nil
}

// Save writes the snapshot, replacing any snapshot with the same name
func (b *BoltStore) Save(ctx context.Context, s *Snapshot) error {
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

	err = b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Put([]byte(s.Name), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.Name, err)
	}
	b.logger.Debug("saved snapshot", "name", s.Name, "bytes", len(data))
	return nil
}

// Load reads the snapshot stored under name
func (b *BoltStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var s *Snapshot
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(snapshotsBucket).Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		// data is only valid inside the transaction
		var err error
		s, err = decode(name, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns the stored snapshot names in sorted order
func (b *BoltStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := []string{}
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return names, nil
}

// Delete removes the snapshot stored under name
func (b *BoltStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(snapshotsBucket)
		if bucket.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return bucket.Delete([]byte(name))
	})
}

// Close releases the database file lock
func (b *BoltStore) Close() error {
	return b.db.Close()
}
