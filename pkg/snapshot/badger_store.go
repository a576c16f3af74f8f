package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"syscall"

	"github.com/dgraph-io/badger/v3"

	"github.com/FrenchMajesty/dynamic-connectivity/internal/retry"
)

var badgerPrefix = []byte("snapshot/")

// BadgerStore implements Store on a badger database directory
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLogger forwards badger's printf-style logging to slog
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

// lockMessage is the text badger puts in the error from acquireDirectoryLock.
// badger does not export a sentinel for it, and outside its debug mode the
// underlying flock error is formatted into the message rather than wrapped,
// so the text is the only stable signal. Recheck it when upgrading badger.
const lockMessage = "Cannot acquire directory lock"

// isDirectoryLocked reports whether err means another process holds the
// database directory
func isDirectoryLocked(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EWOULDBLOCK) || strings.Contains(err.Error(), lockMessage)
}

// OpenBadgerStore opens or creates the badger database in dir. While another
// process holds the directory lock, opening is retried with backoff.
func OpenBadgerStore(ctx context.Context, dir string, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	badgerOpts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger: logger})
	opts := retry.Options{
		Config:       retry.DefaultConfig(),
		ErrorChecker: isDirectoryLocked,
		Logger:       logger.Debug,
		Operation:    "open badger store",
	}
	db, err := retry.Execute(ctx, opts, func(int) (*badger.DB, error) {
		return badger.Open(badgerOpts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store %s: %w", dir, err)
	}

	logger.Debug("opened badger snapshot store", "dir", dir)
	return &BadgerStore{db: db, logger: logger}, nil
}

func badgerKey(name string) []byte {
	return append(append([]byte{}, badgerPrefix...), name...)
}

// Save writes the snapshot, replacing any snapshot with the same name
func (b *BadgerStore) Save(ctx context.Context, s *Snapshot) error {
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

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(s.Name), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.Name, err)
	}
	b.logger.Debug("saved snapshot", "name", s.Name, "bytes", len(data))
	return nil
}

// Load reads the snapshot stored under name
func (b *BadgerStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var s *Snapshot
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			s, err = decode(name, val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns the stored snapshot names in sorted order
func (b *BadgerStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := []string{}
	err := b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchValues = false
		iterOpts.Prefix = badgerPrefix

		it := txn.NewIterator(iterOpts)
		defer it.Close()
		for it.Seek(badgerPrefix); it.ValidForPrefix(badgerPrefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			names = append(names, string(key[len(badgerPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return names, nil
}

// Delete removes the snapshot stored under name
func (b *BadgerStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		key := badgerKey(name)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// Close flushes and releases the database directory
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
