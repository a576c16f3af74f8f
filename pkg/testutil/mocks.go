package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/FrenchMajesty/dynamic-connectivity/pkg/snapshot"
)

// MockStore is an in-memory implementation of snapshot.Store for testing
type MockStore struct {
	SaveFunc func(ctx context.Context, s *snapshot.Snapshot) error
	LoadFunc func(ctx context.Context, name string) (*snapshot.Snapshot, error)

	mu        sync.Mutex
	SaveCount int
	LoadCount int
	Closed    bool
	LastSaved *snapshot.Snapshot
	Storage   map[string]*snapshot.Snapshot
}

func NewMockStore() *MockStore {
	return &MockStore{
		Storage: make(map[string]*snapshot.Snapshot),
	}
}

func (m *MockStore) Save(ctx context.Context, s *snapshot.Snapshot) error {
	m.mu.Lock()
	m.SaveCount++
	m.LastSaved = s
	m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Storage[s.Name] = s
	return nil
}

func (m *MockStore) Load(ctx context.Context, name string) (*snapshot.Snapshot, error) {
	m.mu.Lock()
	m.LoadCount++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Storage[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", snapshot.ErrNotFound, name)
	}
	return s, nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.Storage))
	for name := range m.Storage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Storage[name]; !ok {
		return fmt.Errorf("%w: %s", snapshot.ErrNotFound, name)
	}
	delete(m.Storage, name)
	return nil
}

func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
