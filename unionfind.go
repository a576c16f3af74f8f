// Package unionfind tracks dynamic connectivity over a fixed universe of
// elements 0..N-1.
//
// A UnionFind answers whether two elements are in the same set and merges
// the sets of two elements. Every strategy yields the same partition for
// the same sequence of unions.
package unionfind

import (
	"encoding/json"
	"fmt"

	"github.com/FrenchMajesty/dynamic-connectivity/utils/disjoint_set"
)

var (
	// ErrOutOfRange is returned when an element lies outside [0, N)
	ErrOutOfRange = disjoint_set.ErrOutOfRange

	// ErrInvalidSize is returned when N is not a positive integer
	ErrInvalidSize = disjoint_set.ErrInvalidSize

	// ErrCorruptState is returned when encoded state cannot be restored
	ErrCorruptState = disjoint_set.ErrCorruptState
)

// OutOfRangeError carries the rejected element and the universe size
type OutOfRangeError = disjoint_set.OutOfRangeError

// UnionFind is a disjoint-set structure over the elements 0..Len()-1.
//
// Implementations are not safe for concurrent use; see Synchronized.
type UnionFind interface {
	// Connected reports whether p and q are in the same set
	Connected(p, q int) (bool, error)

	// Union merges the sets containing p and q. Both indices are validated
	// before any state changes.
	Union(p, q int) error

	// Find returns the canonical representative of p's set
	Find(p int) (int, error)

	// Len returns N
	Len() int

	// Count returns the number of distinct sets
	Count() int

	// Components returns every set, each sorted, ordered by smallest member
	Components() [][]int
}

// New creates a UnionFind with the given configuration. Every element starts
// in its own set.
func New(cfg Config) (UnionFind, error) {
	cfg.applyDefaults()

	switch cfg.Strategy {
	case StrategyQuickFind:
		uf, err := disjoint_set.NewQuickFind(cfg.Size)
		if err != nil {
			return nil, err
		}
		return uf, nil
	case StrategyQuickUnion:
		uf, err := disjoint_set.NewQuickUnion(cfg.Size)
		if err != nil {
			return nil, err
		}
		return uf, nil
	case StrategyWeighted:
		uf, err := disjoint_set.NewWeighted(cfg.Size)
		if err != nil {
			return nil, err
		}
		return uf, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
}

// StrategyOf reports which strategy backs uf. Synchronized wrappers are
// looked through.
func StrategyOf(uf UnionFind) (Strategy, error) {
	if s, ok := uf.(*synchronized); ok {
		uf = s.uf
	}

	switch uf.(type) {
	case *disjoint_set.QuickFind:
		return StrategyQuickFind, nil
	case *disjoint_set.QuickUnion:
		return StrategyQuickUnion, nil
	case *disjoint_set.Weighted:
		return StrategyWeighted, nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnknownStrategy, uf)
}

// Encoded is the serialized state of a UnionFind together with its size and
// set count, all read at the same moment
type Encoded struct {
	Strategy   Strategy
	Size       int
	Components int
	Data       []byte
}

// Encode serializes the state of an in-memory UnionFind. A Synchronized
// structure stays locked until the state and its header have been read.
func Encode(uf UnionFind) (*Encoded, error) {
	strategy, err := StrategyOf(uf)
	if err != nil {
		return nil, err
	}

	if s, ok := uf.(*synchronized); ok {
		s.mu.RLock()
		defer s.mu.RUnlock()
		uf = s.uf
	}

	data, err := json.Marshal(uf)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s state: %w", strategy, err)
	}
	return &Encoded{
		Strategy:   strategy,
		Size:       uf.Len(),
		Components: uf.Count(),
		Data:       data,
	}, nil
}

// Decode rebuilds a UnionFind from state produced by Encode
func Decode(strategy Strategy, data []byte) (UnionFind, error) {
	var uf UnionFind
	switch strategy {
	case StrategyQuickFind:
		uf = &disjoint_set.QuickFind{}
	case StrategyQuickUnion:
		uf = &disjoint_set.QuickUnion{}
	case StrategyWeighted:
		uf = &disjoint_set.Weighted{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	if err := json.Unmarshal(data, uf); err != nil {
		return nil, fmt.Errorf("failed to decode %s state: %w", strategy, err)
	}
	return uf, nil
}
