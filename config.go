package unionfind

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects the internal representation of a UnionFind
type Strategy string

const (
	// StrategyQuickFind labels every element with its set's tag. O(1) Connected, O(N) Union.
	StrategyQuickFind Strategy = "quick-find"

	// StrategyQuickUnion keeps an unbalanced forest of parent pointers.
	StrategyQuickUnion Strategy = "quick-union"

	// StrategyWeighted keeps a forest balanced by size with path halving.
	StrategyWeighted Strategy = "weighted"

	// DefaultStrategy is used when Config.Strategy is empty
	DefaultStrategy = StrategyQuickUnion
)

// ErrUnknownStrategy is returned for a strategy name that is not recognized
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategies lists every supported strategy
func Strategies() []Strategy {
	return []Strategy{StrategyQuickFind, StrategyQuickUnion, StrategyWeighted}
}

// ParseStrategy converts a name such as "quick-find" or "weighted" to a Strategy
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case "":
		return DefaultStrategy, nil
	case StrategyQuickFind, StrategyQuickUnion, StrategyWeighted:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Config holds configuration for a UnionFind
type Config struct {
	// Size is the number of elements N. Elements are 0..N-1. Must be positive.
	Size int

	// Strategy selects the implementation. If empty, uses DefaultStrategy.
	Strategy Strategy
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
}
