// Package disjoint_set implements fixed-size union-find structures over the
// elements 0..N-1.
//
// Three strategies share the same contract: QuickFind (flat labeling),
// QuickUnion (unbalanced forest) and Weighted (union-by-size with path
// halving). They differ in cost, never in which elements are connected.
//
// None of the types are safe for concurrent use.
package disjoint_set

import "fmt"

// groupBy buckets elements by representative. Elements are visited in
// ascending order, so each bucket is sorted and buckets are ordered by their
// smallest member.
func groupBy(size int, rep func(int) int) [][]int {
	index := make(map[int]int)
	var sets [][]int
	for i := 0; i < size; i++ {
		r := rep(i)
		k, ok := index[r]
		if !ok {
			k = len(sets)
			index[r] = k
			sets = append(sets, nil)
		}
		sets[k] = append(sets[k], i)
	}
	return sets
}

// Index is an element type usable as a parent pointer
type Index interface {
	~int | ~int32
}

// CheckForest verifies that parent describes a forest: every entry is in
// range and every chain ends at a root. It returns the root of every element
// and the number of roots.
func CheckForest[T Index](parent []T) ([]T, int, error) {
	const (
		unvisited = iota
		inProgress
		done
	)

	n := len(parent)
	for i, p := range parent {
		if p < 0 || int(p) >= n {
			return nil, 0, fmt.Errorf("%w: parent of %d is %d, outside [0, %d)", ErrCorruptState, i, p, n)
		}
	}

	roots := make([]T, n)
	state := make([]byte, n)
	count := 0
	path := make([]T, 0, 16)
	for i := range parent {
		path = path[:0]
		j := T(i)
		for state[j] == unvisited && parent[j] != j {
			state[j] = inProgress
			path = append(path, j)
			j = parent[j]
		}
		if state[j] == inProgress {
			return nil, 0, fmt.Errorf("%w: cycle through element %d", ErrCorruptState, j)
		}

		r := roots[j]
		if state[j] == unvisited {
			r = j
			roots[j] = j
			state[j] = done
			count++
		}
		for _, k := range path {
			roots[k] = r
			state[k] = done
		}
	}
	return roots, count, nil
}

// CheckSizes verifies that parent is a forest and that size records the
// number of elements under every root. Entries of size at non-roots are
// ignored. Returns the number of roots.
func CheckSizes[T Index](parent, size []T) (int, error) {
	if len(size) != len(parent) {
		return 0, fmt.Errorf("%w: %d sizes for %d labels", ErrCorruptState, len(size), len(parent))
	}

	roots, count, err := CheckForest(parent)
	if err != nil {
		return 0, err
	}

	held := make([]int, len(parent))
	for _, r := range roots {
		held[r]++
	}
	for i, p := range parent {
		if int(p) == i && held[i] != int(size[i]) {
			return 0, fmt.Errorf("%w: root %d holds %d elements, recorded %d", ErrCorruptState, i, held[i], size[i])
		}
	}
	return count, nil
}
