package disjoint_set_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrenchMajesty/dynamic-connectivity/utils/disjoint_set"
)

type unionFind interface {
	Connected(p, q int) (bool, error)
	Union(p, q int) error
	Find(p int) (int, error)
	Len() int
	Count() int
	Components() [][]int
}

type strategy struct {
	name string
	new  func(size int) (unionFind, error)
}

var strategies = []strategy{
	{"QuickFind", func(size int) (unionFind, error) {
		uf, err := disjoint_set.NewQuickFind(size)
		if err != nil {
			return nil, err
		}
		return uf, nil
	}},
	{"QuickUnion", func(size int) (unionFind, error) {
		uf, err := disjoint_set.NewQuickUnion(size)
		if err != nil {
			return nil, err
		}
		return uf, nil
	}},
	{"Weighted", func(size int) (unionFind, error) {
		uf, err := disjoint_set.NewWeighted(size)
		if err != nil {
			return nil, err
		}
		return uf, nil
	}},
}

func mustConnected(t *testing.T, uf unionFind, p, q int) bool {
	t.Helper()
	ok, err := uf.Connected(p, q)
	require.NoError(t, err)
	return ok
}

func TestUnionFind_Scenario(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			uf, err := s.new(10)
			require.NoError(t, err)

			for _, pair := range [][2]int{{4, 3}, {3, 8}, {6, 5}, {9, 4}, {2, 1}} {
				require.NoError(t, uf.Union(pair[0], pair[1]))
			}

			testCases := []struct {
				p, q     int
				expected bool
			}{
				{0, 0, true},
				{4, 3, true},
				{3, 4, true},
				{8, 9, true},
				{5, 0, false},
				{5, 6, true},
				{7, 3, false},
				{0, 7, false},
				{3, 1, false},
			}
			for _, tc := range testCases {
				assert.Equal(t, tc.expected, mustConnected(t, uf, tc.p, tc.q), "connected(%d, %d)", tc.p, tc.q)
			}
			assert.Equal(t, 5, uf.Count())
			assert.Equal(t, 10, uf.Len())
			assert.Equal(t, [][]int{{0}, {1, 2}, {3, 4, 8, 9}, {5, 6}, {7}}, uf.Components())
		})
	}
}

func TestUnionFind_NoUnions(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			uf, err := s.new(5)
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				assert.True(t, mustConnected(t, uf, i, i))
				root, err := uf.Find(i)
				require.NoError(t, err)
				assert.Equal(t, i, root)
			}
			assert.False(t, mustConnected(t, uf, 0, 1))
			assert.Equal(t, 5, uf.Count())
		})
	}
}

func TestUnionFind_OutOfRange(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			uf, err := s.new(5)
			require.NoError(t, err)
			require.NoError(t, uf.Union(0, 1))

			_, err = uf.Connected(5, 1)
			require.ErrorIs(t, err, disjoint_set.ErrOutOfRange)
			var rangeErr *disjoint_set.OutOfRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, 5, rangeErr.Index)
			assert.Equal(t, 5, rangeErr.Size)

			_, err = uf.Connected(1, -1)
			assert.ErrorIs(t, err, disjoint_set.ErrOutOfRange)

			_, err = uf.Find(9)
			assert.ErrorIs(t, err, disjoint_set.ErrOutOfRange)

			// Union must validate both indices before touching state.
			before := uf.Components()
			assert.ErrorIs(t, uf.Union(2, 5), disjoint_set.ErrOutOfRange)
			assert.ErrorIs(t, uf.Union(-1, 2), disjoint_set.ErrOutOfRange)
			assert.Equal(t, before, uf.Components())
			assert.Equal(t, 4, uf.Count())
		})
	}
}

func TestUnionFind_InvalidSize(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			for _, size := range []int{0, -1, -100} {
				_, err := s.new(size)
				assert.ErrorIs(t, err, disjoint_set.ErrInvalidSize)
			}
		})
	}
}

func TestUnionFind_Idempotent(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			uf, err := s.new(4)
			require.NoError(t, err)

			require.NoError(t, uf.Union(0, 1))
			require.NoError(t, uf.Union(0, 1))
			require.NoError(t, uf.Union(1, 0))
			require.NoError(t, uf.Union(2, 2))
			assert.Equal(t, 3, uf.Count())
			assert.Equal(t, [][]int{{0, 1}, {2}, {3}}, uf.Components())
		})
	}
}

// reference is a naive partition used to check every strategy
type reference []int

func newReference(size int) reference {
	r := make(reference, size)
	for i := range r {
		r[i] = i
	}
	return r
}

func (r reference) union(p, q int) bool {
	pid, qid := r[p], r[q]
	if pid == qid {
		return false
	}
	for i := range r {
		if r[i] == pid {
			r[i] = qid
		}
	}
	return true
}

func TestUnionFind_Properties(t *testing.T) {
	const size = 40
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 5; round++ {
		ufs := make([]unionFind, len(strategies))
		for i, s := range strategies {
			uf, err := s.new(size)
			require.NoError(t, err)
			ufs[i] = uf
		}
		ref := newReference(size)
		count := size

		for step := 0; step < 60; step++ {
			p, q := rng.IntN(size), rng.IntN(size)
			if ref.union(p, q) {
				count--
			}

			for i, uf := range ufs {
				name := strategies[i].name
				require.NoError(t, uf.Union(p, q))
				assert.Equal(t, count, uf.Count(), "%s partition count after union(%d, %d)", name, p, q)
				assert.True(t, mustConnected(t, uf, p, q), "%s union monotonicity", name)
			}

			for a := 0; a < size; a++ {
				for b := 0; b < size; b++ {
					want := ref[a] == ref[b]
					for i, uf := range ufs {
						got := mustConnected(t, uf, a, b)
						if got != want {
							t.Fatalf("%s: connected(%d, %d) = %t after %d unions; reference = %t",
								strategies[i].name, a, b, got, step+1, want)
						}
					}
				}
			}
		}

		for i := 1; i < len(ufs); i++ {
			assert.Equal(t, ufs[0].Components(), ufs[i].Components(), "%s components", strategies[i].name)
		}
	}
}

func TestQuickUnion_DegenerateChain(t *testing.T) {
	const size = 100_000
	uf, err := disjoint_set.NewQuickUnion(size)
	require.NoError(t, err)

	// union(i, i+1) builds a single linked list 0 -> 1 -> ... -> size-1
	for i := 0; i < size-1; i++ {
		require.NoError(t, uf.Union(i, i+1))
	}

	root, err := uf.Find(0)
	require.NoError(t, err)
	assert.Equal(t, size-1, root)
	assert.True(t, mustConnected(t, uf, 0, size-1))
	assert.Equal(t, 1, uf.Count())
}

func TestQuickUnion_AttachesUnderSecondRoot(t *testing.T) {
	uf, err := disjoint_set.NewQuickUnion(3)
	require.NoError(t, err)

	require.NoError(t, uf.Union(0, 1))
	root, err := uf.Find(0)
	require.NoError(t, err)
	assert.Equal(t, 1, root)
}

func TestQuickFind_TakesSecondTag(t *testing.T) {
	uf, err := disjoint_set.NewQuickFind(4)
	require.NoError(t, err)

	require.NoError(t, uf.Union(0, 1))
	require.NoError(t, uf.Union(1, 3))
	for _, p := range []int{0, 1, 3} {
		tag, err := uf.Find(p)
		require.NoError(t, err)
		assert.Equal(t, 3, tag)
	}
}

func TestWeighted_SmallerTreeMovesUnderLarger(t *testing.T) {
	uf, err := disjoint_set.NewWeighted(5)
	require.NoError(t, err)

	require.NoError(t, uf.Union(0, 1)) // tie: 0 under 1
	root, err := uf.Find(0)
	require.NoError(t, err)
	assert.Equal(t, 1, root)

	require.NoError(t, uf.Union(1, 2)) // {0,1} is larger, 2 goes under 1
	root, err = uf.Find(2)
	require.NoError(t, err)
	assert.Equal(t, 1, root)

	size, err := uf.SizeOf(2)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	size, err = uf.SizeOf(4)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestCheckForest_Roots(t *testing.T) {
	roots, count, err := disjoint_set.CheckForest([]int32{1, 1, 1, 4, 4, 3})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 1, 1, 4, 4, 4}, roots)
	assert.Equal(t, 2, count)

	_, _, err = disjoint_set.CheckForest([]int{1, 2, 0})
	assert.ErrorIs(t, err, disjoint_set.ErrCorruptState)

	_, _, err = disjoint_set.CheckForest([]int32{0, 5})
	assert.ErrorIs(t, err, disjoint_set.ErrCorruptState)
}

func TestCheckSizes(t *testing.T) {
	count, err := disjoint_set.CheckSizes([]int32{1, 1, 2}, []int32{7, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = disjoint_set.CheckSizes([]int32{1, 1, 2}, []int32{1, 3, 1})
	assert.ErrorIs(t, err, disjoint_set.ErrCorruptState)

	_, err = disjoint_set.CheckSizes([]int{0, 1}, []int{1})
	assert.ErrorIs(t, err, disjoint_set.ErrCorruptState)
}
