package percolation_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrenchMajesty/dynamic-connectivity/pkg/percolation"
)

func openAll(t *testing.T, p *percolation.Percolation, sites ...[2]int) {
	t.Helper()
	for _, s := range sites {
		require.NoError(t, p.Open(s[0], s[1]), "open(%d, %d)", s[0], s[1])
	}
}

func TestPercolation_Sequence(t *testing.T) {
	p, err := percolation.New(4)
	require.NoError(t, err)

	openAll(t, p, [2]int{1, 1}, [2]int{2, 2})
	assert.False(t, p.Percolates())

	openAll(t, p, [2]int{2, 3}, [2]int{3, 3}, [2]int{4, 3})
	assert.False(t, p.Percolates())

	// (2,1) joins (1,1) to (2,2), completing the path to the bottom
	openAll(t, p, [2]int{2, 1})
	assert.True(t, p.Percolates())
	assert.Equal(t, 6, p.NumberOfOpenSites())

	full, err := p.IsFull(4, 3)
	require.NoError(t, err)
	assert.True(t, full)
}

func TestPercolation_NoBackwash(t *testing.T) {
	p, err := percolation.New(3)
	require.NoError(t, err)

	// column 1 percolates, (3,3) is open but isolated from the top
	openAll(t, p, [2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1}, [2]int{3, 3})
	require.True(t, p.Percolates())

	full, err := p.IsFull(3, 3)
	require.NoError(t, err)
	assert.False(t, full)

	full, err = p.IsFull(3, 1)
	require.NoError(t, err)
	assert.True(t, full)
}

func TestPercolation_OpenIsIdempotent(t *testing.T) {
	p, err := percolation.New(2)
	require.NoError(t, err)

	openAll(t, p, [2]int{1, 2}, [2]int{1, 2})
	assert.Equal(t, 1, p.NumberOfOpenSites())

	open, err := p.IsOpen(1, 2)
	require.NoError(t, err)
	assert.True(t, open)

	open, err = p.IsOpen(2, 2)
	require.NoError(t, err)
	assert.False(t, open)

	full, err := p.IsFull(2, 2)
	require.NoError(t, err)
	assert.False(t, full)
}

func TestPercolation_SingleSite(t *testing.T) {
	p, err := percolation.New(1)
	require.NoError(t, err)
	assert.False(t, p.Percolates())

	openAll(t, p, [2]int{1, 1})
	assert.True(t, p.Percolates())
}

func TestPercolation_Bounds(t *testing.T) {
	_, err := percolation.New(0)
	assert.ErrorIs(t, err, percolation.ErrInvalidGrid)

	p, err := percolation.New(3)
	require.NoError(t, err)
	for _, s := range [][2]int{{0, 1}, {1, 0}, {4, 1}, {1, 4}, {-1, -1}} {
		assert.ErrorIs(t, p.Open(s[0], s[1]), percolation.ErrOutOfBounds)
		_, err := p.IsOpen(s[0], s[1])
		assert.ErrorIs(t, err, percolation.ErrOutOfBounds)
		_, err = p.IsFull(s[0], s[1])
		assert.ErrorIs(t, err, percolation.ErrOutOfBounds)
	}
	assert.Equal(t, 0, p.NumberOfOpenSites())
}

func TestTrial_FractionInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	fraction, err := percolation.Trial(context.Background(), 10, rng)
	require.NoError(t, err)
	assert.Greater(t, fraction, 0.0)
	assert.LessOrEqual(t, fraction, 1.0)
}
