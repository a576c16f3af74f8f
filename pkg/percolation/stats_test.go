package percolation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrenchMajesty/dynamic-connectivity/pkg/percolation"
)

func TestRunStats_ThresholdEstimate(t *testing.T) {
	stats, err := percolation.RunStats(context.Background(), percolation.StatsConfig{
		Grid:   50,
		Trials: 40,
		Seed:   42,
	})
	require.NoError(t, err)

	// the site percolation threshold on a square lattice is about 0.5927
	assert.InDelta(t, 0.5927, stats.Mean, 0.05)
	assert.Positive(t, stats.Stddev)
	assert.Less(t, stats.ConfidenceLo, stats.Mean)
	assert.Greater(t, stats.ConfidenceHi, stats.Mean)
	assert.InDelta(t, stats.Mean-stats.ConfidenceLo, stats.ConfidenceHi-stats.Mean, 1e-12)
	assert.Equal(t, 50, stats.Grid)
	assert.Equal(t, 40, stats.Trials)
}

func TestRunStats_DeterministicAcrossWorkers(t *testing.T) {
	run := func(workers int) *percolation.Stats {
		stats, err := percolation.RunStats(context.Background(), percolation.StatsConfig{
			Grid:    20,
			Trials:  12,
			Workers: workers,
			Seed:    7,
		})
		require.NoError(t, err)
		return stats
	}

	serial := run(1)
	parallel := run(4)
	assert.Equal(t, serial.Mean, parallel.Mean)
	assert.Equal(t, serial.Stddev, parallel.Stddev)
}

func TestRunStats_InvalidConfig(t *testing.T) {
	for _, cfg := range []percolation.StatsConfig{
		{Grid: 0, Trials: 10},
		{Grid: 10, Trials: 0},
		{Grid: 10, Trials: 1},
		{Grid: -3, Trials: 5},
	} {
		_, err := percolation.RunStats(context.Background(), cfg)
		assert.ErrorIs(t, err, percolation.ErrInvalidGrid, "config %+v", cfg)
	}
}

func TestRunStats_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := percolation.RunStats(ctx, percolation.StatsConfig{Grid: 30, Trials: 8})
	assert.ErrorIs(t, err, context.Canceled)
}
