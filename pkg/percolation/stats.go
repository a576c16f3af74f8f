package percolation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// confidenceZ is the z-score of a two-sided 95% confidence interval
const confidenceZ = 1.96

// StatsConfig configures a Monte Carlo estimate of the percolation threshold
type StatsConfig struct {
	// Grid is n for an n-by-n grid
	Grid int

	// Trials is the number of independent experiments. Must be at least 2.
	Trials int

	// Workers bounds concurrent experiments. If 0, uses GOMAXPROCS.
	Workers int

	// Seed makes runs reproducible. Trial t always draws from (Seed, t).
	Seed uint64

	// Logger receives progress output. If nil, logging is discarded.
	Logger *slog.Logger
}

// Stats holds the estimate of the percolation threshold
type Stats struct {
	Grid         int
	Trials       int
	Mean         float64
	Stddev       float64
	ConfidenceLo float64
	ConfidenceHi float64
	Elapsed      time.Duration
}

func (c *StatsConfig) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// RunStats opens random sites in fresh grids until each percolates and
// reports the distribution of the fraction of open sites at that point
func RunStats(ctx context.Context, cfg StatsConfig) (*Stats, error) {
	cfg.applyDefaults()
	if cfg.Grid <= 0 {
		return nil, fmt.Errorf("%w: grid = %d", ErrInvalidGrid, cfg.Grid)
	}
	if cfg.Trials < 2 {
		return nil, fmt.Errorf("%w: trials = %d, need at least 2", ErrInvalidGrid, cfg.Trials)
	}

	start := time.Now()
	fractions := make([]float64, cfg.Trials)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for t := 0; t < cfg.Trials; t++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(t)))
			fraction, err := Trial(ctx, cfg.Grid, rng)
			if err != nil {
				return fmt.Errorf("trial %d: %w", t, err)
			}
			fractions[t] = fraction
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mean, stddev := stat.MeanStdDev(fractions, nil)
	half := confidenceZ * stddev / math.Sqrt(float64(cfg.Trials))
	stats := &Stats{
		Grid:         cfg.Grid,
		Trials:       cfg.Trials,
		Mean:         mean,
		Stddev:       stddev,
		ConfidenceLo: mean - half,
		ConfidenceHi: mean + half,
		Elapsed:      time.Since(start),
	}

	cfg.Logger.Info("percolation stats complete",
		"grid", cfg.Grid, "trials", cfg.Trials, "workers", cfg.Workers,
		"mean", stats.Mean, "elapsed", stats.Elapsed)
	return stats, nil
}

// Trial opens the sites of an n-by-n grid in a random order until it
// percolates and returns the fraction of sites that were opened
func Trial(ctx context.Context, n int, rng *rand.Rand) (float64, error) {
	perc, err := New(n)
	if err != nil {
		return 0, err
	}

	order := rng.Perm(n * n)
	for i, site := range order {
		if i%n == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if err := perc.Open(site/n+1, site%n+1); err != nil {
			return 0, err
		}
		if perc.Percolates() {
			break
		}
	}
	return float64(perc.NumberOfOpenSites()) / float64(n*n), nil
}
