package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/FrenchMajesty/dynamic-connectivity/pkg/percolation"
)

func newPercolationCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "percolation",
		Short: "Estimate the percolation threshold by Monte Carlo simulation",
		Long: `Opens random sites of an n-by-n grid until it percolates, repeated for
the given number of trials, and prints the mean, standard deviation and 95%
confidence interval of the fraction of open sites.

Example:
  dynconn percolation --grid 200 --trials 100
  dynconn percolation --grid 50 --trials 30 --workers 8 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := percolation.RunStats(cmd.Context(), percolation.StatsConfig{
				Grid:    e.cfg.Grid,
				Trials:  e.cfg.Trials,
				Workers: e.cfg.Workers,
				Seed:    e.cfg.Seed,
				Logger:  e.logger,
			})
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().Int("grid", 20, "Grid size n")
	cmd.Flags().Int("trials", 30, "Number of independent trials (at least 2)")
	cmd.Flags().Int("workers", 4, "Concurrent trials")
	cmd.Flags().Uint64("seed", 0, "Random seed")
	bindFlags(e.v, cmd.Flags())

	return cmd
}

func printStats(w io.Writer, s *percolation.Stats) {
	fmt.Fprintf(w, "mean                       = %v\n", s.Mean)
	fmt.Fprintf(w, "stddev                     = %v\n", s.Stddev)
	fmt.Fprintf(w, "95%% confidence interval    = %v, %v\n", s.ConfidenceLo, s.ConfidenceHi)
}
