package commands

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
	"github.com/FrenchMajesty/dynamic-connectivity/benchmark"
)

type benchOptions struct {
	size       int
	pairs      int
	seed       uint64
	input      string
	strategies []string
	out        string
}

func newBenchCommand(e *env) *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare strategies on the same workload of pairs",
		Long: `Replays a workload of pairs against each strategy and prints the time
taken. The workload is random unless --input names a CSV file of p,q rows.

Example:
  dynconn bench --size 10000 --pairs 50000
  dynconn bench --size 10 --input pairs.csv --strategies quick-find,weighted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strategies := make([]unionfind.Strategy, 0, len(opts.strategies))
			for _, name := range opts.strategies {
				s, err := unionfind.ParseStrategy(name)
				if err != nil {
					return err
				}
				strategies = append(strategies, s)
			}

			var pairs []benchmark.Pair
			if opts.input != "" {
				var err error
				if pairs, err = benchmark.LoadPairs(opts.input); err != nil {
					return err
				}
			} else {
				if opts.size <= 0 {
					return fmt.Errorf("%w: got %d", unionfind.ErrInvalidSize, opts.size)
				}
				pairs = benchmark.RandomPairs(opts.size, opts.pairs, rand.New(rand.NewPCG(opts.seed, 0)))
			}

			e.logger.Debug("running benchmark", "size", opts.size, "pairs", len(pairs), "strategies", len(strategies))
			report, err := benchmark.Run(cmd.Context(), opts.size, pairs, strategies)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)

			if opts.out != "" {
				path, err := benchmark.SaveReport(opts.out, report)
				if err != nil {
					return fmt.Errorf("failed to save report: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle(cmd.ErrOrStderr()).Render("Report saved to "+path))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.size, "size", "n", 1000, "Number of objects N")
	cmd.Flags().IntVar(&opts.pairs, "pairs", 5000, "Number of random pairs")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Random seed")
	cmd.Flags().StringVar(&opts.input, "input", "", "CSV file of p,q pairs")
	cmd.Flags().StringSliceVar(&opts.strategies, "strategies", nil, "Strategies to compare (default all)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Directory to save a JSON report in")

	return cmd
}

func printReport(w io.Writer, r *benchmark.Report) {
	fmt.Fprintln(w, titleStyle(w).Render(fmt.Sprintf("%d objects, %d pairs", r.Size, r.Pairs)))
	for _, m := range r.Results {
		fmt.Fprintf(w, "%-12s %12v total %10v/pair  merged %d  components %d  largest %d\n",
			m.Strategy, m.TotalDuration, m.PerPair, m.Merged, m.Components, m.LargestComponent)
	}
}
