package benchmark

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
)

// ctxCheckInterval is how many pairs are replayed between context checks
const ctxCheckInterval = 1024

// RandomPairs draws count pairs uniformly from [0, n)
func RandomPairs(n, count int, rng *rand.Rand) []Pair {
	pairs := make([]Pair, count)
	for i := range pairs {
		pairs[i] = Pair{P: rng.IntN(n), Q: rng.IntN(n)}
	}
	return pairs
}

// LoadPairs reads a CSV file with two integer columns. A first row that
// does not parse as integers is treated as a header.
func LoadPairs(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workload file: %w", err)
	}
	defer file.Close()

	return ReadPairs(file)
}

// ReadPairs parses CSV pairs from r. See LoadPairs.
func ReadPairs(r io.Reader) ([]Pair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var pairs []Pair
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		p, perr := strconv.Atoi(strings.TrimSpace(record[0]))
		q, qerr := strconv.Atoi(strings.TrimSpace(record[1]))
		if perr != nil || qerr != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: expected two integers, got %q", line, strings.Join(record, ","))
		}
		pairs = append(pairs, Pair{P: p, Q: q})
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("workload has no pairs")
	}
	return pairs, nil
}

// Run replays pairs against a fresh structure of the given size for each
// strategy, joining each pair that is not already connected. Every strategy
// must finish with the same partition.
func Run(ctx context.Context, size int, pairs []Pair, strategies []unionfind.Strategy) (*Report, error) {
	if len(strategies) == 0 {
		strategies = unionfind.Strategies()
	}

	report := &Report{
		Size:      size,
		Pairs:     len(pairs),
		CreatedAt: time.Now().UTC(),
	}

	var reference [][]int
	for _, strategy := range strategies {
		uf, err := unionfind.New(unionfind.Config{Size: size, Strategy: strategy})
		if err != nil {
			return nil, err
		}

		m, err := replay(ctx, uf, pairs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strategy, err)
		}
		m.Strategy = strategy

		components := uf.Components()
		if reference == nil {
			reference = components
		} else if !slices.EqualFunc(reference, components, func(a, b []int) bool { return slices.Equal(a, b) }) {
			return nil, fmt.Errorf("%w: %s", ErrPartitionMismatch, strategy)
		}

		report.Results = append(report.Results, m)
	}
	return report, nil
}

func replay(ctx context.Context, uf unionfind.UnionFind, pairs []Pair) (Metrics, error) {
	var m Metrics

	start := time.Now()
	for i, pair := range pairs {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return m, err
			}
		}

		connected, err := uf.Connected(pair.P, pair.Q)
		if err != nil {
			return m, fmt.Errorf("pair %d: %w", i, err)
		}
		if connected {
			m.AlreadyConnected++
			continue
		}
		if err := uf.Union(pair.P, pair.Q); err != nil {
			return m, fmt.Errorf("pair %d: %w", i, err)
		}
		m.Merged++
	}
	m.TotalDuration = time.Since(start)

	if len(pairs) > 0 {
		m.PerPair = m.TotalDuration / time.Duration(len(pairs))
	}
	stats := unionfind.MetricsOf(uf)
	m.Components = stats.Components
	m.LargestComponent = stats.LargestComponent
	return m, nil
}
