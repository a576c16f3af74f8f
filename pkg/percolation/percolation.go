// Package percolation models an n-by-n grid of sites that percolates when
// an open path joins the top row to the bottom row.
package percolation

import (
	"errors"
	"fmt"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
)

var (
	// ErrInvalidGrid is returned for a grid size or trial count that is not positive
	ErrInvalidGrid = errors.New("grid size and trials must be positive")

	// ErrOutOfBounds is returned for a row or column outside [1, n]
	ErrOutOfBounds = errors.New("site out of bounds")
)

// Percolation tracks open sites on an n-by-n grid. Rows and columns are 1-based.
//
// Sites are numbered 1..n*n. Element 0 is a virtual site joined to the top
// row and element n*n+1 a virtual site joined to the bottom row. Fullness is
// answered by a second structure without the bottom site, so an open site in
// the bottom row is never reported full just because the grid percolates.
type Percolation struct {
	n      int
	open   []bool
	opened int
	grid   unionfind.UnionFind
	full   unionfind.UnionFind
	top    int
	bottom int
}

// New creates an n-by-n grid with every site blocked
func New(n int) (*Percolation, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n = %d", ErrInvalidGrid, n)
	}

	grid, err := unionfind.New(unionfind.Config{Size: n*n + 2, Strategy: unionfind.StrategyWeighted})
	if err != nil {
		return nil, fmt.Errorf("failed to create grid structure: %w", err)
	}
	full, err := unionfind.New(unionfind.Config{Size: n*n + 1, Strategy: unionfind.StrategyWeighted})
	if err != nil {
		return nil, fmt.Errorf("failed to create fullness structure: %w", err)
	}

	return &Percolation{
		n:      n,
		open:   make([]bool, n*n+1),
		grid:   grid,
		full:   full,
		top:    0,
		bottom: n*n + 1,
	}, nil
}

// Size returns n
func (p *Percolation) Size() int {
	return p.n
}

func (p *Percolation) site(row, col int) (int, error) {
	if row < 1 || row > p.n || col < 1 || col > p.n {
		return 0, fmt.Errorf("%w: (%d, %d), indices must be between 1 and %d", ErrOutOfBounds, row, col, p.n)
	}
	return (row-1)*p.n + col, nil
}

func (p *Percolation) connect(a, b int, withFull bool) error {
	if err := p.grid.Union(a, b); err != nil {
		return err
	}
	if withFull {
		return p.full.Union(a, b)
	}
	return nil
}

// Open opens the site (row, col) if it is blocked and joins it to its open neighbors
func (p *Percolation) Open(row, col int) error {
	s, err := p.site(row, col)
	if err != nil {
		return err
	}
	if p.open[s] {
		return nil
	}
	p.open[s] = true
	p.opened++

	if row == 1 {
		if err := p.connect(s, p.top, true); err != nil {
			return err
		}
	}
	if row == p.n {
		if err := p.connect(s, p.bottom, false); err != nil {
			return err
		}
	}

	neighbors := [4][2]int{{row, col + 1}, {row, col - 1}, {row - 1, col}, {row + 1, col}}
	for _, nb := range neighbors {
		t, err := p.site(nb[0], nb[1])
		if err != nil || !p.open[t] {
			continue
		}
		if err := p.connect(s, t, true); err != nil {
			return err
		}
	}
	return nil
}

// IsOpen reports whether the site (row, col) is open
func (p *Percolation) IsOpen(row, col int) (bool, error) {
	s, err := p.site(row, col)
	if err != nil {
		return false, err
	}
	return p.open[s], nil
}

// IsFull reports whether the open site (row, col) is joined to the top row
// through open sites
func (p *Percolation) IsFull(row, col int) (bool, error) {
	s, err := p.site(row, col)
	if err != nil {
		return false, err
	}
	if !p.open[s] {
		return false, nil
	}
	return p.full.Connected(s, p.top)
}

// Percolates reports whether some full site lies in the bottom row
func (p *Percolation) Percolates() bool {
	ok, _ := p.grid.Connected(p.top, p.bottom)
	return ok
}

// NumberOfOpenSites returns how many sites are open
func (p *Percolation) NumberOfOpenSites() int {
	return p.opened
}
