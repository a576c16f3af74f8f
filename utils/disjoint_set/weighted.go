package disjoint_set

// Weighted is a forest with union-by-size and path halving. Trees stay
// logarithmic in height, and amortized operations are near constant.
type Weighted struct {
	parent []int
	size   []int // only meaningful at roots
	count  int
}

// NewWeighted creates a Weighted forest over elements 0..size-1.
func NewWeighted(size int) (*Weighted, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	uf := &Weighted{
		parent: make([]int, size),
		size:   make([]int, size),
		count:  size,
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf, nil
}

// root finds the root of i, pointing every visited node at its grandparent
// on the way up (internal, caller validates i)
func (uf *Weighted) root(i int) int {
	for i != uf.parent[i] {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

// Len returns the number of elements
func (uf *Weighted) Len() int {
	return len(uf.parent)
}

// Count returns the number of distinct sets
func (uf *Weighted) Count() int {
	return uf.count
}

// Find returns the root of p's tree
func (uf *Weighted) Find(p int) (int, error) {
	if err := validate(len(uf.parent), p, p); err != nil {
		return 0, err
	}
	return uf.root(p), nil
}

// SizeOf returns the number of elements in p's set
func (uf *Weighted) SizeOf(p int) (int, error) {
	if err := validate(len(uf.parent), p, p); err != nil {
		return 0, err
	}
	return uf.size[uf.root(p)], nil
}

// Connected checks if p and q share a root
func (uf *Weighted) Connected(p, q int) (bool, error) {
	if err := validate(len(uf.parent), p, q); err != nil {
		return false, err
	}
	return uf.root(p) == uf.root(q), nil
}

// Union links the smaller tree under the larger one. On a tie p's root goes
// under q's root.
func (uf *Weighted) Union(p, q int) error {
	if err := validate(len(uf.parent), p, q); err != nil {
		return err
	}

	pRoot := uf.root(p)
	qRoot := uf.root(q)
	if pRoot == qRoot {
		return nil
	}

	if uf.size[pRoot] > uf.size[qRoot] {
		pRoot, qRoot = qRoot, pRoot
	}
	uf.parent[pRoot] = qRoot
	uf.size[qRoot] += uf.size[pRoot]
	uf.count--
	return nil
}

// Components returns every set, each sorted, ordered by smallest member
func (uf *Weighted) Components() [][]int {
	return groupBy(len(uf.parent), uf.root)
}
