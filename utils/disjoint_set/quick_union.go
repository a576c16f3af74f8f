package disjoint_set

// QuickUnion stores parent pointers. Each set is a tree whose root satisfies
// parent[i] == i. No balancing is applied, so a tree can degenerate into a
// chain and root lookups become O(N).
type QuickUnion struct {
	parent []int
	count  int
}

// NewQuickUnion creates a QuickUnion over elements 0..size-1, each its own root.
func NewQuickUnion(size int) (*QuickUnion, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	uf := &QuickUnion{
		parent: make([]int, size),
		count:  size,
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf, nil
}

// root follows parent pointers to the fixed point (internal, caller validates i)
func (uf *QuickUnion) root(i int) int {
	for i != uf.parent[i] {
		i = uf.parent[i]
	}
	return i
}

// Len returns the number of elements
func (uf *QuickUnion) Len() int {
	return len(uf.parent)
}

// Count returns the number of distinct sets
func (uf *QuickUnion) Count() int {
	return uf.count
}

// Find returns the root of p's tree
func (uf *QuickUnion) Find(p int) (int, error) {
	if err := validate(len(uf.parent), p, p); err != nil {
		return 0, err
	}
	return uf.root(p), nil
}

// Connected checks if p and q share a root
func (uf *QuickUnion) Connected(p, q int) (bool, error) {
	if err := validate(len(uf.parent), p, q); err != nil {
		return false, err
	}
	return uf.root(p) == uf.root(q), nil
}

// Union attaches p's tree under q's root
func (uf *QuickUnion) Union(p, q int) error {
	if err := validate(len(uf.parent), p, q); err != nil {
		return err
	}

	pRoot := uf.root(p)
	qRoot := uf.root(q)
	if pRoot == qRoot {
		return nil
	}

	uf.parent[pRoot] = qRoot
	uf.count--
	return nil
}

// Components returns every set, each sorted, ordered by smallest member
func (uf *QuickUnion) Components() [][]int {
	return groupBy(len(uf.parent), uf.root)
}
