package disjoint_set

// QuickFind keeps one tag per element. Two elements are connected iff their
// tags are equal, so Connected is O(1) and Union rewrites a whole set in O(N).
type QuickFind struct {
	ids   []int
	count int
}

// NewQuickFind creates a QuickFind over elements 0..size-1, each in its own set.
func NewQuickFind(size int) (*QuickFind, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	uf := &QuickFind{
		ids:   make([]int, size),
		count: size,
	}
	for i := range uf.ids {
		uf.ids[i] = i
	}
	return uf, nil
}

// Len returns the number of elements
func (uf *QuickFind) Len() int {
	return len(uf.ids)
}

// Count returns the number of distinct sets
func (uf *QuickFind) Count() int {
	return uf.count
}

// Find returns the tag shared by every element of p's set
func (uf *QuickFind) Find(p int) (int, error) {
	if err := validate(len(uf.ids), p, p); err != nil {
		return 0, err
	}
	return uf.ids[p], nil
}

// Connected checks if p and q carry the same tag
func (uf *QuickFind) Connected(p, q int) (bool, error) {
	if err := validate(len(uf.ids), p, q); err != nil {
		return false, err
	}
	return uf.ids[p] == uf.ids[q], nil
}

// Union retags every member of p's set with q's tag
func (uf *QuickFind) Union(p, q int) error {
	if err := validate(len(uf.ids), p, q); err != nil {
		return err
	}

	pID := uf.ids[p]
	qID := uf.ids[q]
	if pID == qID {
		return nil
	}

	for i := range uf.ids {
		if uf.ids[i] == pID {
			uf.ids[i] = qID
		}
	}
	uf.count--
	return nil
}

// Components returns every set, each sorted, ordered by smallest member
func (uf *QuickFind) Components() [][]int {
	return groupBy(len(uf.ids), func(i int) int { return uf.ids[i] })
}
