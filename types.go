package unionfind

// Metrics summarizes the partition held by a UnionFind
type Metrics struct {
	// Elements is the universe size N
	Elements int

	// Components is the number of distinct sets
	Components int

	// LargestComponent is the size of the biggest set
	LargestComponent int

	// Singletons is the number of sets with exactly one element
	Singletons int
}

// MetricsOf computes Metrics for uf. It walks every element, so it costs at
// least O(N).
func MetricsOf(uf UnionFind) Metrics {
	m := Metrics{
		Elements:   uf.Len(),
		Components: uf.Count(),
	}
	for _, set := range uf.Components() {
		if len(set) > m.LargestComponent {
			m.LargestComponent = len(set)
		}
		if len(set) == 1 {
			m.Singletons++
		}
	}
	return m
}
