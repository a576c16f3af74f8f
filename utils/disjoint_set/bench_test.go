package disjoint_set

import (
	"math/rand/v2"
	"testing"
)

type structure interface {
	Connected(p, q int) (bool, error)
	Union(p, q int) error
}

func benchmarkUnions(b *testing.B, n int, build func(int) (structure, error)) {
	rng := rand.New(rand.NewPCG(1, 1))
	pairs := make([][2]int, n)
	for i := range pairs {
		pairs[i] = [2]int{rng.IntN(n), rng.IntN(n)}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		uf, err := build(n)
		if err != nil {
			b.Fatal(err)
		}
		for _, pair := range pairs {
			if ok, _ := uf.Connected(pair[0], pair[1]); !ok {
				_ = uf.Union(pair[0], pair[1])
			}
		}
	}
}

func BenchmarkQuickFind(b *testing.B) {
	benchmarkUnions(b, 2000, func(n int) (structure, error) { return NewQuickFind(n) })
}

func BenchmarkQuickUnion(b *testing.B) {
	benchmarkUnions(b, 2000, func(n int) (structure, error) { return NewQuickUnion(n) })
}

func BenchmarkWeighted(b *testing.B) {
	benchmarkUnions(b, 2000, func(n int) (structure, error) { return NewWeighted(n) })
}
