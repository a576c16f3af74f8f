package unionfind

import "sync"

type synchronized struct {
	uf UnionFind
	mu sync.RWMutex
}

// Synchronized wraps uf so that it can be shared between goroutines.
//
// Lookups take the write lock as well as Union, because forest strategies may
// rewrite parent pointers while searching for a root.
func Synchronized(uf UnionFind) UnionFind {
	if s, ok := uf.(*synchronized); ok {
		return s
	}
	return &synchronized{uf: uf}
}

func (s *synchronized) Connected(p, q int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.uf.Connected(p, q)
}

func (s *synchronized) Union(p, q int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.uf.Union(p, q)
}

func (s *synchronized) Find(p int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.uf.Find(p)
}

func (s *synchronized) Components() [][]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.uf.Components()
}

func (s *synchronized) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uf.Len()
}

func (s *synchronized) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uf.Count()
}
