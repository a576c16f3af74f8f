// Package mapped provides a weighted union-find whose arrays live in a
// memory-mapped file, for universes too large to rebuild on every run.
//
// The file holds N int32 parent entries followed by N int32 set sizes in
// native byte order. It is not portable between machines of different
// endianness.
package mapped

import (
	"errors"
	"fmt"
	"math"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"

	"github.com/FrenchMajesty/dynamic-connectivity/utils/disjoint_set"
)

const entryBytes = 4

var (
	// ErrSizeMismatch is returned when an existing file was built for a different N
	ErrSizeMismatch = errors.New("mapped file size does not match element count")

	// ErrCorruptFile is returned when an existing file does not hold a valid forest
	ErrCorruptFile = errors.New("mapped file does not hold a valid forest")
)

// Forest is a union-by-size forest with path halving over mapped int32 arrays
type Forest struct {
	path   string
	data   mmap.MMap
	parent []int32
	size   []int32
	count  int
}

// Open maps the forest stored at path, creating and initializing the file
// when it is missing or empty. An existing file must have been created for
// the same n.
func Open(path string, n int) (*Forest, error) {
	if n <= 0 || n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", disjoint_set.ErrInvalidSize, n, math.MaxInt32)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapped file %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat mapped file %s: %w", path, err)
	}

	want := int64(n) * 2 * entryBytes
	fresh := info.Size() == 0
	if !fresh && info.Size() != want {
		return nil, fmt.Errorf("%w: %s is %d bytes, %d elements need %d", ErrSizeMismatch, path, info.Size(), n, want)
	}
	if fresh {
		if err := file.Truncate(want); err != nil {
			return nil, fmt.Errorf("failed to size mapped file %s: %w", path, err)
		}
	}

	data, err := mmap.Map(file, mmap.RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}

	words := unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), 2*n)
	f := &Forest{
		path:   path,
		data:   data,
		parent: words[:n:n],
		size:   words[n:],
	}

	if fresh {
		for i := range f.parent {
			f.parent[i] = int32(i)
			f.size[i] = 1
		}
		f.count = n
		return f, nil
	}

	roots, err := disjoint_set.CheckSizes(f.parent, f.size)
	if err != nil {
		data.Unmap()
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptFile, path, err)
	}
	f.count = roots
	return f, nil
}

func (f *Forest) validate(p, q int) error {
	n := len(f.parent)
	if p < 0 || p >= n {
		return &disjoint_set.OutOfRangeError{Index: p, Size: n}
	}
	if q < 0 || q >= n {
		return &disjoint_set.OutOfRangeError{Index: q, Size: n}
	}
	return nil
}

func (f *Forest) root(i int32) int32 {
	for i != f.parent[i] {
		f.parent[i] = f.parent[f.parent[i]]
		i = f.parent[i]
	}
	return i
}

// Path returns the backing file path
func (f *Forest) Path() string {
	return f.path
}

// Len returns the number of elements
func (f *Forest) Len() int {
	return len(f.parent)
}

// Count returns the number of distinct sets
func (f *Forest) Count() int {
	return f.count
}

// Find returns the root of p's tree
func (f *Forest) Find(p int) (int, error) {
	if err := f.validate(p, p); err != nil {
		return 0, err
	}
	return int(f.root(int32(p))), nil
}

// SizeOf returns the number of elements in p's set
func (f *Forest) SizeOf(p int) (int, error) {
	if err := f.validate(p, p); err != nil {
		return 0, err
	}
	return int(f.size[f.root(int32(p))]), nil
}

// Connected checks if p and q share a root
func (f *Forest) Connected(p, q int) (bool, error) {
	if err := f.validate(p, q); err != nil {
		return false, err
	}
	return f.root(int32(p)) == f.root(int32(q)), nil
}

// Union links the smaller tree under the larger one; on a tie p's root goes
// under q's root
func (f *Forest) Union(p, q int) error {
	if err := f.validate(p, q); err != nil {
		return err
	}

	pRoot := f.root(int32(p))
	qRoot := f.root(int32(q))
	if pRoot == qRoot {
		return nil
	}

	if f.size[pRoot] > f.size[qRoot] {
		pRoot, qRoot = qRoot, pRoot
	}
	f.parent[pRoot] = qRoot
	f.size[qRoot] += f.size[pRoot]
	f.count--
	return nil
}

// Components returns every set, each sorted, ordered by smallest member
func (f *Forest) Components() [][]int {
	index := make(map[int32]int)
	var sets [][]int
	for i := range f.parent {
		r := f.root(int32(i))
		k, ok := index[r]
		if !ok {
			k = len(sets)
			index[r] = k
			sets = append(sets, nil)
		}
		sets[k] = append(sets[k], i)
	}
	return sets
}

// Flush writes dirty pages back to the file
func (f *Forest) Flush() error {
	if err := f.data.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", f.path, err)
	}
	return nil
}

// Close flushes and unmaps the file. The Forest must not be used afterwards.
func (f *Forest) Close() error {
	if err := f.Flush(); err != nil {
		return err
	}
	if err := f.data.Unmap(); err != nil {
		return fmt.Errorf("failed to unmap %s: %w", f.path, err)
	}
	f.parent, f.size = nil, nil
	return nil
}
