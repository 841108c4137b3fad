package vec

import "sort"

// Sparse is an ordered sequence of (index, value) pairs with unique
// indices and a declared maximum capacity. Values are nominally nonzero:
// callers may leave explicit zeros, but sparse-aware consumers ignore
// entries below their zero threshold.
type Sparse struct {
	idx []int
	val []float64
	max int // declared capacity; len(idx) <= max
}

// NewSparse creates an empty sparse vector able to hold up to max
// entries. A negative max is treated as zero.
func NewSparse(max int) *Sparse {
	if max < 0 {
		max = 0
	}

	return &Sparse{
		idx: make([]int, 0, max),
		val: make([]float64, 0, max),
		max: max,
	}
}

// Size returns the number of stored entries.
func (s *Sparse) Size() int { return len(s.idx) }

// Max returns the declared capacity.
func (s *Sparse) Max() int { return s.max }

// Index returns the index of the k-th entry. Out-of-range k panics.
func (s *Sparse) Index(k int) int { return s.idx[k] }

// Value returns the value of the k-th entry. Out-of-range k panics.
func (s *Sparse) Value(k int) float64 { return s.val[k] }

// SetValue overwrites the value of the k-th entry. Out-of-range k panics.
func (s *Sparse) SetValue(k int, x float64) { s.val[k] = x }

// Add appends the entry (i, x). The caller guarantees that i is not
// already present; the contract is checked lazily by Sort.
// Returns ErrNegativeIndex for i < 0 and ErrCapacityExceeded when the
// declared capacity is exhausted.
// Complexity: O(1).
func (s *Sparse) Add(i int, x float64) error {
	if i < 0 {
		return ErrNegativeIndex
	}
	if len(s.idx) >= s.max {
		return ErrCapacityExceeded
	}
	s.idx = append(s.idx, i)
	s.val = append(s.val, x)

	return nil
}

// Clear removes all entries, keeping the capacity.
func (s *Sparse) Clear() {
	s.idx = s.idx[:0]
	s.val = s.val[:0]
}

// SetMax enlarges the declared capacity to n. Shrinking below the current
// size is ignored.
// Complexity: O(size) when reallocation is needed.
func (s *Sparse) SetMax(n int) {
	if n < len(s.idx) {
		return
	}
	s.max = n
	if n > cap(s.idx) {
		idx := make([]int, len(s.idx), n)
		val := make([]float64, len(s.val), n)
		copy(idx, s.idx)
		copy(val, s.val)
		s.idx, s.val = idx, val
	}
}

// Sort orders the entries by ascending index and reports a violated Add
// contract through ErrDuplicateIndex.
// Complexity: O(size log size).
func (s *Sparse) Sort() error {
	sort.Sort((*sparseByIndex)(s))
	for k := 1; k < len(s.idx); k++ {
		if s.idx[k] == s.idx[k-1] {
			return ErrDuplicateIndex
		}
	}

	return nil
}

// DotDense returns the inner product with a dense vector. Entries of s
// outside the dimension of d panic.
// Complexity: O(size).
func (s *Sparse) DotDense(d *Dense) float64 {
	var sum float64
	for k := range s.idx {
		sum += s.val[k] * d.At(s.idx[k])
	}

	return sum
}

// sparseByIndex adapts Sparse to sort.Interface, keeping idx and val
// aligned during swaps.
type sparseByIndex Sparse

func (s *sparseByIndex) Len() int           { return len(s.idx) }
func (s *sparseByIndex) Less(i, j int) bool { return s.idx[i] < s.idx[j] }
func (s *sparseByIndex) Swap(i, j int) {
	s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
	s.val[i], s.val[j] = s.val[j], s.val[i]
}
