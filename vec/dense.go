package vec

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Dense is a fixed-dimension vector of float64 values backed by a flat
// slice for cache friendliness.
type Dense struct {
	data []float64 // backing storage, length == dimension
}

// NewDense creates a Dense vector of the given dimension, zero-filled.
// A non-positive dimension yields an empty vector.
// Complexity: O(dim) time and memory.
func NewDense(dim int) *Dense {
	if dim < 0 {
		dim = 0
	}

	return &Dense{data: make([]float64, dim)}
}

// Dim returns the dimension of the vector.
func (v *Dense) Dim() int { return len(v.data) }

// At returns the element at position i. Out-of-range i panics.
func (v *Dense) At(i int) float64 { return v.data[i] }

// Set assigns value x at position i. Out-of-range i panics.
func (v *Dense) Set(i int, x float64) { v.data[i] = x }

// Values exposes the backing slice for kernel loops. The slice aliases
// the vector; it is invalidated by ReDim.
func (v *Dense) Values() []float64 { return v.data }

// ReDim grows or truncates the vector to dimension n, preserving the
// common prefix. Newly exposed positions are zero.
// Complexity: O(n) worst case (reallocation), amortized O(delta).
func (v *Dense) ReDim(n int) {
	if n < 0 {
		n = 0
	}
	switch {
	case n <= len(v.data):
		v.data = v.data[:n]
	case n <= cap(v.data):
		old := len(v.data)
		v.data = v.data[:n]
		for i := old; i < n; i++ {
			v.data[i] = 0
		}
	default:
		grown := make([]float64, n)
		copy(grown, v.data)
		v.data = grown
	}
}

// Clear sets every element to zero without changing the dimension.
func (v *Dense) Clear() {
	for i := range v.data {
		v.data[i] = 0
	}
}

// CopyFrom overwrites the vector with the contents of src.
// Returns ErrDimensionMismatch when dimensions differ.
func (v *Dense) CopyFrom(src *Dense) error {
	if len(v.data) != len(src.data) {
		return ErrDimensionMismatch
	}
	copy(v.data, src.data)

	return nil
}

// Clone returns a deep copy of the vector.
func (v *Dense) Clone() *Dense {
	out := make([]float64, len(v.data))
	copy(out, v.data)

	return &Dense{data: out}
}

// Add performs v += other element-wise.
// Returns ErrDimensionMismatch when dimensions differ.
// Complexity: O(dim).
func (v *Dense) Add(other *Dense) error {
	if len(v.data) != len(other.data) {
		return ErrDimensionMismatch
	}
	floats.Add(v.data, other.data)

	return nil
}

// Sub performs v -= other element-wise.
// Returns ErrDimensionMismatch when dimensions differ.
// Complexity: O(dim).
func (v *Dense) Sub(other *Dense) error {
	if len(v.data) != len(other.data) {
		return ErrDimensionMismatch
	}
	floats.Sub(v.data, other.data)

	return nil
}

// Scale performs v *= alpha element-wise.
// Complexity: O(dim).
func (v *Dense) Scale(alpha float64) {
	floats.Scale(alpha, v.data)
}

// Dot returns the inner product with other.
// Returns ErrDimensionMismatch when dimensions differ.
// Complexity: O(dim).
func (v *Dense) Dot(other *Dense) (float64, error) {
	if len(v.data) != len(other.data) {
		return 0, ErrDimensionMismatch
	}

	return floats.Dot(v.data, other.data), nil
}

// Norm2Sq returns the squared Euclidean norm.
// Complexity: O(dim).
func (v *Dense) Norm2Sq() float64 {
	return floats.Dot(v.data, v.data)
}

// MultAdd performs v += alpha * s, visiting only the entries of s.
// Entries of s outside the dimension of v panic.
// Complexity: O(nnz(s)).
func (v *Dense) MultAdd(alpha float64, s *Sparse) {
	for k := 0; k < s.Size(); k++ {
		v.data[s.Index(k)] += alpha * s.Value(k)
	}
}

// String implements fmt.Stringer for debugging.
func (v *Dense) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v.data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", x)
	}
	b.WriteByte(']')

	return b.String()
}
