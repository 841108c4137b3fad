package vec

import "math"

// SemiSparse is a dense vector paired with an IdxSet purported to cover
// its nonzero positions. Invariant: every position outside the cover
// holds a value of magnitude below the zero threshold eps. The converse
// need not hold — the cover may be a superset of the true nonzeros.
//
// Mutators either maintain the invariant or mark the vector unsynced;
// sparse-aware consumers must call Setup after unsynced mutation.
type SemiSparse struct {
	dense  Dense
	cover  IdxSet
	eps    float64 // zero threshold, >= the engine's epsilon_zero
	synced bool
}

// NewSemiSparse creates a zero SemiSparse of the given dimension with
// zero threshold eps. A non-positive eps falls back to 1e-16.
func NewSemiSparse(dim int, eps float64) *SemiSparse {
	if eps <= 0 {
		eps = 1e-16
	}
	v := &SemiSparse{eps: eps, synced: true}
	v.dense.ReDim(dim)
	v.cover.ReDim(dim)

	return v
}

// Dim returns the dimension.
func (v *SemiSparse) Dim() int { return v.dense.Dim() }

// Eps returns the zero threshold.
func (v *SemiSparse) Eps() float64 { return v.eps }

// At returns the value at position i. Out-of-range i panics.
func (v *SemiSparse) At(i int) float64 { return v.dense.At(i) }

// Values exposes the dense backing slice for kernel loops. Writing
// through it bypasses cover maintenance; call Unsync and Setup after.
func (v *SemiSparse) Values() []float64 { return v.dense.Values() }

// Indices returns the nonzero cover. The set aliases the vector.
func (v *SemiSparse) Indices() *IdxSet { return &v.cover }

// IsSetup reports whether the cover is trusted to satisfy the invariant.
func (v *SemiSparse) IsSetup() bool { return v.synced }

// Unsync marks the cover untrusted, forcing a Setup rescan before the
// next sparse-aware use.
func (v *SemiSparse) Unsync() { v.synced = false }

// SetValue assigns x at position i, maintaining the cover: any value of
// magnitude >= eps joins the cover. Entries dropping below eps keep their
// cover slot (superset covers are legal).
// Complexity: O(1).
func (v *SemiSparse) SetValue(i int, x float64) {
	v.dense.Set(i, x)
	if math.Abs(x) >= v.eps {
		v.cover.Add(i)
	}
}

// Setup rescans the dense values and rebuilds the cover over the
// threshold eps, restoring the synced state.
// Complexity: O(dim).
func (v *SemiSparse) Setup() {
	v.cover.Clear()
	data := v.dense.Values()
	for i, x := range data {
		if math.Abs(x) >= v.eps {
			v.cover.Add(i)
		}
	}
	v.synced = true
}

// Assign sets v <- alpha * s in one pass, rebuilding the cover.
// Entries of s outside the dimension panic.
// Complexity: O(dim) for the clear plus O(nnz(s)).
func (v *SemiSparse) Assign(alpha float64, s *Sparse) {
	v.Clear()
	for k := 0; k < s.Size(); k++ {
		v.SetValue(s.Index(k), alpha*s.Value(k))
	}
	v.synced = true
}

// Clear zeroes the vector and empties the cover.
// Complexity: O(cover size) when synced, O(dim) otherwise.
func (v *SemiSparse) Clear() {
	if v.synced {
		data := v.dense.Values()
		for k := 0; k < v.cover.Size(); k++ {
			data[v.cover.Index(k)] = 0
		}
	} else {
		v.dense.Clear()
	}
	v.cover.Clear()
	v.synced = true
}

// ReDim grows or truncates the vector, preserving the prefix.
func (v *SemiSparse) ReDim(n int) {
	v.dense.ReDim(n)
	v.cover.ReDim(n)
}

// Norm2Sq returns the squared Euclidean norm, computed over the cover.
// The vector must be synced.
// Complexity: O(cover size).
func (v *SemiSparse) Norm2Sq() float64 {
	var sum float64
	data := v.dense.Values()
	for k := 0; k < v.cover.Size(); k++ {
		x := data[v.cover.Index(k)]
		sum += x * x
	}

	return sum
}
