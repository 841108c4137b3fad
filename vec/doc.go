// Package vec provides the algebra primitives of the splx simplex core:
// dense vectors, capacity-bounded sparse vectors, semi-sparse vectors
// carrying an explicit nonzero cover, insertion-ordered index sets, and
// update vectors that defer a scalar-times-sparse increment.
//
// The key types offered are:
//
//   - Dense
//
//   - Fixed-dimension sequence of float64 values with in-place
//     arithmetic (Add, Sub, Scale), dot products and a sparse
//     multiply-add that visits only O(nnz) positions.
//
//   - Sparse
//
//   - Ordered (index, value) pairs with unique indices and a declared
//     capacity that may be enlarged in place via SetMax.
//
//   - IdxSet
//
//   - Unique nonnegative integers in insertion order, with an inverse
//     position table for O(1) membership and removal.
//
//   - SemiSparse
//
//   - A dense vector paired with an IdxSet purported to cover its
//     nonzeros: every position outside the cover holds a value of
//     magnitude below the zero threshold. The converse need not hold.
//     Mutators either maintain the cover or mark the vector unsynced,
//     forcing a Setup rescan before the next sparse-aware use.
//
//   - Update
//
//   - A dense vector x, a scalar alpha and a semi-sparse delta whose
//     logical value is x + alpha·delta; Apply folds the increment in,
//     touching only the cover of delta.
//
// # Numeric policy
//
// Dimension-level misuse (mismatched lengths, capacity overflow,
// duplicate sparse indices detected by Sort) is reported through the
// package sentinel errors and matched with errors.Is. Per-element access
// is a hot path for the simplex engine and is therefore unchecked: an
// out-of-range index panics like the slice access it is.
//
// Dense arithmetic kernels delegate to gonum's floats package.
package vec
