// Package simplex_test: unit tests for the bundled LU/eta factorizer.
package simplex_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splx/simplex"
	"github.com/katalvlaran/splx/vec"
)

// matrixColumns adapts a dense column-major matrix to BasisColumns.
type matrixColumns struct {
	dim  int
	cols [][]float64
}

func (mc matrixColumns) Dim() int { return mc.dim }

func (mc matrixColumns) Column(pos int, out []float64) {
	copy(out, mc.cols[pos])
}

// solveRight runs SolveRight into a fresh semi-sparse result.
func solveRight(t *testing.T, f simplex.Factorizer, dim int, rhs []float64) *vec.SemiSparse {
	t.Helper()
	out := vec.NewSemiSparse(dim, 1e-14)
	require.NoError(t, f.SolveRight(rhs, out))

	return out
}

// TestLUFactorSolveRightLeft factorizes a 2x2 basis and checks both
// solve directions against hand results.
func TestLUFactorSolveRightLeft(t *testing.T) {
	// B = | 2 0 |
	//     | 1 1 |
	bc := matrixColumns{dim: 2, cols: [][]float64{{2, 1}, {0, 1}}}
	f := simplex.NewLUFactor(10, 5)
	require.NoError(t, f.Load(bc))

	x := solveRight(t, f, 2, []float64{2, 4})
	require.InDelta(t, 1.0, x.At(0), 1e-12) // 2*1 = 2
	require.InDelta(t, 3.0, x.At(1), 1e-12) // 1 + 3 = 4
	require.True(t, x.IsSetup())            // results arrive set up

	y := vec.NewSemiSparse(2, 1e-14)
	require.NoError(t, f.SolveLeft([]float64{4, 2}, y))
	// Bᵀy = (4,2): 2y0 + y1 = 4, y1 = 2 -> y0 = 1.
	require.InDelta(t, 1.0, y.At(0), 1e-12)
	require.InDelta(t, 2.0, y.At(1), 1e-12)
}

// TestLUFactorSingular rejects a rank-deficient basis.
func TestLUFactorSingular(t *testing.T) {
	bc := matrixColumns{dim: 2, cols: [][]float64{{1, 1}, {2, 2}}}
	f := simplex.NewLUFactor(10, 5)
	require.ErrorIs(t, f.Load(bc), simplex.ErrSingularBasis)
}

// TestLUFactorUpdateMatchesRefactor replaces one basis column through
// Update and checks the eta-file solve against a from-scratch
// factorization of the exchanged basis.
func TestLUFactorUpdateMatchesRefactor(t *testing.T) {
	// Start basis B = I (2x2); replace column 0 by a = (2, 1).
	bc := matrixColumns{dim: 2, cols: [][]float64{{1, 0}, {0, 1}}}
	f := simplex.NewLUFactor(10, 5)
	require.NoError(t, f.Load(bc))

	// delta = B⁻¹·a = a for the identity start.
	delta := vec.NewSemiSparse(2, 1e-14)
	require.NoError(t, f.SolveRight([]float64{2, 1}, delta))
	require.NoError(t, f.Update(delta, 0, delta.At(0)))

	got := solveRight(t, f, 2, []float64{4, 4})

	// Reference: factorize the exchanged basis directly.
	ref := simplex.NewLUFactor(10, 5)
	require.NoError(t, ref.Load(matrixColumns{dim: 2, cols: [][]float64{{2, 1}, {0, 1}}}))
	want := solveRight(t, ref, 2, []float64{4, 4})

	require.InDelta(t, want.At(0), got.At(0), 1e-10) // updated solve agrees
	require.InDelta(t, want.At(1), got.At(1), 1e-10)

	// Transposed solves must agree as well.
	gotL := vec.NewSemiSparse(2, 1e-14)
	wantL := vec.NewSemiSparse(2, 1e-14)
	require.NoError(t, f.SolveLeft([]float64{3, 5}, gotL))
	require.NoError(t, ref.SolveLeft([]float64{3, 5}, wantL))
	require.InDelta(t, wantL.At(0), gotL.At(0), 1e-10)
	require.InDelta(t, wantL.At(1), gotL.At(1), 1e-10)
}

// TestLUFactorUpdateBudget exhausts the update budget and expects
// ErrNeedsRefactor without corrupting the factor.
func TestLUFactorUpdateBudget(t *testing.T) {
	bc := matrixColumns{dim: 2, cols: [][]float64{{1, 0}, {0, 1}}}
	f := simplex.NewLUFactor(1, 100) // a single update allowed
	require.NoError(t, f.Load(bc))

	delta := vec.NewSemiSparse(2, 1e-14)
	delta.SetValue(0, 1)
	require.NoError(t, f.Update(delta, 0, 1))
	require.ErrorIs(t, f.Update(delta, 1, 1), simplex.ErrNeedsRefactor)

	// The factor keeps answering with its recorded state.
	x := solveRight(t, f, 2, []float64{1, 1})
	require.InDelta(t, 1.0, x.At(0), 1e-12)
	require.InDelta(t, 1.0, x.At(1), 1e-12)
}

// TestLUFactorNonzeros tracks base fill plus eta fill.
func TestLUFactorNonzeros(t *testing.T) {
	bc := matrixColumns{dim: 2, cols: [][]float64{{1, 0}, {0, 1}}}
	f := simplex.NewLUFactor(10, 100)
	require.NoError(t, f.Load(bc))
	base := f.Nonzeros()
	require.Equal(t, 4, base) // dense base factor of a 2x2

	delta := vec.NewSemiSparse(2, 1e-14)
	delta.SetValue(0, 2)
	delta.SetValue(1, 1)
	require.NoError(t, f.Update(delta, 0, 2))
	require.Greater(t, f.Nonzeros(), base) // eta fill counted
}
