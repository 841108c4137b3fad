// Package vec_test contains unit tests for the Dense vector type.
package vec_test

import (
	"testing"

	"github.com/katalvlaran/splx/vec"
	"github.com/stretchr/testify/require"
)

// TestNewDenseZeroFilled ensures a fresh Dense vector is zero everywhere.
func TestNewDenseZeroFilled(t *testing.T) {
	v := vec.NewDense(4)         // create a 4-dimensional vector
	require.Equal(t, 4, v.Dim()) // dimension matches the request
	for i := 0; i < 4; i++ {
		require.Zero(t, v.At(i)) // every element starts at zero
	}
}

// TestDenseReDimPreservesPrefix verifies that growing and truncating
// preserve the common prefix and zero new positions.
func TestDenseReDimPreservesPrefix(t *testing.T) {
	v := vec.NewDense(3)
	v.Set(0, 1.5)
	v.Set(2, -2.5)

	v.ReDim(5)                     // grow to 5
	require.Equal(t, 5, v.Dim())   // new dimension applied
	require.Equal(t, 1.5, v.At(0)) // prefix preserved
	require.Equal(t, -2.5, v.At(2))
	require.Zero(t, v.At(3)) // new positions zeroed
	require.Zero(t, v.At(4))

	v.ReDim(2)                     // truncate to 2
	require.Equal(t, 2, v.Dim())   // truncated dimension applied
	require.Equal(t, 1.5, v.At(0)) // surviving prefix intact

	v.ReDim(4) // regrow over previously used capacity
	require.Zero(t, v.At(2), "regrown position must not resurrect old value")
}

// TestDenseAddSubScaleDot exercises the in-place arithmetic surface.
func TestDenseAddSubScaleDot(t *testing.T) {
	a := vec.NewDense(3)
	b := vec.NewDense(3)
	for i := 0; i < 3; i++ {
		a.Set(i, float64(i+1)) // a = (1, 2, 3)
		b.Set(i, 2)            // b = (2, 2, 2)
	}

	require.NoError(t, a.Add(b)) // a = (3, 4, 5)
	require.Equal(t, 5.0, a.At(2))

	require.NoError(t, a.Sub(b)) // back to (1, 2, 3)
	require.Equal(t, 3.0, a.At(2))

	a.Scale(2) // a = (2, 4, 6)
	require.Equal(t, 4.0, a.At(1))

	dot, err := a.Dot(b) // 2*2 + 4*2 + 6*2 = 24
	require.NoError(t, err)
	require.Equal(t, 24.0, dot)

	require.Equal(t, 4.0+16+36, a.Norm2Sq()) // squared norm of (2,4,6)
}

// TestDenseDimensionMismatch ensures arithmetic rejects unequal lengths.
func TestDenseDimensionMismatch(t *testing.T) {
	a := vec.NewDense(3)
	b := vec.NewDense(4)

	require.ErrorIs(t, a.Add(b), vec.ErrDimensionMismatch)
	require.ErrorIs(t, a.Sub(b), vec.ErrDimensionMismatch)
	require.ErrorIs(t, a.CopyFrom(b), vec.ErrDimensionMismatch)
	_, err := a.Dot(b)
	require.ErrorIs(t, err, vec.ErrDimensionMismatch)
}

// TestDenseMultAddVisitsSparseEntries checks v += alpha*s over nnz only.
func TestDenseMultAddVisitsSparseEntries(t *testing.T) {
	v := vec.NewDense(5)
	v.Set(1, 1)

	s := vec.NewSparse(2)
	require.NoError(t, s.Add(1, 2)) // entry at 1
	require.NoError(t, s.Add(4, 3)) // entry at 4

	v.MultAdd(0.5, s) // v = (0, 2, 0, 0, 1.5)

	require.Equal(t, 2.0, v.At(1)) // 1 + 0.5*2
	require.Equal(t, 1.5, v.At(4)) // 0 + 0.5*3
	require.Zero(t, v.At(0))       // untouched positions stay zero
	require.Zero(t, v.At(2))
}

// TestDenseCloneIndependence ensures Clone does not share storage.
func TestDenseCloneIndependence(t *testing.T) {
	v := vec.NewDense(2)
	v.Set(0, 7)

	c := v.Clone()
	c.Set(0, 9)

	require.Equal(t, 7.0, v.At(0)) // original unchanged
	require.Equal(t, 9.0, c.At(0)) // clone carries its own value
}
