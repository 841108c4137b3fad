// Package vec_test contains unit tests for the Sparse vector type.
package vec_test

import (
	"testing"

	"github.com/katalvlaran/splx/vec"
	"github.com/stretchr/testify/require"
)

// TestSparseAddAndAccess verifies entry order and accessors.
func TestSparseAddAndAccess(t *testing.T) {
	s := vec.NewSparse(3)
	require.NoError(t, s.Add(4, 1.0)) // first entry
	require.NoError(t, s.Add(1, 2.0)) // second entry

	require.Equal(t, 2, s.Size())   // two entries stored
	require.Equal(t, 4, s.Index(0)) // insertion order preserved
	require.Equal(t, 1.0, s.Value(0))
	require.Equal(t, 1, s.Index(1))
	require.Equal(t, 2.0, s.Value(1))
}

// TestSparseCapacity ensures Add respects the declared capacity and
// SetMax enlarges it in place.
func TestSparseCapacity(t *testing.T) {
	s := vec.NewSparse(1)
	require.NoError(t, s.Add(0, 1))                          // fits
	require.ErrorIs(t, s.Add(1, 2), vec.ErrCapacityExceeded) // over capacity

	s.SetMax(2)                     // enlarge
	require.NoError(t, s.Add(1, 2)) // now fits
	require.Equal(t, 2, s.Size())
}

// TestSparseRejectsNegativeIndex ensures negative indices are refused.
func TestSparseRejectsNegativeIndex(t *testing.T) {
	s := vec.NewSparse(1)
	require.ErrorIs(t, s.Add(-1, 1), vec.ErrNegativeIndex)
}

// TestSparseSortDetectsDuplicates checks ordering and the lazy duplicate
// check of the Add contract.
func TestSparseSortDetectsDuplicates(t *testing.T) {
	s := vec.NewSparse(4)
	require.NoError(t, s.Add(3, 30))
	require.NoError(t, s.Add(0, 0.5))
	require.NoError(t, s.Add(2, 20))

	require.NoError(t, s.Sort())    // unique indices sort fine
	require.Equal(t, 0, s.Index(0)) // ascending order after Sort
	require.Equal(t, 2, s.Index(1))
	require.Equal(t, 3, s.Index(2))
	require.Equal(t, 20.0, s.Value(1)) // values moved with their indices

	require.NoError(t, s.Add(2, 99))                    // violate the contract
	require.ErrorIs(t, s.Sort(), vec.ErrDuplicateIndex) // Sort reports it
}

// TestSparseDotDense checks the sparse-dense inner product.
func TestSparseDotDense(t *testing.T) {
	d := vec.NewDense(4)
	d.Set(1, 2)
	d.Set(3, 5)

	s := vec.NewSparse(2)
	require.NoError(t, s.Add(1, 3))  // 3*2
	require.NoError(t, s.Add(3, -1)) // -1*5

	require.Equal(t, 1.0, s.DotDense(d)) // 6 - 5
}

// TestSparseClearKeepsCapacity ensures Clear empties without shrinking.
func TestSparseClearKeepsCapacity(t *testing.T) {
	s := vec.NewSparse(2)
	require.NoError(t, s.Add(0, 1))
	s.Clear()

	require.Zero(t, s.Size())       // emptied
	require.Equal(t, 2, s.Max())    // capacity kept
	require.NoError(t, s.Add(1, 2)) // reusable immediately
}
