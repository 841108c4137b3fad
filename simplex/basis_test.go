// Package simplex_test: basis invariants, warm-basis validation and the
// persisted basis-file round trip.
package simplex_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splx/lp"
	"github.com/katalvlaran/splx/simplex"
)

// TestInstallBasisValidation rejects warm bases breaking the invariants.
func TestInstallBasisValidation(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0}, []float64{1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))

	// Wrong length.
	err = s.InstallBasis([]simplex.VarStatus{simplex.VarBasic})
	require.ErrorIs(t, err, simplex.ErrDimensionMismatch)

	// Too many basics (2 for a 1-row problem).
	err = s.InstallBasis([]simplex.VarStatus{simplex.VarBasic, simplex.VarBasic})
	require.ErrorIs(t, err, simplex.ErrBadBasis)

	// Too few basics.
	err = s.InstallBasis([]simplex.VarStatus{simplex.VarOnLower, simplex.VarOnLower})
	require.ErrorIs(t, err, simplex.ErrBadBasis)

	// VarZero demands two infinite bounds; x0 has a finite lower bound.
	err = s.InstallBasis([]simplex.VarStatus{simplex.VarZero, simplex.VarBasic})
	require.ErrorIs(t, err, simplex.ErrBadBasis)

	// VarOnUpper demands a finite upper bound; x0 has none.
	err = s.InstallBasis([]simplex.VarStatus{simplex.VarOnUpper, simplex.VarBasic})
	require.ErrorIs(t, err, simplex.ErrBadBasis)

	// A legal warm basis installs.
	err = s.InstallBasis([]simplex.VarStatus{simplex.VarOnLower, simplex.VarBasic})
	require.NoError(t, err)
}

// TestBasisFileRoundTrip optimizes, persists the basis, reloads it into
// a fresh solver and expects the optimum with zero pivots.
func TestBasisFileRoundTrip(t *testing.T) {
	build := func() *lp.Model {
		m := lp.New()
		addCols(t, m, 1, 2)
		_, err := m.AddRow(2, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
		require.NoError(t, err)

		return m
	}

	s1 := simplex.New()
	require.NoError(t, s1.Load(build()))
	status, err := s1.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)

	var buf bytes.Buffer
	require.NoError(t, s1.WriteBasisFile(&buf))

	s2 := simplex.New()
	require.NoError(t, s2.Load(build()))
	require.NoError(t, s2.ReadBasisFile(bytes.NewReader(buf.Bytes())))

	status, err = s2.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.Zero(t, s2.Iterations()) // warm basis is already optimal
	require.InDelta(t, s1.ObjValue(), s2.ObjValue(), 1e-9)
}

// TestBasisFileRejectsGarbage fails cleanly on malformed tokens and on
// wrong line counts.
func TestBasisFileRejectsGarbage(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0}, []float64{1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))

	err = s.ReadBasisFile(bytes.NewBufferString("lower\nwat\n"))
	require.ErrorIs(t, err, simplex.ErrBadBasisFile)

	err = s.ReadBasisFile(bytes.NewBufferString("lower\n"))
	require.ErrorIs(t, err, simplex.ErrBadBasisFile) // one token short
}

// TestBasisStatusAccessors verifies per-variable statuses at an optimum
// of a mixed problem.
func TestBasisStatusAccessors(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	_, err = s.Optimize()
	require.NoError(t, err)

	basics := 0
	for j := 0; j < 2; j++ {
		if s.BasisColStatus(j) == simplex.VarBasic {
			basics++
		}
	}
	if s.BasisRowStatus(0) == simplex.VarBasic {
		basics++
	}
	require.Equal(t, 1, basics) // one row, one basic variable

	require.Equal(t, simplex.VarUndefined, s.BasisColStatus(-1)) // out of range
	require.Equal(t, simplex.VarUndefined, s.BasisRowStatus(7))
}
