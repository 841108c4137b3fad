// Package simplex_test: unit tests for the Devex pricer's weight
// bookkeeping and selection rule.
package simplex_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splx/lp"
	"github.com/katalvlaran/splx/simplex"
)

// loadedDevex builds a small engine and binds a fresh Devex pricer to
// it: two structural variables, one row.
func loadedDevex(t *testing.T) (*simplex.DevexPricer, *simplex.Solver) {
	t.Helper()
	m := lp.New()
	addCols(t, m, 1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)

	d := simplex.NewDevexPricer()
	s := simplex.New(simplex.WithPricer(d))
	require.NoError(t, s.Load(m))
	d.Load(s)

	return d, s
}

// TestDevexInitialWeights verifies the reference initialization: 2 for
// ENTER everywhere, 1 on the basic side for LEAVE.
func TestDevexInitialWeights(t *testing.T) {
	d, _ := loadedDevex(t)

	d.SetType(simplex.TypeEnter)
	require.Equal(t, 2.0, d.Penalty(0))   // structural side at 2
	require.Equal(t, 2.0, d.CoPenalty(0)) // basic side at 2

	d.SetType(simplex.TypeLeave)
	require.Equal(t, 1.0, d.CoPenalty(0)) // basic side reset to 1
}

// TestDevexAddedVarsPreservesPrefix confirms growth initializes only
// the appended suffix (the spec's open question, resolved from source).
func TestDevexAddedVarsPreservesPrefix(t *testing.T) {
	d, _ := loadedDevex(t)
	d.SetType(simplex.TypeEnter)

	d.SetPenalty(1, 7.5) // hand-tune an existing weight
	d.AddedVars(2)       // grow by two

	require.Equal(t, 7.5, d.Penalty(1)) // pre-existing weight preserved
	require.Equal(t, 2.0, d.Penalty(2)) // suffix initialized
	require.Equal(t, 2.0, d.Penalty(3))
}

// TestDevexRemovedVarsPermutation migrates weights under an
// order-preserving removal permutation.
func TestDevexRemovedVarsPermutation(t *testing.T) {
	d, _ := loadedDevex(t)
	d.SetType(simplex.TypeEnter)
	d.AddedVars(2) // four structural weights now

	d.SetPenalty(1, 11)
	d.SetPenalty(3, 13)

	d.RemovedVars([]int{-1, 0, -1, 1}) // drop 0 and 2

	require.Equal(t, 11.0, d.Penalty(0)) // old index 1 moved to 0
	require.Equal(t, 13.0, d.Penalty(1)) // old index 3 moved to 1
}

// TestDevexSelectEnterPrefersStructural ensures the structural-side
// winner beats a better logical-side score.
func TestDevexSelectEnterPrefersStructural(t *testing.T) {
	d, s := loadedDevex(t)
	d.SetType(simplex.TypeEnter)

	s.Test().Set(0, -1)   // structural candidate, score 1/2
	s.CoTest().Set(0, -3) // logical candidate, score 9/2 (better)

	id, ok := d.SelectEnter()
	require.True(t, ok)
	require.Equal(t, simplex.KindCol, id.Kind) // structural side wins
	require.Equal(t, 0, id.Idx)
}

// TestDevexSelectEnterFallsBackToLogical returns the logical winner
// when no structural candidate is infeasible.
func TestDevexSelectEnterFallsBackToLogical(t *testing.T) {
	d, s := loadedDevex(t)
	d.SetType(simplex.TypeEnter)

	s.CoTest().Set(0, -2) // only a logical candidate

	id, ok := d.SelectEnter()
	require.True(t, ok)
	require.Equal(t, simplex.KindRow, id.Kind)

	s.CoTest().Set(0, 0) // nothing infeasible anywhere
	_, ok = d.SelectEnter()
	require.False(t, ok)
}

// TestDevexSelectEnterRowPrefersLogical flips the side preference under
// ROW orientation: the var/covar roles swap, so the logical-side winner
// is returned even when a structural candidate exists.
func TestDevexSelectEnterRowPrefersLogical(t *testing.T) {
	d, s := loadedDevex(t)
	d.SetRepresentation(simplex.RepresentationRow)
	d.SetType(simplex.TypeEnter)

	s.Test().Set(0, -3)   // structural candidate, the better score
	s.CoTest().Set(0, -1) // logical candidate

	id, ok := d.SelectEnter()
	require.True(t, ok)
	require.Equal(t, simplex.KindRow, id.Kind) // logical side wins under ROW
}

// TestDevexSelectLeaveMaximizesScore picks the fTest²/weight maximizer.
func TestDevexSelectLeaveMaximizesScore(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0}, []float64{1}), lp.Infinity)
	require.NoError(t, err)
	_, err = m.AddRow(2, sparseOf(t, []int{0}, []float64{1}), lp.Infinity)
	require.NoError(t, err)

	d := simplex.NewDevexPricer()
	s := simplex.New(simplex.WithPricer(d))
	require.NoError(t, s.Load(m))
	d.Load(s)
	d.SetType(simplex.TypeLeave)

	s.FTest().Set(0, -1) // score 1
	s.FTest().Set(1, -2) // score 4: the winner

	require.Equal(t, 1, d.SelectLeave())
}

// TestDevexFullSolveDegenerate runs Devex through a degenerate problem
// end to end (weights must stay in the reset corridor or recover).
func TestDevexFullSolveDegenerate(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 0, 0)
	_, err := m.AddRow(0, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)
	_, err = m.AddRow(0, sparseOf(t, []int{0, 2}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New() // default pricer is Devex
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, 0.0, s.ObjValue(), 1e-9)
}
