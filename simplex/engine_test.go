// Package simplex_test contains the engine scenario tests: the literal
// spec scenarios, the state-machine round trips and the basis
// invariants over every reachable terminal state.
package simplex_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/splx/lp"
	"github.com/katalvlaran/splx/simplex"
	"github.com/katalvlaran/splx/vec"
)

// sparseOf builds a vec.Sparse from parallel index/value slices.
func sparseOf(t *testing.T, idx []int, val []float64) *vec.Sparse {
	t.Helper()
	s := vec.NewSparse(len(idx))
	for k := range idx {
		require.NoError(t, s.Add(idx[k], val[k]))
	}

	return s
}

// addCols appends n identical [0, inf) columns with the given costs.
func addCols(t *testing.T, m *lp.Model, costs ...float64) {
	t.Helper()
	for _, c := range costs {
		_, err := m.AddCol(c, 0, vec.NewSparse(0), lp.Infinity)
		require.NoError(t, err)
	}
}

// checkBasisInvariants asserts the §8 basis invariants on a solver
// whose last verdict was OPTIMAL.
func checkBasisInvariants(t *testing.T, s *simplex.Solver, m *lp.Model) {
	t.Helper()
	basicCount := 0
	for j := 0; j < m.NumCols(); j++ {
		if s.BasisColStatus(j) == simplex.VarBasic {
			basicCount++
		}
	}
	for r := 0; r < m.NumRows(); r++ {
		if s.BasisRowStatus(r) == simplex.VarBasic {
			basicCount++
		}
	}
	require.Equal(t, m.NumRows(), basicCount, "exactly m variables basic")

	x := s.PrimalSolution()
	const tol = 1e-6
	for j := 0; j < m.NumCols(); j++ {
		switch s.BasisColStatus(j) {
		case simplex.VarOnLower, simplex.VarFixed:
			require.InDelta(t, m.Lower(j), x[j], tol, "nonbasic on its lower bound")
		case simplex.VarOnUpper:
			require.InDelta(t, m.Upper(j), x[j], tol, "nonbasic on its upper bound")
		}
	}

	// Row activity within the ranges.
	for r := 0; r < m.NumRows(); r++ {
		var act float64
		for j := 0; j < m.NumCols(); j++ {
			view, err := m.ColView(j)
			require.NoError(t, err)
			for k := 0; k < view.Size(); k++ {
				if view.Index(k) == r {
					act += view.Value(k) * x[j]
				}
			}
		}
		if !lp.IsInfinite(m.Lhs(r)) {
			require.GreaterOrEqual(t, act, m.Lhs(r)-tol, "row %d above lhs", r)
		}
		if !lp.IsInfinite(m.Rhs(r)) {
			require.LessOrEqual(t, act, m.Rhs(r)+tol, "row %d below rhs", r)
		}
	}

	// Reduced-cost signs at the optimum.
	d := s.RedCost()
	for j := 0; j < m.NumCols(); j++ {
		switch s.BasisColStatus(j) {
		case simplex.VarOnLower:
			require.GreaterOrEqual(t, d[j], -tol, "on_lower needs nonnegative reduced cost")
		case simplex.VarOnUpper:
			require.LessOrEqual(t, d[j], tol, "on_upper needs nonpositive reduced cost")
		}
	}
}

// TestTrivialMinimization is spec scenario 1: minimize x1+x2 subject to
// x1+x2 >= 1, nonnegative variables.
func TestTrivialMinimization(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, 1.0, s.ObjValue(), 1e-9)

	x := s.PrimalSolution()
	require.InDelta(t, 1.0, x[0]+x[1], 1e-9) // any split summing to 1
	checkBasisInvariants(t, s, m)
}

// TestDegenerateOptimum is spec scenario 2: a degenerate vertex must
// terminate OPTIMAL without a cycling abort.
func TestDegenerateOptimum(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 0)
	_, err := m.AddRow(0, sparseOf(t, []int{0}, []float64{1}), lp.Infinity)
	require.NoError(t, err)
	_, err = m.AddRow(0, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)
	_, err = m.AddRow(0, sparseOf(t, []int{0, 1}, []float64{1, -1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, 0.0, s.ObjValue(), 1e-9)
}

// TestUnbounded is spec scenario 3: minimize -x1 with x1 free upward
// must report UNBOUNDED with a ray pointing along +x1.
func TestUnbounded(t *testing.T) {
	m := lp.New()
	addCols(t, m, -1)
	_, err := m.AddRow(0, sparseOf(t, []int{0}, []float64{1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusUnbounded, status)

	require.True(t, s.HasPrimalRay())
	ray := s.PrimalRay()
	require.Greater(t, ray[0], 0.0) // the improving direction is +x1
}

// TestInfeasible is spec scenario 4: x <= -1 against x >= 0 must
// report INFEASIBLE with a one-component Farkas certificate.
func TestInfeasible(t *testing.T) {
	m := lp.New()
	addCols(t, m, 0)
	_, err := m.AddRow(-lp.Infinity, sparseOf(t, []int{0}, []float64{1}), -1)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusInfeasible, status)

	require.True(t, s.HasFarkasDual())
	farkas := s.FarkasDual()
	require.Len(t, farkas, 1)
	require.NotZero(t, farkas[0]) // exactly one nonzero dual component
}

// TestIterLimit is spec scenario 5: a unit iteration limit must abort
// with a defined partial basis.
func TestIterLimit(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)
	_, err = m.AddRow(2, sparseOf(t, []int{1, 2}, []float64{1, 2}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New(simplex.WithIterLimit(1))
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusAbortIter, status)
	require.Equal(t, 1, s.Iterations())

	// The partial basis is populated: every variable has a status.
	defined := 0
	for j := 0; j < m.NumCols(); j++ {
		if s.BasisColStatus(j) != simplex.VarUndefined {
			defined++
		}
	}
	require.Equal(t, m.NumCols(), defined)
}

// interruptingPricer wraps Devex and raises the shared interrupt flag
// after a fixed number of selections.
type interruptingPricer struct {
	*simplex.DevexPricer
	flag  *atomic.Bool
	after int
	calls int
}

func (p *interruptingPricer) SelectLeave() int {
	p.tick()

	return p.DevexPricer.SelectLeave()
}

func (p *interruptingPricer) SelectEnter() (simplex.VarID, bool) {
	p.tick()

	return p.DevexPricer.SelectEnter()
}

func (p *interruptingPricer) tick() {
	p.calls++
	if p.calls > p.after {
		p.flag.Store(true)
	}
}

// TestInterruptAndResume is spec scenario 6: the cooperative interrupt
// returns a resumable RUNNING-family status with a consistent basis; a
// resumed optimize reaches OPTIMAL.
func TestInterruptAndResume(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 2, 3)
	_, err := m.AddRow(3, sparseOf(t, []int{0, 1, 2}, []float64{1, 1, 1}), lp.Infinity)
	require.NoError(t, err)
	_, err = m.AddRow(1, sparseOf(t, []int{0, 2}, []float64{1, -1}), lp.Infinity)
	require.NoError(t, err)

	var flag atomic.Bool
	p := &interruptingPricer{DevexPricer: simplex.NewDevexPricer(), flag: &flag, after: 0}
	s := simplex.New(simplex.WithPricer(p))
	s.SetInterrupt(&flag)
	require.NoError(t, s.Load(m))

	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusRunning, status) // interrupted, not terminal

	flag.Store(false) // clear and resume
	status, err = s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	checkBasisInvariants(t, s, m)
}

// TestOptimizeTwiceIdempotent re-optimizes an optimal state: OPTIMAL
// again with zero iterations performed.
func TestOptimizeTwiceIdempotent(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.NotZero(t, s.Iterations())

	status, err = s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.Zero(t, s.Iterations()) // no pivots on the second call
}

// TestMaximization checks the sense handling end to end:
// maximize x subject to x <= 5.
func TestMaximization(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1)
	m.ChangeSense(lp.Maximize)
	_, err := m.AddRow(-lp.Infinity, sparseOf(t, []int{0}, []float64{1}), 5)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, 5.0, s.ObjValue(), 1e-9)
	require.InDelta(t, 5.0, s.PrimalSolution()[0], 1e-9)
}

// TestBoundFlip drives the entering variable into its own opposite
// bound: a pivot-free bound flip must still reach the optimum.
func TestBoundFlip(t *testing.T) {
	m := lp.New()
	_, err := m.AddCol(-1, 0, vec.NewSparse(0), 2) // boxed variable
	require.NoError(t, err)
	_, err = m.AddRow(-lp.Infinity, sparseOf(t, []int{0}, []float64{1}), 10)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	// Warm basis off the cost-preferred bound to force the flip.
	require.NoError(t, s.InstallBasis([]simplex.VarStatus{
		simplex.VarOnLower, simplex.VarBasic,
	}))

	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, -2.0, s.ObjValue(), 1e-9)
	require.Equal(t, simplex.VarOnUpper, s.BasisColStatus(0))
}

// TestTwoPhase exercises a start that is neither primal nor dual
// feasible: minimize -x1 subject to x1 + x2 >= 1, x1 <= 3.
func TestTwoPhase(t *testing.T) {
	m := lp.New()
	addCols(t, m, -1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)
	_, err = m.AddRow(-lp.Infinity, sparseOf(t, []int{0}, []float64{1}), 3)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, -3.0, s.ObjValue(), 1e-8) // x1 at its cap
	checkBasisInvariants(t, s, m)
}

// TestRowRepresentation solves scenario 1 under ROW orientation and
// checks the (Representation, Type) pairing: the run is driven by
// primal infeasibility (the leaving kernel), which ROW names ENTER.
func TestRowRepresentation(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New(simplex.WithRepresentation(simplex.RepresentationRow))
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, 1.0, s.ObjValue(), 1e-9)

	require.Equal(t, simplex.RepresentationRow, s.Rep())
	require.Equal(t, simplex.TypeEnter, s.Type()) // ROW/ENTER ≡ leaving kernel
	checkBasisInvariants(t, s, m)
}

// TestDantzigPricer solves scenario 1 under the Dantzig rule.
func TestDantzigPricer(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)

	p := simplex.DefaultParams()
	p.Pricer = simplex.PricerDantzig
	s := simplex.New(simplex.WithParams(p))
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, 1.0, s.ObjValue(), 1e-9)
}

// TestConfigurationErrors checks the NO_PRICER family short-circuits.
func TestConfigurationErrors(t *testing.T) {
	s := simplex.New(simplex.WithPricer(nil))
	status, err := s.Optimize()
	require.ErrorIs(t, err, simplex.ErrNoPricer)
	require.Equal(t, simplex.StatusError, status)

	s = simplex.New()
	status, err = s.Optimize() // nothing loaded
	require.ErrorIs(t, err, simplex.ErrNoProblem)
	require.Equal(t, simplex.StatusNoProblem, status)
}

// TestAddRemoveColRestoresSolution removes a freshly added column and
// verifies the original optimum returns.
func TestAddRemoveColRestoresSolution(t *testing.T) {
	m := lp.New()
	addCols(t, m, 1, 1)
	_, err := m.AddRow(1, sparseOf(t, []int{0, 1}, []float64{1, 1}), lp.Infinity)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	_, err = s.Optimize()
	require.NoError(t, err)
	want := s.ObjValue()
	nCols := m.NumCols()

	j, err := s.AddCol(5, 0, sparseOf(t, []int{0}, []float64{1}), lp.Infinity)
	require.NoError(t, err)
	require.NoError(t, s.RemoveCol(j))
	require.Equal(t, nCols, m.NumCols()) // column count restored

	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, want, s.ObjValue(), 1e-9) // same optimum
}

// TestObjLimitAbort trips the objective corridor on a feasible descent.
func TestObjLimitAbort(t *testing.T) {
	m := lp.New()
	_, err := m.AddCol(-1, 0, vec.NewSparse(0), 1000)
	require.NoError(t, err)
	_, err = m.AddRow(-lp.Infinity, sparseOf(t, []int{0}, []float64{1}), 1000)
	require.NoError(t, err)

	s := simplex.New(
		simplex.WithObjLimits(-10, lp.Infinity),
		simplex.WithDisplayFreq(1),
	)
	require.NoError(t, s.Load(m))
	// Start away from the cost-preferred bound so the descent crosses
	// the corridor during the run rather than at the start.
	require.NoError(t, s.InstallBasis([]simplex.VarStatus{
		simplex.VarOnLower, simplex.VarBasic,
	}))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusAbortValue, status)
}

// TestAgainstGonumSimplex cross-checks a dense LP against gonum's
// simplex on the equality standard form.
func TestAgainstGonumSimplex(t *testing.T) {
	// minimize -x1 - 2x2 subject to
	//   -x1 + 2x2 <= 4
	//   3x1 +  x2 <= 9
	//   x1, x2 >= 0
	m := lp.New()
	addCols(t, m, -1, -2)
	_, err := m.AddRow(-lp.Infinity, sparseOf(t, []int{0, 1}, []float64{-1, 2}), 4)
	require.NoError(t, err)
	_, err = m.AddRow(-lp.Infinity, sparseOf(t, []int{0, 1}, []float64{3, 1}), 9)
	require.NoError(t, err)

	s := simplex.New()
	require.NoError(t, s.Load(m))
	status, err := s.Optimize()
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, status)

	// The same problem in gonum's Ax = b standard form with slacks.
	c := []float64{-1, -2, 0, 0}
	a := mat.NewDense(2, 4, []float64{
		-1, 2, 1, 0,
		3, 1, 0, 1,
	})
	b := []float64{4, 9}
	z, _, err := gonumlp.Simplex(c, a, b, 0, nil)
	require.NoError(t, err)

	require.InDelta(t, z, s.ObjValue(), 1e-8) // both solvers agree
	checkBasisInvariants(t, s, m)
}
