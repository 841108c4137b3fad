package simplex

import (
	"errors"
	"math"
)

// enterStep runs one iteration of the entering kernel (primal simplex):
// the pricer nominates a reduced-cost-infeasible nonbasic variable, the
// ratio test bounds its move along the solve-right direction, and the
// pivot exchanges it against the blocking basic variable.
//
// The iteration contract: select, solve-right, ratio test, primal
// update, basis swap, factor update, pricer notification — in that
// order, with the notification fired only for a committed pivot.
func (s *Solver) enterStep() stepResult {
	s.clearUpdates()

	id, ok := s.pricer.SelectEnter()
	if !ok {
		return stepNoCandidate
	}
	j := s.varIndexOf(id)
	d := s.redCost(j)

	// Movement sign: up from the lower bound, down from the upper, and
	// downhill for a free variable.
	dir := 1.0
	if st := s.basis.Status(j); st == VarOnUpper || (st == VarZero && d > 0) {
		dir = -1
	}

	s.columnDense(j, s.rhsScratch)
	if err := s.factor.SolveRight(s.rhsScratch, s.fVec.Delta()); err != nil {
		return s.onSolveError(err)
	}

	inf := s.params.Infinity
	gap := inf
	if s.lb[j] > -inf && s.ub[j] < inf {
		gap = s.ub[j] - s.lb[j]
	}
	p, step, flip := s.ratio.SelectLeave(dir, gap)

	if p < 0 && !flip {
		// No blocking bound anywhere: the direction is a ray.
		if s.params.EnsureRay {
			s.buildRay(j, dir)
		}

		return stepUnbounded
	}

	if flip {
		// The entering variable's own opposite bound blocks first: a
		// bound flip, no basis change and no factor update.
		s.fVec.SetValue(-dir * step)
		s.fVec.Apply()
		s.mirrorBasics()
		if dir > 0 {
			s.x.Set(j, s.ub[j])
			s.basis.status[j] = VarOnUpper
		} else {
			s.x.Set(j, s.lb[j])
			s.basis.status[j] = VarOnLower
		}
		s.iters++

		return stepPivoted
	}

	rho := s.fVec.Delta().At(p)
	if math.Abs(rho) < s.params.EpsilonPivot {
		return s.onStall(j)
	}
	s.clearStall()

	// Commit the primal move: basics shift by −dir·step·delta, the
	// entering variable by dir·step.
	s.fVec.SetValue(-dir * step)
	s.fVec.Apply()
	s.mirrorBasics()

	leaving := s.basis.BasicAt(p)
	var leaveSt VarStatus
	var bound float64
	if dir*rho > 0 {
		bound, leaveSt = s.lb[leaving], VarOnLower
	} else {
		bound, leaveSt = s.ub[leaving], VarOnUpper
	}
	if s.lb[leaving] == s.ub[leaving] {
		leaveSt = VarFixed
	}
	xq := s.x.At(j) + dir*step

	// Dual update through the pivot row.
	fillUnit(s.rhsScratch, p)
	if err := s.factor.SolveLeft(s.rhsScratch, s.coPvec.Delta()); err != nil {
		return s.onSolveError(err)
	}
	s.buildPivotRow()
	thetaD := d / rho
	s.coPvec.SetValue(thetaD)
	s.coPvec.Apply()
	s.pVec.SetValue(thetaD)
	s.pVec.Apply()

	s.basis.Swap(p, j, leaveSt)
	s.x.Set(leaving, bound)
	s.x.Set(j, xq)
	s.fVec.Dense().Set(p, xq)

	s.commitFactorUpdate(p, rho)
	s.pricer.Entered(id, p)
	s.iters++

	return stepPivoted
}

// commitFactorUpdate feeds the committed exchange to the factor and
// applies the refactorization policy: update budget, fill growth and
// memory growth all schedule a refresh.
func (s *Solver) commitFactorUpdate(p int, rho float64) {
	err := s.factor.Update(s.fVec.Delta(), p, rho)
	switch {
	case err == nil:
		s.updatesSinceRefactor++
		if s.updatesSinceRefactor >= s.params.FactorUpdateMax {
			s.needRefactor = true
		}
		baseline := float64(s.nRows*s.nRows) * s.params.RefacMemFactor
		if float64(s.factor.Nonzeros()) > baseline {
			s.needRefactor = true
		}
	case errors.Is(err, ErrNeedsRefactor):
		s.needRefactor = true
		s.factorFresh = false
	default:
		s.needRefactor = true
		s.factorFresh = false
	}
}

// onSolveError schedules recovery from a failed factor solve.
func (s *Solver) onSolveError(error) stepResult {
	if s.factorFresh {
		return stepSingular
	}
	s.factorFresh = false

	return stepStalled
}

// maxStallRetries bounds repeated tiny-pivot rejections of the same
// candidate on a fresh factor.
const maxStallRetries = 3

// onStall handles a pivot below EpsilonPivot: stale factors are
// refreshed and the step retried; a fresh factor repeating the same
// candidate surfaces SINGULAR.
func (s *Solver) onStall(j int) stepResult {
	if j == s.lastStall {
		s.stallCount++
	} else {
		s.lastStall = j
		s.stallCount = 1
	}
	if s.factorFresh && s.updatesSinceRefactor == 0 {
		if s.stallCount >= maxStallRetries {
			return stepSingular
		}
		// Break the tie: nudge the candidate away for this round by
		// perturbing, the same escape hatch the cycling monitor uses.
		if st := s.perturb(); st != StatusRunning {
			return stepSingular
		}

		return stepStalled
	}
	s.factorFresh = false

	return stepStalled
}

// clearStall resets the stall tracker after an accepted pivot.
func (s *Solver) clearStall() {
	s.lastStall = -1
	s.stallCount = 0
}

// buildRay records the primal ray of an unbounded direction: the
// entering variable moves with dir, each basic structural variable
// with −dir·delta.
func (s *Solver) buildRay(j int, dir float64) {
	ray := make([]float64, s.nCols)
	if j < s.nCols {
		ray[j] = dir
	}
	delta := s.fVec.Delta()
	idx := delta.Indices()
	for k := 0; k < idx.Size(); k++ {
		i := idx.Index(k)
		jb := s.basis.BasicAt(i)
		if jb < s.nCols {
			ray[jb] = -dir * delta.At(i)
		}
	}
	s.ray = ray
}
