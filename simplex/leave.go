package simplex

import "math"

// leaveStep runs one iteration of the leaving kernel (dual simplex):
// the pricer nominates a primal-infeasible basic variable, the dual
// ratio test picks the entering nonbasic that repairs it at minimum
// dual cost, and the pivot exchanges the two. When no admissible
// entering variable exists the violated row is a proof of primal
// infeasibility.
func (s *Solver) leaveStep() stepResult {
	s.clearUpdates()

	p := s.pricer.SelectLeave()
	if p < 0 {
		return stepNoCandidate
	}
	leaving := s.basis.BasicAt(p)
	xp := s.fVec.Dense().At(p)

	// sigma: +1 when the leaving value must increase to its lower
	// bound, −1 when it must decrease to its upper.
	var sigma float64
	inf := s.params.Infinity
	switch {
	case s.lb[leaving] > -inf && xp < s.lb[leaving]-s.params.EpsilonZero:
		sigma = 1
	case s.ub[leaving] < inf && xp > s.ub[leaving]+s.params.EpsilonZero:
		sigma = -1
	default:
		// The selection was numerically stale.
		return stepNoCandidate
	}

	// Pivot row: coPvec.delta = B⁻ᵀe_p, pVec.delta its structural image.
	fillUnit(s.rhsScratch, p)
	if err := s.factor.SolveLeft(s.rhsScratch, s.coPvec.Delta()); err != nil {
		return s.onSolveError(err)
	}
	s.buildPivotRow()

	q, flips, ok := s.ratio.SelectEnter(p, sigma)
	if !ok {
		if s.params.EnsureRay {
			s.buildFarkas(sigma)
		}

		return stepInfeasible
	}
	if len(flips) > 0 {
		if res := s.applyBoundFlips(flips); res != stepPivoted {
			return res
		}
		xp = s.fVec.Dense().At(p)
	}

	j := s.varIndexOf(q)
	s.columnDense(j, s.rhsScratch)
	if err := s.factor.SolveRight(s.rhsScratch, s.fVec.Delta()); err != nil {
		return s.onSolveError(err)
	}
	rho := s.fVec.Delta().At(p)
	if math.Abs(rho) < s.params.EpsilonPivot {
		return s.onStall(j)
	}
	s.clearStall()

	var bound float64
	var leaveSt VarStatus
	if sigma > 0 {
		bound, leaveSt = s.lb[leaving], VarOnLower
	} else {
		bound, leaveSt = s.ub[leaving], VarOnUpper
	}
	if s.lb[leaving] == s.ub[leaving] {
		leaveSt = VarFixed
	}

	// Primal move: the entering variable absorbs thetaP, the basics
	// shift by −thetaP·delta, the leaving value lands on its bound.
	thetaP := (xp - bound) / rho
	d := s.redCost(j)
	s.fVec.SetValue(-thetaP)
	s.fVec.Apply()
	s.mirrorBasics()
	xq := s.x.At(j) + thetaP

	// Dual move: the entering reduced cost is driven to zero.
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
	s.pricer.Left(p, q)
	s.iters++

	return stepPivoted
}

// applyBoundFlips moves the listed nonbasic variables to their opposite
// bounds (the long-step dual) and recomputes the basic values for the
// accumulated shift with one extra solve.
func (s *Solver) applyBoundFlips(flips []int) stepResult {
	rhs := s.flipScratch
	for i := range rhs {
		rhs[i] = 0
	}
	for _, j := range flips {
		var target float64
		var st VarStatus
		if s.basis.Status(j) == VarOnLower {
			target, st = s.ub[j], VarOnUpper
		} else {
			target, st = s.lb[j], VarOnLower
		}
		shift := target - s.x.At(j)
		if shift == 0 {
			continue
		}
		if j < s.nCols {
			view, _ := s.model.ColView(j)
			for k := 0; k < view.Size(); k++ {
				rhs[view.Index(k)] += view.Value(k) * shift
			}
		} else {
			rhs[j-s.nCols] -= shift
		}
		s.x.Set(j, target)
		s.basis.status[j] = st
	}
	if err := s.factor.SolveRight(rhs, s.solveScratch); err != nil {
		return s.onSolveError(err)
	}
	xb := s.fVec.Dense()
	for i := 0; i < s.nRows; i++ {
		v := xb.At(i) - s.solveScratch.At(i)
		xb.Set(i, v)
		s.x.Set(s.basis.BasicAt(i), v)
	}

	return stepPivoted
}

// buildFarkas records the infeasibility certificate: the signed row
// B⁻ᵀe_p of the violated basic variable. For every feasible point the
// certificate row contradicts the violated bound.
func (s *Solver) buildFarkas(sigma float64) {
	out := make([]float64, s.nRows)
	delta := s.coPvec.Delta()
	for r := 0; r < s.nRows; r++ {
		out[r] = sigma * delta.At(r)
	}
	s.farkas = out
}
