package simplex

import (
	"math"
	"sort"
)

// RatioTester selects the blocking bound of a pivot step: the leaving
// basic variable of a primal (enter) step, or the entering nonbasic of
// a dual (leave) step.
type RatioTester interface {
	// Load binds the tester to an engine.
	Load(s *Solver)
	// SelectLeave runs the primal ratio test along the engine's current
	// solve-right direction (fVec delta) for an entering variable moving
	// with sign dir and own-bound gap. It returns the blocking basis
	// position with the step length, or p == -1 with flip == true when
	// the entering variable's opposite bound blocks first (bound flip),
	// or p == -1, flip == false and an infinite step when nothing blocks.
	SelectLeave(dir, gap float64) (p int, step float64, flip bool)
	// SelectEnter runs the dual ratio test on the pivot row at basis
	// position p, where sigma is +1 when the leaving variable must
	// increase. flips lists nonbasic variables whose bounds flip before
	// the pivot (long-step dual); ok is false when no admissible
	// entering variable exists (primal infeasibility proof).
	SelectEnter(p int, sigma float64) (q VarID, flips []int, ok bool)
}

// TextbookRatioTester is the plain one-blocker ratio test with a
// largest-pivot tie-break.
type TextbookRatioTester struct {
	s         *Solver
	longSteps bool // enable nonbasic bound flips in SelectEnter
}

// NewTextbookRatioTester creates the plain ratio tester.
func NewTextbookRatioTester() *TextbookRatioTester {
	return &TextbookRatioTester{}
}

// NewBoundFlippingRatioTester creates the textbook tester with the
// long-step dual extension: nonbasic variables whose full bound flip is
// cheaper than the remaining infeasibility are flipped instead of
// entering. The engine additionally gates flips on RowBoundFlips.
func NewBoundFlippingRatioTester() *TextbookRatioTester {
	return &TextbookRatioTester{longSteps: true}
}

// Load binds the tester to an engine.
func (rt *TextbookRatioTester) Load(s *Solver) { rt.s = s }

// SelectLeave scans the solve-right direction for the first bound hit
// among the basic variables, competing against the entering variable's
// own bound gap.
func (rt *TextbookRatioTester) SelectLeave(dir, gap float64) (int, float64, bool) {
	s := rt.s
	delta := s.fVec.Delta()
	idx := delta.Indices()
	vals := delta.Values()
	xb := s.fVec.Dense().Values()
	inf := s.params.Infinity
	epsZ := s.params.EpsilonZero

	step := math.Inf(1)
	flip := false
	if gap < inf {
		step = gap
		flip = true
	}
	p := -1
	var pAbs float64

	for k := 0; k < idx.Size(); k++ {
		i := idx.Index(k)
		d := vals[i]
		ad := math.Abs(d)
		if ad < epsZ {
			continue
		}
		coef := dir * d
		jb := s.basis.BasicAt(i)
		var t float64
		if coef > 0 {
			lo := s.lb[jb]
			if lo <= -inf {
				continue
			}
			t = (xb[i] - lo) / coef
		} else {
			up := s.ub[jb]
			if up >= inf {
				continue
			}
			t = (xb[i] - up) / coef
		}
		if t < 0 {
			t = 0
		}
		switch {
		case t < step-s.params.EpsilonZero:
			step, p, pAbs, flip = t, i, ad, false
		case t <= step+s.params.EpsilonZero && ad > pAbs:
			step, p, pAbs, flip = t, i, ad, false
		}
	}

	return p, step, flip
}

// dualCandidate is one admissible entering candidate of the dual test.
type dualCandidate struct {
	j     int     // variable index
	rho   float64 // pivot-row entry
	ratio float64 // |d_j / rho_j|
}

// SelectEnter collects the admissible nonbasic candidates of the pivot
// row and returns the minimum-ratio one, flipping cheaper candidates
// first when long steps are enabled.
func (rt *TextbookRatioTester) SelectEnter(p int, sigma float64) (VarID, []int, bool) {
	s := rt.s
	epsZ := s.params.EpsilonZero
	inf := s.params.Infinity

	var cands []dualCandidate
	admit := func(j int) {
		rho := s.rowEntry(j)
		if math.Abs(rho) < epsZ {
			return
		}
		var lambda float64
		switch s.basis.Status(j) {
		case VarOnLower:
			lambda = 1
		case VarOnUpper:
			lambda = -1
		case VarZero:
			// Free variables move either way; pick the helping sign.
			lambda = math.Copysign(1, -sigma*rho)
		default:
			return
		}
		// Moving j by lambda changes x_p by -rho*lambda; require the
		// move to push x_p toward its violated bound.
		if sigma*(-rho)*lambda <= 0 {
			return
		}
		d := s.redCost(j)
		cands = append(cands, dualCandidate{j: j, rho: rho, ratio: math.Abs(d) / math.Abs(rho)})
	}
	for j := 0; j < s.nTotal; j++ {
		admit(j)
	}
	if len(cands) == 0 {
		return VarID{}, nil, false
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].ratio != cands[b].ratio {
			return cands[a].ratio < cands[b].ratio
		}

		return math.Abs(cands[a].rho) > math.Abs(cands[b].rho)
	})

	useFlips := rt.longSteps && s.params.RowBoundFlips
	if !useFlips {
		c := cands[0]

		return s.idOf(c.j), nil, true
	}

	// Long step: flip candidates whose whole bound interval contributes
	// less than the remaining infeasibility, enter at the first that
	// covers the rest.
	xb := s.fVec.Dense().Values()
	var target float64
	if sigma > 0 {
		target = s.lb[s.basis.BasicAt(p)] - xb[p]
	} else {
		target = xb[p] - s.ub[s.basis.BasicAt(p)]
	}
	var flips []int
	for c := range cands {
		j := cands[c].j
		gap := s.ub[j] - s.lb[j]
		contribution := math.Abs(cands[c].rho) * gap
		if gap < inf && contribution < target && c < len(cands)-1 {
			flips = append(flips, j)
			target -= contribution

			continue
		}

		return s.idOf(j), flips, true
	}

	return VarID{}, nil, false
}
