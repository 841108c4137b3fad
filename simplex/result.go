package simplex

import (
	"time"

	"github.com/katalvlaran/splx/lp"
	"github.com/katalvlaran/splx/vec"
)

// Status returns the engine state.
func (s *Solver) Status() Status { return s.status }

// Iterations returns the iteration count of the last Optimize call.
func (s *Solver) Iterations() int { return s.iters }

// SolveTime returns the wall-clock duration of the last Optimize call.
func (s *Solver) SolveTime() time.Duration { return s.solveTime }

// ObjValue returns the objective value of the current solution in the
// model's own sense.
func (s *Solver) ObjValue() float64 {
	if s.model == nil {
		return 0
	}
	var v float64
	for j := 0; j < s.nCols; j++ {
		v += s.model.Obj(j) * s.x.At(j)
	}

	return v
}

// PrimalSolution returns a copy of the structural variable values.
func (s *Solver) PrimalSolution() []float64 {
	out := make([]float64, s.nCols)
	for j := range out {
		out[j] = s.x.At(j)
	}

	return out
}

// DualSolution returns a copy of the row duals in the model's sense.
func (s *Solver) DualSolution() []float64 {
	sign := s.senseSign()
	out := make([]float64, s.nRows)
	for r := range out {
		out[r] = sign * s.coPvec.Dense().At(r)
	}

	return out
}

// RedCost returns a copy of the structural reduced costs in the
// model's sense.
func (s *Solver) RedCost() []float64 {
	sign := s.senseSign()
	out := make([]float64, s.nCols)
	for j := range out {
		out[j] = sign * (s.cost[j] - s.pVec.Dense().At(j))
	}

	return out
}

func (s *Solver) senseSign() float64 {
	if s.model != nil && s.model.Sense() == lp.Maximize {
		return -1
	}

	return 1
}

// HasPrimalRay reports whether an unboundedness certificate is stored.
func (s *Solver) HasPrimalRay() bool { return s.ray != nil }

// PrimalRay returns a copy of the unbounded direction over the
// structural variables, or nil.
func (s *Solver) PrimalRay() []float64 {
	if s.ray == nil {
		return nil
	}
	out := make([]float64, len(s.ray))
	copy(out, s.ray)

	return out
}

// HasFarkasDual reports whether an infeasibility certificate is stored.
func (s *Solver) HasFarkasDual() bool { return s.farkas != nil }

// FarkasDual returns a copy of the Farkas certificate over the rows,
// or nil.
func (s *Solver) FarkasDual() []float64 {
	if s.farkas == nil {
		return nil
	}
	out := make([]float64, len(s.farkas))
	copy(out, s.farkas)

	return out
}

// IsPrimalFeasible reports whether the current basic values satisfy
// the bounds within FeasTol.
func (s *Solver) IsPrimalFeasible() bool {
	if s.model == nil || !s.basis.IsDefined() {
		return false
	}

	return s.primalFeasible()
}

// BasisColStatus returns the basis status of structural variable j.
func (s *Solver) BasisColStatus(j int) VarStatus {
	if j < 0 || j >= s.nCols {
		return VarUndefined
	}

	return s.basis.Status(j)
}

// BasisRowStatus returns the basis status of the logical variable of
// row r.
func (s *Solver) BasisRowStatus(r int) VarStatus {
	if r < 0 || r >= s.nRows {
		return VarUndefined
	}

	return s.basis.Status(s.nCols + r)
}

// ---------- structural mutation forwarding ----------

// AddCol appends a column to the model through the engine, keeping the
// pricer's per-variable state alive. The basis resets to undefined per
// the mutation contract.
func (s *Solver) AddCol(obj, lo float64, col *vec.Sparse, up float64) (int, error) {
	if s.model == nil {
		return 0, ErrNoProblem
	}
	j, err := s.model.AddCol(obj, lo, col, up)
	if err != nil {
		return 0, err
	}
	s.syncAfterMutation(func() {
		if s.pricer != nil {
			s.pricer.AddedVars(1)
		}
	})

	return j, nil
}

// AddRow appends a row to the model through the engine.
func (s *Solver) AddRow(lhs float64, row *vec.Sparse, rhs float64) (int, error) {
	if s.model == nil {
		return 0, ErrNoProblem
	}
	r, err := s.model.AddRow(lhs, row, rhs)
	if err != nil {
		return 0, err
	}
	s.syncAfterMutation(func() {
		if s.pricer != nil {
			s.pricer.AddedCoVars(1)
		}
	})

	return r, nil
}

// RemoveCol removes column j through the engine; the pricer migrates
// its state under the swap-with-last policy.
func (s *Solver) RemoveCol(j int) error {
	if s.model == nil {
		return ErrNoProblem
	}
	if err := s.model.RemoveCol(j); err != nil {
		return err
	}
	s.syncAfterMutation(func() {
		if s.pricer != nil {
			s.pricer.RemovedVar(j)
		}
	})

	return nil
}

// RemoveRow removes row r through the engine.
func (s *Solver) RemoveRow(r int) error {
	if s.model == nil {
		return ErrNoProblem
	}
	if err := s.model.RemoveRow(r); err != nil {
		return err
	}
	s.syncAfterMutation(func() {
		if s.pricer != nil {
			s.pricer.RemovedCoVar(r)
		}
	})

	return nil
}

// syncAfterMutation re-snapshots the model and fires the pricer's
// structural callback. Mutations never run during an iteration: the
// engine is strictly sequential and Optimize has returned.
func (s *Solver) syncAfterMutation(notify func()) {
	s.reload()
	notify()
}
