package simplex

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/splx/vec"
)

// BasisColumns feeds a factorization backend the columns of the current
// basis matrix without exposing the engine's storage.
type BasisColumns interface {
	// Dim returns the basis dimension m.
	Dim() int
	// Column writes the constraint column of the variable basic at the
	// given position into out, a zeroed slice of length Dim.
	Column(pos int, out []float64)
}

// Factorizer is the linear-solver backend of the engine: it factorizes
// the basis matrix B, solves with B and its transpose, and absorbs
// rank-1 basis exchanges until it asks for a refactorization.
type Factorizer interface {
	// Load factorizes the basis matrix delivered by cols.
	// Returns ErrSingularBasis when B has no usable factorization.
	Load(cols BasisColumns) error
	// SolveRight solves B·x = rhs, leaving a set-up semi-sparse x.
	SolveRight(rhs []float64, out *vec.SemiSparse) error
	// SolveLeft solves Bᵀ·x = rhs, leaving a set-up semi-sparse x.
	SolveLeft(rhs []float64, out *vec.SemiSparse) error
	// Update absorbs the basis exchange at position p with the entering
	// column's solve-right direction delta and pivot element pivot.
	// Returns ErrNeedsRefactor when the update budget or the numerical
	// headroom is exhausted; the basis exchange itself is still valid.
	Update(delta *vec.SemiSparse, p int, pivot float64) error
	// ConditionEstimate returns an estimate of cond(B) from the last
	// factorization.
	ConditionEstimate() float64
	// Nonzeros returns the fill of the current factor including updates.
	Nonzeros() int
}

// eta is one recorded basis exchange: column delta replaced position p.
// B_new = B_old · (I + (delta − e_p)·e_pᵀ).
type eta struct {
	p     int
	idx   []int
	val   []float64
	pivot float64
}

// luFactor is the bundled Factorizer: a dense LU base factorization
// (gonum) with a product-form eta file for updates.
type luFactor struct {
	dim        int
	lu         mat.LU
	loaded     bool
	etas       []eta
	baseNnz    int
	etaNnz     int
	maxUpdates int
	fillFactor float64
	condLimit  float64

	rhs *mat.VecDense // scratch for solves
	sol *mat.VecDense
}

// NewLUFactor creates the bundled factorization backend. maxUpdates
// bounds the eta file length and fillFactor the fill growth relative to
// the base factorization before ErrNeedsRefactor is raised.
func NewLUFactor(maxUpdates int, fillFactor float64) Factorizer {
	if maxUpdates < 1 {
		maxUpdates = 1
	}
	if fillFactor <= 1 {
		fillFactor = DefaultRefacUpdateFill
	}

	return &luFactor{
		maxUpdates: maxUpdates,
		fillFactor: fillFactor,
		condLimit:  1e14,
	}
}

// Load factorizes the basis matrix.
func (f *luFactor) Load(cols BasisColumns) error {
	m := cols.Dim()
	b := mat.NewDense(m, m, nil)
	col := make([]float64, m)
	for pos := 0; pos < m; pos++ {
		for i := range col {
			col[i] = 0
		}
		cols.Column(pos, col)
		b.SetCol(pos, col)
	}
	f.lu.Factorize(b)
	cond := f.lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > f.condLimit {
		f.loaded = false

		return ErrSingularBasis
	}
	f.dim = m
	f.loaded = true
	f.etas = f.etas[:0]
	f.baseNnz = m * m
	f.etaNnz = 0
	if f.rhs == nil || f.rhs.Len() != m {
		f.rhs = mat.NewVecDense(m, nil)
		f.sol = mat.NewVecDense(m, nil)
	}

	return nil
}

// baseSolve runs the LU solve, tolerating gonum's near-singular warning
// (mat.Condition) since Load already gated on the condition estimate.
func (f *luFactor) baseSolve(trans bool, rhs []float64, out []float64) error {
	if !f.loaded {
		return ErrSingularBasis
	}
	copy(f.rhs.RawVector().Data, rhs)
	if err := f.lu.SolveVecTo(f.sol, trans, f.rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return ErrSingularBasis
		}
	}
	copy(out, f.sol.RawVector().Data)

	return nil
}

// SolveRight solves B·x = rhs through the base factor and the eta file.
func (f *luFactor) SolveRight(rhs []float64, out *vec.SemiSparse) error {
	if out.Dim() != f.dim {
		return ErrDimensionMismatch
	}
	x := out.Values()
	if err := f.baseSolve(false, rhs, x); err != nil {
		return err
	}
	// Forward pass: x <- E_k^{-1} ... E_1^{-1} x.
	for e := range f.etas {
		et := &f.etas[e]
		xp := x[et.p] / et.pivot
		if xp != 0 {
			for k, i := range et.idx {
				if i == et.p {
					continue
				}
				x[i] -= et.val[k] * xp
			}
		}
		x[et.p] = xp
	}
	out.Unsync()
	out.Setup()

	return nil
}

// SolveLeft solves Bᵀ·x = rhs through the eta file and the base factor.
func (f *luFactor) SolveLeft(rhs []float64, out *vec.SemiSparse) error {
	if out.Dim() != f.dim {
		return ErrDimensionMismatch
	}
	w := out.Values()
	copy(w, rhs)
	// Backward pass: w <- E_k^{-T} ... applied newest first.
	for e := len(f.etas) - 1; e >= 0; e-- {
		et := &f.etas[e]
		var s float64
		for k, i := range et.idx {
			if i == et.p {
				continue
			}
			s += et.val[k] * w[i]
		}
		w[et.p] = (w[et.p] - s) / et.pivot
	}
	if err := f.baseSolve(true, w, w); err != nil {
		return err
	}
	out.Unsync()
	out.Setup()

	return nil
}

// Update appends a product-form eta for the exchange at position p.
func (f *luFactor) Update(delta *vec.SemiSparse, p int, pivot float64) error {
	if !f.loaded {
		return ErrSingularBasis
	}
	if math.Abs(pivot) < 1e-300 {
		return ErrNeedsRefactor
	}
	if len(f.etas) >= f.maxUpdates {
		return ErrNeedsRefactor
	}
	idxSet := delta.Indices()
	n := idxSet.Size()
	if float64(f.etaNnz+n) > (f.fillFactor-1)*float64(f.baseNnz) {
		return ErrNeedsRefactor
	}
	et := eta{p: p, pivot: pivot, idx: make([]int, 0, n), val: make([]float64, 0, n)}
	vals := delta.Values()
	seenP := false
	for k := 0; k < n; k++ {
		i := idxSet.Index(k)
		et.idx = append(et.idx, i)
		et.val = append(et.val, vals[i])
		if i == p {
			seenP = true
		}
	}
	if !seenP {
		et.idx = append(et.idx, p)
		et.val = append(et.val, pivot)
	}
	f.etas = append(f.etas, et)
	f.etaNnz += len(et.idx)

	return nil
}

// ConditionEstimate reports the condition estimate of the base factor.
func (f *luFactor) ConditionEstimate() float64 {
	if !f.loaded {
		return math.Inf(1)
	}

	return f.lu.Cond()
}

// Nonzeros reports the fill of base factor plus eta file.
func (f *luFactor) Nonzeros() int {
	return f.baseNnz + f.etaNnz
}
