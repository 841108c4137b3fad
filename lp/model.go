package lp

import (
	"math"

	"github.com/katalvlaran/splx/colset"
	"github.com/katalvlaran/splx/vec"
)

// Infinity is the bound sentinel: any value of magnitude >= Infinity is
// treated as an absent bound.
const Infinity = 1e100

// IsInfinite reports whether x plays the role of +-infinity.
func IsInfinite(x float64) bool { return math.Abs(x) >= Infinity }

// Sense is the optimization direction of the objective.
type Sense int

const (
	// Minimize asks for the smallest objective value.
	Minimize Sense = iota
	// Maximize asks for the largest objective value.
	Maximize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}

	return "minimize"
}

// Model is the LP problem data. The zero value is not usable; construct
// with New.
type Model struct {
	cols  *colset.Set  // constraint matrix, one sparse column per variable
	keys  []colset.Key // keys[j] names column j in the arena
	obj   *vec.Dense   // objective coefficients, length n
	lower *vec.Dense   // column lower bounds, length n
	upper *vec.Dense   // column upper bounds, length n
	lhs   *vec.Dense   // row left-hand sides, length m
	rhs   *vec.Dense   // row right-hand sides, length m
	sense Sense

	version uint64 // bumped on every mutation; engines watch it
}

// New creates an empty model with sense Minimize.
func New() *Model {
	return &Model{
		cols:  colset.NewSet(),
		obj:   vec.NewDense(0),
		lower: vec.NewDense(0),
		upper: vec.NewDense(0),
		lhs:   vec.NewDense(0),
		rhs:   vec.NewDense(0),
	}
}

// NumCols returns the number of structural variables.
func (m *Model) NumCols() int { return len(m.keys) }

// NumRows returns the number of constraint rows.
func (m *Model) NumRows() int { return m.lhs.Dim() }

// Nonzeros returns the number of stored matrix entries.
func (m *Model) Nonzeros() int { return m.cols.Nonzeros() }

// Sense returns the optimization direction.
func (m *Model) Sense() Sense { return m.sense }

// Version returns the mutation counter. An engine snapshots it at load
// time and reloads the model on its next Optimize once it has changed.
func (m *Model) Version() uint64 { return m.version }

// Obj returns the objective coefficient of column j.
func (m *Model) Obj(j int) float64 { return m.obj.At(j) }

// Lower returns the lower bound of column j.
func (m *Model) Lower(j int) float64 { return m.lower.At(j) }

// Upper returns the upper bound of column j.
func (m *Model) Upper(j int) float64 { return m.upper.At(j) }

// Lhs returns the left-hand side of row r.
func (m *Model) Lhs(r int) float64 { return m.lhs.At(r) }

// Rhs returns the right-hand side of row r.
func (m *Model) Rhs(r int) float64 { return m.rhs.At(r) }

// ColView returns a read-only view of column j. The view is invalidated
// by any mutation of the model.
func (m *Model) ColView(j int) (colset.View, error) {
	if j < 0 || j >= len(m.keys) {
		return colset.View{}, ErrIndexOutOfRange
	}

	return m.cols.ColView(m.keys[j])
}

// checkSparse validates a caller-supplied sparse vector against an
// exclusive index bound, rejecting duplicates and out-of-range indices.
func checkSparse(s *vec.Sparse, dim int) error {
	seen := make(map[int]struct{}, s.Size())
	for k := 0; k < s.Size(); k++ {
		i := s.Index(k)
		if i < 0 || i >= dim {
			return ErrIndexOutOfRange
		}
		if _, dup := seen[i]; dup {
			return ErrDuplicateIndex
		}
		seen[i] = struct{}{}
	}

	return nil
}

// checkBounds validates a bound pair. The infinity sentinel needs no
// special case: -Infinity never exceeds Infinity.
func checkBounds(lo, up float64) error {
	if lo > up {
		return ErrBoundReversal
	}

	return nil
}
