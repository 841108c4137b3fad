package simplex

import (
	"math"

	"github.com/katalvlaran/splx/lp"
)

// Basis partitions the n+m variables (structural first, then logical)
// into m basic and n nonbasic ones, with a status per variable. The
// invariants of the partition:
//
//   - exactly m variables carry VarBasic;
//   - every nonbasic variable's value equals the bound its status names;
//   - VarZero requires both bounds infinite, VarFixed requires lo == up.
type Basis struct {
	status []VarStatus // per variable, length n+m
	basic  []int       // basis position -> variable index, length m
	posOf  []int       // variable index -> basis position, -1 if nonbasic
}

// NewBasis creates an undefined basis for n structural and m logical
// variables.
func NewBasis(n, m int) *Basis {
	b := &Basis{
		status: make([]VarStatus, n+m),
		basic:  make([]int, m),
		posOf:  make([]int, n+m),
	}
	for i := range b.posOf {
		b.posOf[i] = -1
	}

	return b
}

// Dim returns the basis dimension m.
func (b *Basis) Dim() int { return len(b.basic) }

// Total returns the variable count n+m.
func (b *Basis) Total() int { return len(b.status) }

// Status returns the status of variable j.
func (b *Basis) Status(j int) VarStatus { return b.status[j] }

// BasicAt returns the variable basic at position pos.
func (b *Basis) BasicAt(pos int) int { return b.basic[pos] }

// PosOf returns the basis position of variable j, or -1 when nonbasic.
func (b *Basis) PosOf(j int) int { return b.posOf[j] }

// IsDefined reports whether a basis has been installed.
func (b *Basis) IsDefined() bool {
	for _, st := range b.status {
		if st != VarUndefined {
			return true
		}
	}

	return false
}

// Reset marks every variable undefined.
func (b *Basis) Reset() {
	for i := range b.status {
		b.status[i] = VarUndefined
	}
	for i := range b.posOf {
		b.posOf[i] = -1
	}
}

// nonbasicStatus derives the resting status of a nonbasic variable from
// its bounds and (sign-adjusted) cost: a finite bound matching the cost
// sign is preferred so that the slack start is dual feasible whenever
// the bound structure allows it.
func nonbasicStatus(cost, lo, up, infinity float64) VarStatus {
	loFin := lo > -infinity
	upFin := up < infinity
	switch {
	case loFin && upFin && lo == up:
		return VarFixed
	case cost >= 0 && loFin:
		return VarOnLower
	case cost >= 0 && upFin:
		return VarOnUpper
	case cost < 0 && upFin:
		return VarOnUpper
	case cost < 0 && loFin:
		return VarOnLower
	default:
		return VarZero
	}
}

// SetupSlack installs the slack basis: all logicals basic, every
// structural nonbasic at the bound chosen by nonbasicStatus. cost is the
// sign-adjusted objective over structurals.
func (b *Basis) SetupSlack(model *lp.Model, cost []float64, infinity float64) {
	n := model.NumCols()
	m := model.NumRows()
	for j := 0; j < n; j++ {
		b.status[j] = nonbasicStatus(cost[j], model.Lower(j), model.Upper(j), infinity)
		b.posOf[j] = -1
	}
	for r := 0; r < m; r++ {
		b.status[n+r] = VarBasic
		b.basic[r] = n + r
		b.posOf[n+r] = r
	}
}

// Install validates and adopts a warm basis given as per-variable
// statuses in column-then-row order. lb/ub are the combined bound
// vectors over all n+m variables.
func (b *Basis) Install(statuses []VarStatus, lb, ub []float64, infinity float64) error {
	if len(statuses) != len(b.status) {
		return ErrDimensionMismatch
	}
	pos := 0
	for i := range b.posOf {
		b.posOf[i] = -1
	}
	for j, st := range statuses {
		switch st {
		case VarBasic:
			if pos == len(b.basic) {
				return ErrBadBasis
			}
			b.basic[pos] = j
			b.posOf[j] = pos
			pos++
		case VarOnLower:
			if lb[j] <= -infinity {
				return ErrBadBasis
			}
		case VarOnUpper:
			if ub[j] >= infinity {
				return ErrBadBasis
			}
		case VarFixed:
			if lb[j] != ub[j] {
				return ErrBadBasis
			}
		case VarZero:
			if lb[j] > -infinity || ub[j] < infinity {
				return ErrBadBasis
			}
		default:
			return ErrBadBasis
		}
	}
	if pos != len(b.basic) {
		return ErrBadBasis
	}
	copy(b.status, statuses)

	return nil
}

// Swap exchanges the variable basic at position p with the entering
// variable q, assigning the leaving variable the given resting status.
func (b *Basis) Swap(p, q int, leavingStatus VarStatus) {
	leaving := b.basic[p]
	b.status[leaving] = leavingStatus
	b.posOf[leaving] = -1
	b.basic[p] = q
	b.status[q] = VarBasic
	b.posOf[q] = p
}

// Signature returns an order-independent hash of the basic-variable
// multiset, used by the cycling monitor. Mixing follows splitmix64.
func (b *Basis) Signature() uint64 {
	var sig uint64
	for _, j := range b.basic {
		z := uint64(j) + 0x9e3779b97f4a7c15
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		sig += z
	}

	return sig
}

// restingValue returns the value a nonbasic variable holds under its
// status.
func restingValue(st VarStatus, lo, up float64) float64 {
	switch st {
	case VarOnLower, VarFixed:
		return lo
	case VarOnUpper:
		return up
	default:
		return 0
	}
}

// feasTestValue measures how far inside its bounds a basic value sits:
// negative values are infeasible, magnitude is the violation.
func feasTestValue(x, lo, up, infinity float64) float64 {
	low := math.Inf(1)
	if lo > -infinity {
		low = x - lo
	}
	high := math.Inf(1)
	if up < infinity {
		high = up - x
	}
	if low < high {
		return low
	}

	return high
}
