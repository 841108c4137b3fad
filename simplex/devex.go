package simplex

import (
	"github.com/katalvlaran/splx/vec"
)

// Devex reset corridor defaults. The floor sitting at half the initial
// ENTER weight follows the original implementation; see DESIGN.md.
const (
	devexResetFloor = 1.0
	devexResetCeil  = 1e6
)

// devexInitWeight returns the reference weight new entries start from.
func devexInitWeight(tp Type) float64 {
	if tp == TypeEnter {
		return 2
	}

	return 1
}

// DevexPricer approximates steepest-edge pricing with the Devex
// reference weights: penalty over the structural side, coPenalty over
// the logical/basic side. Candidates maximize test²/weight; after each
// pivot the weights absorb the pivot row scaled by the cached weight of
// the selected candidate. When a weight leaves the reset corridor the
// reference frame restarts from the initial weights.
type DevexPricer struct {
	solver    *Solver
	tp        Type
	rep       Representation
	penalty   vec.Dense // structural weights, dim CoDim
	coPenalty vec.Dense // logical/basic weights, dim Dim
	last      float64   // weight of the candidate selected last

	resetFloor float64
	resetCeil  float64

	hyper      bool
	candidates []VarID // runner-up candidates from the last full scan
}

// NewDevexPricer creates a Devex pricer with the default reset corridor.
func NewDevexPricer() *DevexPricer {
	return &DevexPricer{resetFloor: devexResetFloor, resetCeil: devexResetCeil}
}

// Load binds to an engine and sizes the weight vectors.
func (d *DevexPricer) Load(s *Solver) {
	d.solver = s
	d.hyper = s.params.HyperPricing == HyperPricingOn ||
		(s.params.HyperPricing == HyperPricingAuto && s.CoDim() > 1000)
	d.SetRepresentation(s.Rep())
}

// SetRepresentation records the tableau orientation and re-dimensions
// the weights to the engine's current populations, initializing only
// the appended suffix. Under ROW orientation the var/covar roles swap,
// which flips the side preference of SelectEnter.
func (d *DevexPricer) SetRepresentation(rep Representation) {
	d.rep = rep
	if d.solver == nil {
		return
	}
	d.AddedVars(d.solver.CoDim() - d.penalty.Dim())
	d.AddedCoVars(d.solver.Dim() - d.coPenalty.Dim())
}

// SetType installs the kernel type and resets the reference frame:
// ENTER starts every weight at 2, LEAVE starts the basic-side weights
// at 1 (the structural side is not consulted by SelectLeave).
func (d *DevexPricer) SetType(tp Type) {
	d.tp = tp
	d.candidates = d.candidates[:0]
	if tp == TypeEnter {
		fill(d.penalty.Values(), 2)
		fill(d.coPenalty.Values(), 2)

		return
	}
	fill(d.coPenalty.Values(), 1)
}

func fill(xs []float64, v float64) {
	for i := range xs {
		xs[i] = v
	}
}

// AddedVars appends structural weights, preserving existing ones.
func (d *DevexPricer) AddedVars(count int) {
	if count <= 0 {
		return
	}
	old := d.penalty.Dim()
	d.penalty.ReDim(old + count)
	init := devexInitWeight(d.tp)
	for i := old; i < old+count; i++ {
		d.penalty.Set(i, init)
	}
}

// AddedCoVars appends logical weights, preserving existing ones.
func (d *DevexPricer) AddedCoVars(count int) {
	if count <= 0 {
		return
	}
	old := d.coPenalty.Dim()
	d.coPenalty.ReDim(old + count)
	init := devexInitWeight(d.tp)
	for i := old; i < old+count; i++ {
		d.coPenalty.Set(i, init)
	}
}

// RemovedVar migrates the structural weights under the swap-with-last
// removal of variable i.
func (d *DevexPricer) RemovedVar(i int) {
	last := d.penalty.Dim() - 1
	d.penalty.Set(i, d.penalty.At(last))
	d.penalty.ReDim(last)
	d.candidates = d.candidates[:0]
}

// RemovedCoVar migrates the logical weights likewise.
func (d *DevexPricer) RemovedCoVar(i int) {
	last := d.coPenalty.Dim() - 1
	d.coPenalty.Set(i, d.coPenalty.At(last))
	d.coPenalty.ReDim(last)
	d.candidates = d.candidates[:0]
}

// RemovedVars migrates the structural weights under a batch permutation.
func (d *DevexPricer) RemovedVars(perm []int) {
	d.applyPerm(&d.penalty, perm)
}

// RemovedCoVars migrates the logical weights under a batch permutation.
func (d *DevexPricer) RemovedCoVars(perm []int) {
	d.applyPerm(&d.coPenalty, perm)
}

// applyPerm compacts weights under an order-preserving permutation
// (perm[old] = new or -1).
func (d *DevexPricer) applyPerm(w *vec.Dense, perm []int) {
	kept := 0
	for old, next := range perm {
		if next < 0 {
			continue
		}
		w.Set(next, w.At(old))
		kept++
	}
	w.ReDim(kept)
	d.candidates = d.candidates[:0]
}

// SelectLeave picks the basic variable maximizing fTest²/coPenalty over
// the primal-infeasible candidates (fTest below -FeasTol), caching the
// winner's weight for the Entered update. First-found wins ties.
func (d *DevexPricer) SelectLeave() int {
	s := d.solver
	fTest := s.FTest().Values()
	cpen := d.coPenalty.Values()
	eps := s.params.FeasTol
	best := -1
	var bestX float64
	for i, t := range fTest {
		if t < -eps {
			x := t * t / cpen[i]
			if x > bestX {
				bestX = x
				best = i
				d.last = cpen[i]
			}
		}
	}

	return best
}

// SelectEnter picks the entering candidate maximizing test²/weight over
// both populations, preferring the structural-side winner. With hyper
// pricing the runner-ups of the previous full scan are retried before a
// full rescan.
func (d *DevexPricer) SelectEnter() (VarID, bool) {
	if d.hyper {
		if id, ok := d.selectFromCandidates(); ok {
			return id, ok
		}
	}

	return d.selectEnterScan()
}

// selectFromCandidates revalidates the remembered runner-ups.
func (d *DevexPricer) selectFromCandidates() (VarID, bool) {
	s := d.solver
	eps := s.Epsilon()
	best := VarID{}
	var bestX float64
	for _, id := range d.candidates {
		t, w := d.testAndWeight(id)
		if t < -eps {
			if x := t * t / w; x > bestX {
				bestX = x
				best = id
				d.last = w
			}
		}
	}

	return best, best.IsValid()
}

// testAndWeight fetches the current test value and weight of id.
func (d *DevexPricer) testAndWeight(id VarID) (float64, float64) {
	s := d.solver
	if id.Kind == KindCol {
		return s.Test().At(id.Idx), d.penalty.At(id.Idx)
	}

	return s.CoTest().At(id.Idx), d.coPenalty.At(id.Idx)
}

// selectEnterScan runs the full two-population scan. Under COLUMN
// orientation the structural-side winner is returned when one exists,
// else the logical-side winner; under ROW orientation the roles swap
// and the logical side is preferred.
func (d *DevexPricer) selectEnterScan() (VarID, bool) {
	s := d.solver
	eps := s.Epsilon()
	coTest := s.CoTest().Values()
	cpen := d.coPenalty.Values()
	test := s.Test().Values()
	pen := d.penalty.Values()

	d.candidates = d.candidates[:0]
	bestCo, bestVar := -1, -1
	var bestCoX, bestVarX float64
	for i, t := range coTest {
		if t < -eps {
			x := t * t / cpen[i]
			if x > bestCoX {
				bestCoX = x
				bestCo = i
			}
			d.remember(VarID{Kind: KindRow, Idx: i})
		}
	}
	for j, t := range test {
		if t < -eps {
			x := t * t / pen[j]
			if x > bestVarX {
				bestVarX = x
				bestVar = j
			}
			d.remember(VarID{Kind: KindCol, Idx: j})
		}
	}

	if d.rep == RepresentationRow {
		if bestCo >= 0 {
			d.last = cpen[bestCo]

			return VarID{Kind: KindRow, Idx: bestCo}, true
		}
		if bestVar >= 0 {
			d.last = pen[bestVar]

			return VarID{Kind: KindCol, Idx: bestVar}, true
		}

		return VarID{}, false
	}
	if bestVar >= 0 {
		d.last = pen[bestVar]

		return VarID{Kind: KindCol, Idx: bestVar}, true
	}
	if bestCo >= 0 {
		d.last = cpen[bestCo]

		return VarID{Kind: KindRow, Idx: bestCo}, true
	}

	return VarID{}, false
}

// maxCandidates bounds the hyper-pricing runner-up list.
const maxCandidates = 16

func (d *DevexPricer) remember(id VarID) {
	if !d.hyper || len(d.candidates) >= maxCandidates {
		return
	}
	d.candidates = append(d.candidates, id)
}

// Left updates the basic-side weights after a leave pivot at position n:
// beta = ‖coPvec.delta‖² / rho_n², coPenalty[i] += rho_i²·beta over the
// pivot direction's cover, coPenalty[n] = beta.
func (d *DevexPricer) Left(n int, id VarID) {
	if !id.IsValid() {
		return
	}
	s := d.solver
	rho := s.FVec().Delta().Values()
	rhoN := rho[n]
	beta := s.CoPvec().Delta().Norm2Sq() / (rhoN * rhoN)

	idx := s.FVec().Idx()
	cpen := d.coPenalty.Values()
	for k := 0; k < idx.Size(); k++ {
		i := idx.Index(k)
		cpen[i] += rho[i] * rho[i] * beta
	}
	cpen[n] = beta
}

// Entered updates both weight populations after an enter pivot landing
// at position n, resetting the reference frame when a weight leaves the
// corridor.
func (d *DevexPricer) Entered(_ VarID, n int) {
	s := d.solver
	if n < 0 || n >= s.Dim() {
		return
	}
	deltaN := s.FVec().Delta().At(n)
	xi := d.last / (deltaN * deltaN)

	coP := s.CoPvec().Delta().Values()
	coIdx := s.CoPvec().Idx()
	cpen := d.coPenalty.Values()
	for k := 0; k < coIdx.Size(); k++ {
		i := coIdx.Index(k)
		cpen[i] += xi * coP[i] * coP[i]
		if cpen[i] <= d.resetFloor || cpen[i] > d.resetCeil {
			d.SetType(TypeEnter)

			return
		}
	}

	pv := s.PVec().Delta().Values()
	pIdx := s.PVec().Idx()
	pen := d.penalty.Values()
	for k := 0; k < pIdx.Size(); k++ {
		i := pIdx.Index(k)
		pen[i] += xi * pv[i] * pv[i]
		if pen[i] <= d.resetFloor || pen[i] > d.resetCeil {
			d.SetType(TypeEnter)

			return
		}
	}
}
