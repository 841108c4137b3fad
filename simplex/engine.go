package simplex

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/splx/lp"
	"github.com/katalvlaran/splx/vec"
)

// stepResult classifies the outcome of one kernel step.
type stepResult int

const (
	stepPivoted stepResult = iota
	stepNoCandidate
	stepUnbounded
	stepInfeasible
	stepStalled
	stepSingular
)

// Solver is the revised-simplex engine. It borrows the problem data
// from an lp.Model, owns the basis and the iteration work vectors, and
// drives pricer, ratio tester and factorization backend through their
// interfaces. A Solver is single-threaded; distinct Solvers are
// independent.
type Solver struct {
	params  Params
	devexLo float64
	devexHi float64

	pricer Pricer
	ratio  RatioTester
	factor Factorizer

	model        *lp.Model
	modelVersion uint64

	status Status
	rep    Representation // resolved orientation
	typ    Type           // kernel type the pricer is configured for

	nCols, nRows, nTotal int
	cost                 []float64 // sign-adjusted objective, logicals zero
	lb, ub               []float64 // combined bounds over all variables
	origLb, origUb       []float64 // pre-perturbation bounds
	perturbed            bool
	feasPhase            bool // zero-objective feasibility phase

	x      *vec.Dense  // values of all n+m variables
	fVec   *vec.Update // basic values by position; delta = B⁻¹·a_q
	coPvec *vec.Update // duals y; delta = B⁻ᵀ·e_p
	pVec   *vec.Update // Aᵀy over structurals; delta = structural pivot row
	fTest  *vec.Dense  // primal feasibility tests, dim m
	test   *vec.Dense  // reduced-cost tests, structural side
	coTest *vec.Dense  // reduced-cost tests, logical side

	basis                *Basis
	factorFresh          bool
	needRefactor         bool
	updatesSinceRefactor int
	slackResetDone       bool

	iters     int
	startTime time.Time
	solveTime time.Duration
	interrupt *atomic.Bool

	ray    []float64 // primal ray over structurals, nil when absent
	farkas []float64 // Farkas dual over rows, nil when absent

	sigWindow     []uint64
	objWindow     []float64
	perturbRounds int
	restoreRounds int
	lastStall     int
	stallCount    int

	rhsScratch   []float64
	flipScratch  []float64
	solveScratch *vec.SemiSparse
}

// New assembles a solver from the gathered options. Components left
// uninjected are chosen by the Pricer/RatioTester parameters.
func New(opts ...Option) *Solver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Solver{
		params:    o.params,
		devexLo:   o.devexLo,
		devexHi:   o.devexHi,
		status:    StatusNoProblem,
		lastStall: -1,
	}

	s.pricer = o.pricer
	if s.pricer == nil && o.params.Pricer >= 0 {
		switch o.params.Pricer {
		case PricerDantzig:
			s.pricer = NewDantzigPricer()
		default: // PricerAuto, PricerDevex
			d := NewDevexPricer()
			d.resetFloor = o.devexLo
			d.resetCeil = o.devexHi
			s.pricer = d
		}
	}
	s.ratio = o.ratio
	if s.ratio == nil && o.params.RatioTester >= 0 {
		if o.params.RatioTester == RatioTesterBoundFlipping {
			s.ratio = NewBoundFlippingRatioTester()
		} else {
			s.ratio = NewTextbookRatioTester()
		}
	}
	s.factor = o.factor
	if s.factor == nil {
		s.factor = NewLUFactor(o.params.FactorUpdateMax, o.params.RefacUpdateFill)
	}

	return s
}

// SetInterrupt installs the cooperative interrupt flag shared with the
// caller. It is polled at iteration boundaries; when set, Optimize
// returns with the current non-terminal status preserved so the run can
// be resumed.
func (s *Solver) SetInterrupt(flag *atomic.Bool) { s.interrupt = flag }

// Load binds the engine to a problem. The basis resets to undefined; a
// warm basis may be installed afterwards via ReadBasisFile or
// InstallBasis.
func (s *Solver) Load(m *lp.Model) error {
	if m == nil {
		return ErrNoProblem
	}
	s.model = m
	s.reload()
	s.status = StatusRegular

	return nil
}

// reload snapshots dimensions, bounds and objective from the model and
// resets all solve state.
func (s *Solver) reload() {
	m := s.model
	s.modelVersion = m.Version()
	s.nCols = m.NumCols()
	s.nRows = m.NumRows()
	s.nTotal = s.nCols + s.nRows

	sign := 1.0
	if m.Sense() == lp.Maximize {
		sign = -1
	}
	s.cost = resize(s.cost, s.nTotal)
	s.lb = resize(s.lb, s.nTotal)
	s.ub = resize(s.ub, s.nTotal)
	for j := 0; j < s.nCols; j++ {
		s.cost[j] = sign * m.Obj(j)
		s.lb[j] = m.Lower(j)
		s.ub[j] = m.Upper(j)
	}
	for r := 0; r < s.nRows; r++ {
		s.cost[s.nCols+r] = 0
		s.lb[s.nCols+r] = m.Lhs(r)
		s.ub[s.nCols+r] = m.Rhs(r)
	}
	s.origLb = append(s.origLb[:0], s.lb...)
	s.origUb = append(s.origUb[:0], s.ub...)
	s.perturbed = false
	s.feasPhase = false

	eps := s.params.EpsilonZero
	s.x = vec.NewDense(s.nTotal)
	s.fVec = vec.NewUpdate(s.nRows, eps)
	s.coPvec = vec.NewUpdate(s.nRows, eps)
	s.pVec = vec.NewUpdate(s.nCols, eps)
	s.fTest = vec.NewDense(s.nRows)
	s.test = vec.NewDense(s.nCols)
	s.coTest = vec.NewDense(s.nRows)
	s.basis = NewBasis(s.nCols, s.nRows)

	s.rhsScratch = resize(s.rhsScratch, s.nRows)
	s.flipScratch = resize(s.flipScratch, s.nRows)
	s.solveScratch = vec.NewSemiSparse(s.nRows, eps)

	s.factorFresh = false
	s.needRefactor = false
	s.updatesSinceRefactor = 0
	s.slackResetDone = false
	s.ray = nil
	s.farkas = nil
	s.sigWindow = s.sigWindow[:0]
	s.objWindow = s.objWindow[:0]
	s.perturbRounds = 0
	s.restoreRounds = 0

	s.status = StatusRegular
	s.rep = s.params.Representation
	if s.rep == RepresentationAuto {
		s.rep = RepresentationColumn
		if s.nCols > 0 && float64(s.nRows)/float64(s.nCols) > s.params.RepresentationSwitch {
			s.rep = RepresentationRow
		}
	}
}

func resize(xs []float64, n int) []float64 {
	if cap(xs) < n {
		return make([]float64, n)
	}
	xs = xs[:n]
	for i := range xs {
		xs[i] = 0
	}

	return xs
}

// InstallBasis adopts a warm basis given as per-variable statuses in
// column-then-row order.
func (s *Solver) InstallBasis(statuses []VarStatus) error {
	if s.model == nil {
		return ErrNoProblem
	}
	if err := s.basis.Install(statuses, s.lb, s.ub, s.params.Infinity); err != nil {
		return err
	}
	s.factorFresh = false
	s.status = StatusUnknown

	return nil
}

// ---------- accessors used by pricers and ratio testers ----------

// Dim returns the basis dimension m.
func (s *Solver) Dim() int { return s.nRows }

// CoDim returns the structural variable count n.
func (s *Solver) CoDim() int { return s.nCols }

// Rep returns the resolved representation.
func (s *Solver) Rep() Representation { return s.rep }

// Type returns the engine's type under the (Representation, Type)
// pairing of the iteration kernels: (COLUMN, ENTER) and (ROW, LEAVE)
// name the entering kernel, (COLUMN, LEAVE) and (ROW, ENTER) the
// leaving one, so the pair always determines which kernel is running.
// The selection mode handed to the pricer via SetType names the kernel
// directly in either representation.
func (s *Solver) Type() Type {
	if s.rep == RepresentationRow {
		if s.typ == TypeEnter {
			return TypeLeave
		}

		return TypeEnter
	}

	return s.typ
}

// Epsilon returns the dual feasibility tolerance used by selection.
func (s *Solver) Epsilon() float64 { return s.params.OptTol }

// FTest returns the primal feasibility test vector over basis positions.
func (s *Solver) FTest() *vec.Dense { return s.fTest }

// Test returns the reduced-cost test vector over structural variables.
func (s *Solver) Test() *vec.Dense { return s.test }

// CoTest returns the reduced-cost test vector over logical variables.
func (s *Solver) CoTest() *vec.Dense { return s.coTest }

// FVec returns the basic-solution update vector.
func (s *Solver) FVec() *vec.Update { return s.fVec }

// CoPvec returns the dual update vector.
func (s *Solver) CoPvec() *vec.Update { return s.coPvec }

// PVec returns the structural Aᵀy update vector.
func (s *Solver) PVec() *vec.Update { return s.pVec }

// ID returns the id of structural variable i.
func (s *Solver) ID(i int) VarID { return VarID{Kind: KindCol, Idx: i} }

// CoID returns the id of logical variable i.
func (s *Solver) CoID(i int) VarID { return VarID{Kind: KindRow, Idx: i} }

// idOf maps a combined variable index to an id.
func (s *Solver) idOf(j int) VarID {
	if j < s.nCols {
		return VarID{Kind: KindCol, Idx: j}
	}

	return VarID{Kind: KindRow, Idx: j - s.nCols}
}

// varIndexOf maps an id to the combined variable index.
func (s *Solver) varIndexOf(id VarID) int {
	if id.Kind == KindCol {
		return id.Idx
	}

	return s.nCols + id.Idx
}

// costOf returns the effective cost of variable j; the feasibility
// phase prices a zero objective.
func (s *Solver) costOf(j int) float64 {
	if s.feasPhase {
		return 0
	}

	return s.cost[j]
}

// redCost returns the reduced cost of variable j from the maintained
// dual vectors: structural d_j = c_j − (Aᵀy)_j, logical d_{n+r} = y_r
// (the logical column is −e_r).
func (s *Solver) redCost(j int) float64 {
	if j < s.nCols {
		return s.costOf(j) - s.pVec.Dense().At(j)
	}

	return s.coPvec.Dense().At(j - s.nCols)
}

// rowEntry returns the pivot-row entry of nonbasic variable j, derived
// from the current coPvec/pVec deltas.
func (s *Solver) rowEntry(j int) float64 {
	if j < s.nCols {
		return s.pVec.Delta().At(j)
	}

	return -s.coPvec.Delta().At(j - s.nCols)
}

// columnDense scatters the constraint column of variable j into out,
// a slice of length m that is zeroed first.
func (s *Solver) columnDense(j int, out []float64) {
	for i := range out {
		out[i] = 0
	}
	if j < s.nCols {
		view, _ := s.model.ColView(j)
		for k := 0; k < view.Size(); k++ {
			out[view.Index(k)] = view.Value(k)
		}

		return
	}
	out[j-s.nCols] = -1
}

// basisColumns adapts the engine to the Factorizer loading interface.
type basisColumns struct{ s *Solver }

// Dim returns the basis dimension.
func (bc basisColumns) Dim() int { return bc.s.nRows }

// Column writes the constraint column of the variable basic at pos.
func (bc basisColumns) Column(pos int, out []float64) {
	bc.s.columnDense(bc.s.basis.BasicAt(pos), out)
}

// ---------- work-state computation ----------

// factorize reloads the factor from the current basis, falling back to
// the slack basis once per run when the warm basis is singular.
func (s *Solver) factorize() error {
	err := s.factor.Load(basisColumns{s})
	if err != nil && !s.slackResetDone {
		s.slackResetDone = true
		s.basis.SetupSlack(s.model, s.cost, s.params.Infinity)
		err = s.factor.Load(basisColumns{s})
	}
	if err != nil {
		return err
	}
	s.factorFresh = true
	s.needRefactor = false
	s.updatesSinceRefactor = 0

	return nil
}

// computePrimal recomputes nonbasic resting values and solves for the
// basic values: B·x_B = −N·x_N.
func (s *Solver) computePrimal() error {
	rhs := s.rhsScratch
	for i := range rhs {
		rhs[i] = 0
	}
	for j := 0; j < s.nTotal; j++ {
		st := s.basis.Status(j)
		if st == VarBasic {
			continue
		}
		xj := restingValue(st, s.lb[j], s.ub[j])
		s.x.Set(j, xj)
		if xj == 0 {
			continue
		}
		if j < s.nCols {
			view, _ := s.model.ColView(j)
			for k := 0; k < view.Size(); k++ {
				rhs[view.Index(k)] -= view.Value(k) * xj
			}
		} else {
			rhs[j-s.nCols] += xj
		}
	}
	if err := s.factor.SolveRight(rhs, s.solveScratch); err != nil {
		return err
	}
	xb := s.fVec.Dense()
	for i := 0; i < s.nRows; i++ {
		v := s.solveScratch.At(i)
		xb.Set(i, v)
		s.x.Set(s.basis.BasicAt(i), v)
	}

	return nil
}

// computeDuals recomputes y = B⁻ᵀ·c_B and Aᵀy. During the feasibility
// phase both vanish with the zero objective.
func (s *Solver) computeDuals() error {
	y := s.coPvec.Dense()
	py := s.pVec.Dense()
	if s.feasPhase {
		y.Clear()
		py.Clear()

		return nil
	}
	rhs := s.rhsScratch
	for i := 0; i < s.nRows; i++ {
		rhs[i] = s.costOf(s.basis.BasicAt(i))
	}
	if err := s.factor.SolveLeft(rhs, s.solveScratch); err != nil {
		return err
	}
	for i := 0; i < s.nRows; i++ {
		y.Set(i, s.solveScratch.At(i))
	}
	yv := y.Values()
	for j := 0; j < s.nCols; j++ {
		view, _ := s.model.ColView(j)
		var sum float64
		for k := 0; k < view.Size(); k++ {
			sum += view.Value(k) * yv[view.Index(k)]
		}
		py.Set(j, sum)
	}

	return nil
}

// refresh refactorizes and recomputes the full work state.
func (s *Solver) refresh() error {
	if err := s.factorize(); err != nil {
		return err
	}
	if err := s.computePrimal(); err != nil {
		return err
	}

	return s.computeDuals()
}

// computeTests rebuilds the three test vectors from the current state.
func (s *Solver) computeTests() {
	inf := s.params.Infinity
	for i := 0; i < s.nRows; i++ {
		jb := s.basis.BasicAt(i)
		s.fTest.Set(i, feasTestValue(s.fVec.Dense().At(i), s.lb[jb], s.ub[jb], inf))
	}
	for j := 0; j < s.nTotal; j++ {
		t := s.testValue(j)
		if j < s.nCols {
			s.test.Set(j, t)
		} else {
			s.coTest.Set(j-s.nCols, t)
		}
	}
}

// testValue measures the reduced-cost infeasibility of variable j:
// negative values mark improving candidates.
func (s *Solver) testValue(j int) float64 {
	switch s.basis.Status(j) {
	case VarOnLower:
		return s.redCost(j)
	case VarOnUpper:
		return -s.redCost(j)
	case VarZero:
		return -math.Abs(s.redCost(j))
	default: // basic or fixed: never a candidate
		return 0
	}
}

// primalFeasible reports whether every basic value sits within bounds.
func (s *Solver) primalFeasible() bool {
	tol := s.params.FeasTol
	for _, t := range s.fTest.Values() {
		if t < -tol {
			return false
		}
	}

	return true
}

// dualFeasible reports whether no nonbasic reduced cost is infeasible.
func (s *Solver) dualFeasible() bool {
	tol := s.params.OptTol
	for _, t := range s.test.Values() {
		if t < -tol {
			return false
		}
	}
	for _, t := range s.coTest.Values() {
		if t < -tol {
			return false
		}
	}

	return true
}

// internalObj returns the sign-adjusted (minimization) objective value.
func (s *Solver) internalObj() float64 {
	var v float64
	for j := 0; j < s.nCols; j++ {
		v += s.cost[j] * s.x.At(j)
	}

	return v
}

// clearUpdates resets the three update vectors before a kernel step.
func (s *Solver) clearUpdates() {
	s.fVec.ClearUpdate()
	s.coPvec.ClearUpdate()
	s.pVec.ClearUpdate()
}

// mirrorBasics copies the applied basic values from fVec back into the
// combined value vector. Above the sparsity threshold the dense copy
// skips the cover indirection.
func (s *Solver) mirrorBasics() {
	idx := s.fVec.Idx()
	xb := s.fVec.Dense()
	if float64(idx.Size()) > s.params.SparsityThreshold*float64(s.nRows) {
		for i := 0; i < s.nRows; i++ {
			s.x.Set(s.basis.BasicAt(i), xb.At(i))
		}

		return
	}
	for k := 0; k < idx.Size(); k++ {
		i := idx.Index(k)
		s.x.Set(s.basis.BasicAt(i), xb.At(i))
	}
}

// buildPivotRow fills pVec's delta with the structural part of the
// pivot row Aᵀ·(B⁻ᵀe_p), reading coPvec's delta.
func (s *Solver) buildPivotRow() {
	d := s.pVec.Delta()
	d.Clear()
	pi := s.coPvec.Delta().Values()
	for j := 0; j < s.nCols; j++ {
		view, _ := s.model.ColView(j)
		var sum float64
		for k := 0; k < view.Size(); k++ {
			sum += view.Value(k) * pi[view.Index(k)]
		}
		if sum != 0 {
			d.SetValue(j, sum)
		}
	}
}

// fillUnit prepares a unit right-hand side.
func fillUnit(rhs []float64, p int) {
	for i := range rhs {
		rhs[i] = 0
	}
	rhs[p] = 1
}

// ---------- limits, cycling, perturbation ----------

// checkLimits enforces iteration and time limits at loop boundaries.
func (s *Solver) checkLimits() Status {
	if s.params.IterLimit >= 0 && s.iters >= s.params.IterLimit {
		return StatusAbortIter
	}
	if s.params.TimeLimit < s.params.Infinity &&
		time.Since(s.startTime).Seconds() > s.params.TimeLimit {
		return StatusAbortTime
	}

	return StatusRunning
}

// monitorWindow bounds the cycling history.
const monitorWindow = 8

// monitor runs the DisplayFreq-cadence checks: objective limits,
// residual health, and the cycling heuristic. It returns a non-Running
// status to abort, StatusRunning otherwise.
func (s *Solver) monitor() Status {
	if s.params.DisplayFreq <= 0 || s.iters%s.params.DisplayFreq != 0 || s.iters == 0 {
		return StatusRunning
	}

	// Objective corridor, checked once primal feasible.
	if s.primalFeasible() && !s.feasPhase {
		v := s.ObjValue()
		if v < s.params.ObjLimitLower || v > s.params.ObjLimitUpper {
			return StatusAbortValue
		}
	}

	// Residual health: drift beyond feasTol forces a refresh.
	if s.residualNorm() > s.params.FeasTol {
		if err := s.refresh(); err != nil {
			return StatusSingular
		}
	}

	// Cycling: a repeated basis signature without objective progress.
	sig := s.basis.Signature()
	obj := s.internalObj()
	for k, old := range s.sigWindow {
		if old == sig && obj >= s.objWindow[k]-s.params.EpsilonZero {
			if st := s.perturb(); st != StatusRunning {
				return st
			}

			break
		}
	}
	s.sigWindow = append(s.sigWindow, sig)
	s.objWindow = append(s.objWindow, obj)
	if len(s.sigWindow) > monitorWindow {
		s.sigWindow = s.sigWindow[1:]
		s.objWindow = s.objWindow[1:]
	}

	return StatusRunning
}

// residualNorm returns ‖A·x − x_logical‖∞ for the current values.
func (s *Solver) residualNorm() float64 {
	res := s.flipScratch
	for i := range res {
		res[i] = -s.x.At(s.nCols + i)
	}
	for j := 0; j < s.nCols; j++ {
		xj := s.x.At(j)
		if xj == 0 {
			continue
		}
		view, _ := s.model.ColView(j)
		for k := 0; k < view.Size(); k++ {
			res[view.Index(k)] += view.Value(k) * xj
		}
	}
	var worst float64
	for _, v := range res {
		if a := math.Abs(v); a > worst {
			worst = a
		}
	}

	return worst
}

// maxPerturbRounds bounds the anti-cycling retries before AbortCycling.
const maxPerturbRounds = 6

// perturb relaxes bounds to break ties: the basic variables' bounds by
// default, every finite bound under FullPerturbation. A deterministic
// per-index jitter breaks the symmetry that caused the cycle.
func (s *Solver) perturb() Status {
	s.perturbRounds++
	if s.perturbRounds > maxPerturbRounds {
		return StatusAbortCycling
	}
	scale := s.params.FeasTol * float64(s.perturbRounds)
	inf := s.params.Infinity
	relax := func(j int) {
		jitter := scale * (0.5 + 0.5*math.Mod(float64(j)*0.6180339887, 1))
		if s.lb[j] > -inf && s.lb[j] != s.ub[j] {
			s.lb[j] -= jitter * (1 + math.Abs(s.lb[j]))
		}
		if s.ub[j] < inf && s.lb[j] != s.ub[j] {
			s.ub[j] += jitter * (1 + math.Abs(s.ub[j]))
		}
	}
	if s.params.FullPerturbation {
		for j := 0; j < s.nTotal; j++ {
			relax(j)
		}
	} else {
		for pos := 0; pos < s.nRows; pos++ {
			relax(s.basis.BasicAt(pos))
		}
	}
	s.perturbed = true
	if err := s.refresh(); err != nil {
		return StatusSingular
	}
	s.computeTests()

	return StatusRunning
}

// unperturb restores the original bounds after a perturbed run reached
// optimality, and recomputes the solution against them.
func (s *Solver) unperturb() error {
	copy(s.lb, s.origLb)
	copy(s.ub, s.origUb)
	s.perturbed = false
	s.restoreRounds++
	// Nonbasic resting values may have moved with the bounds; recompute.
	if err := s.computePrimal(); err != nil {
		return err
	}
	if err := s.computeDuals(); err != nil {
		return err
	}
	s.computeTests()

	return nil
}

// ---------- the optimize loop ----------

// maxRestoreRounds bounds re-solves after perturbation removal.
const maxRestoreRounds = 3

// unscaledViolationFactor widens FeasTol for the degraded-optimal
// verdict after perturbation removal.
const unscaledViolationFactor = 100

// Optimize runs the simplex loop to a terminal status, or returns early
// with a resumable one on interrupt. The error reports configuration
// and input failures; verdict statuses are not errors.
func (s *Solver) Optimize() (Status, error) {
	switch {
	case s.pricer == nil:
		s.status = StatusError

		return s.status, ErrNoPricer
	case s.ratio == nil:
		s.status = StatusError

		return s.status, ErrNoRatioTester
	case s.factor == nil:
		s.status = StatusError

		return s.status, ErrNoSolver
	case s.model == nil:
		s.status = StatusNoProblem

		return s.status, ErrNoProblem
	}
	if s.model.Version() != s.modelVersion {
		s.reload()
	}
	if s.status == StatusOptimal {
		// Idempotent re-optimize: zero iterations performed.
		s.iters = 0

		return s.status, nil
	}
	if s.nRows == 0 || s.nTotal == 0 {
		return s.solveTrivial()
	}

	s.iters = 0
	s.startTime = time.Now()
	defer func() { s.solveTime = time.Since(s.startTime) }()

	if !s.basis.IsDefined() {
		s.basis.SetupSlack(s.model, s.cost, s.params.Infinity)
	}
	s.status = StatusRunning
	s.pricer.Load(s)
	s.ratio.Load(s)
	if err := s.refresh(); err != nil {
		s.status = StatusSingular

		return s.status, nil
	}

	for {
		if s.interrupt != nil && s.interrupt.Load() {
			return s.status, nil // resumable
		}
		if st := s.checkLimits(); st != StatusRunning {
			s.status = st

			return s.status, nil
		}
		if s.needRefactor || !s.factorFresh {
			if err := s.refresh(); err != nil {
				s.status = StatusSingular

				return s.status, nil
			}
		}
		s.computeTests()

		primalOK := s.primalFeasible()
		dualOK := s.dualFeasible()

		if primalOK && dualOK {
			done, st := s.finalizeOptimal()
			if done {
				s.status = st

				return s.status, nil
			}

			continue
		}

		// Kernel dispatch. Which kernel may run is decided by the
		// feasibility the current basis holds; the representation maps
		// the choice onto the (Representation, Type) pairs reported by
		// Type() — (COLUMN, ENTER) ≡ (ROW, LEAVE) ≡ entering kernel and
		// (COLUMN, LEAVE) ≡ (ROW, ENTER) ≡ leaving kernel. Storage and
		// factorization stay column-wise in both orientations; see
		// DESIGN.md on the Representation decision.
		var res stepResult
		switch {
		case primalOK:
			s.setKernel(TypeEnter)
			res = s.enterStep()
		case dualOK:
			s.setKernel(TypeLeave)
			res = s.leaveStep()
		default:
			s.enterFeasPhase()

			continue
		}

		switch res {
		case stepPivoted:
			if st := s.monitor(); st != StatusRunning {
				s.status = st

				return s.status, nil
			}
		case stepNoCandidate:
			if !s.factorFresh || s.updatesSinceRefactor > 0 {
				if err := s.refresh(); err != nil {
					s.status = StatusSingular

					return s.status, nil
				}

				continue
			}
			if s.feasPhase {
				s.exitFeasPhase()

				continue
			}
			// The pricer sees no candidate on fresh data while the broad
			// test disagrees: tolerate and finalize.
			done, st := s.finalizeOptimal()
			if done {
				s.status = st

				return s.status, nil
			}
		case stepUnbounded:
			s.status = StatusUnbounded

			return s.status, nil
		case stepInfeasible:
			s.status = StatusInfeasible

			return s.status, nil
		case stepStalled:
			// refresh happens at the loop top
		case stepSingular:
			s.status = StatusSingular

			return s.status, nil
		}
	}
}

// solveTrivial settles problems without rows: every variable rests at
// its cost-preferred bound; a free variable with nonzero cost is a ray.
func (s *Solver) solveTrivial() (Status, error) {
	s.iters = 0
	inf := s.params.Infinity
	for j := 0; j < s.nCols; j++ {
		st := nonbasicStatus(s.cost[j], s.lb[j], s.ub[j], inf)
		if st == VarZero && s.cost[j] != 0 {
			if s.params.EnsureRay {
				s.ray = make([]float64, s.nCols)
				s.ray[j] = -math.Copysign(1, s.cost[j])
			}
			s.status = StatusUnbounded

			return s.status, nil
		}
		if s.cost[j] < 0 && s.ub[j] >= inf {
			if s.params.EnsureRay {
				s.ray = make([]float64, s.nCols)
				s.ray[j] = 1
			}
			s.status = StatusUnbounded

			return s.status, nil
		}
		if s.cost[j] > 0 && s.lb[j] <= -inf {
			if s.params.EnsureRay {
				s.ray = make([]float64, s.nCols)
				s.ray[j] = -1
			}
			s.status = StatusUnbounded

			return s.status, nil
		}
		s.x.Set(j, restingValue(st, s.lb[j], s.ub[j]))
	}
	s.status = StatusOptimal

	return s.status, nil
}

// setKernel reconfigures the pricer when the kernel type changes.
func (s *Solver) setKernel(tp Type) {
	if s.typ == tp {
		return
	}
	s.typ = tp
	s.pricer.SetType(tp)
}

// enterFeasPhase switches to the zero-objective feasibility phase.
func (s *Solver) enterFeasPhase() {
	s.feasPhase = true
	s.coPvec.Dense().Clear()
	s.pVec.Dense().Clear()
}

// exitFeasPhase restores the true objective and its duals.
func (s *Solver) exitFeasPhase() {
	s.feasPhase = false
	_ = s.computeDuals()
}

// finalizeOptimal confirms an optimal-looking state on fresh data,
// removes any active perturbation, and classifies the verdict.
func (s *Solver) finalizeOptimal() (bool, Status) {
	if s.feasPhase {
		s.exitFeasPhase()
		s.computeTests()

		return false, StatusRunning
	}
	if s.updatesSinceRefactor > 0 || !s.factorFresh {
		if err := s.refresh(); err != nil {
			return true, StatusSingular
		}
		s.computeTests()
		if !(s.primalFeasible() && s.dualFeasible()) {
			return false, StatusRunning
		}
	}
	if s.perturbed {
		if err := s.unperturb(); err != nil {
			return true, StatusSingular
		}
		if s.primalFeasible() && s.dualFeasible() {
			return true, StatusOptimal
		}
		if s.restoreRounds >= maxRestoreRounds {
			if s.worstPrimalViolation() < unscaledViolationFactor*s.params.FeasTol {
				return true, StatusOptimalUnscaledViolations
			}

			return true, StatusAbortCycling
		}

		return false, StatusRunning
	}

	return true, StatusOptimal
}

// worstPrimalViolation returns the largest bound violation of the
// basic values.
func (s *Solver) worstPrimalViolation() float64 {
	var worst float64
	for _, t := range s.fTest.Values() {
		if -t > worst {
			worst = -t
		}
	}

	return worst
}
