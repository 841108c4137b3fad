package simplex

// DantzigPricer is the classic most-negative-test rule: among the
// infeasible candidates it picks the one with the largest violation.
// Cheap per iteration, with none of Devex's cross-pivot state.
type DantzigPricer struct {
	solver *Solver
	rep    Representation
}

// NewDantzigPricer creates a Dantzig pricer.
func NewDantzigPricer() *DantzigPricer { return &DantzigPricer{} }

// Load binds to an engine.
func (d *DantzigPricer) Load(s *Solver) {
	d.solver = s
	d.SetRepresentation(s.Rep())
}

// SetRepresentation records the orientation; it decides which side wins
// a tied SelectEnter.
func (d *DantzigPricer) SetRepresentation(rep Representation) { d.rep = rep }

// SetType is stateless for Dantzig.
func (d *DantzigPricer) SetType(Type) {}

// AddedVars is stateless for Dantzig.
func (d *DantzigPricer) AddedVars(int) {}

// AddedCoVars is stateless for Dantzig.
func (d *DantzigPricer) AddedCoVars(int) {}

// RemovedVar is stateless for Dantzig.
func (d *DantzigPricer) RemovedVar(int) {}

// RemovedCoVar is stateless for Dantzig.
func (d *DantzigPricer) RemovedCoVar(int) {}

// RemovedVars is stateless for Dantzig.
func (d *DantzigPricer) RemovedVars([]int) {}

// RemovedCoVars is stateless for Dantzig.
func (d *DantzigPricer) RemovedCoVars([]int) {}

// SelectLeave picks the most primal-infeasible basic variable.
func (d *DantzigPricer) SelectLeave() int {
	s := d.solver
	fTest := s.FTest().Values()
	eps := s.params.FeasTol
	best := -1
	worst := -eps
	for i, t := range fTest {
		if t < worst {
			worst = t
			best = i
		}
	}

	return best
}

// SelectEnter picks the most reduced-cost-infeasible nonbasic variable.
// Ties go to the structural side under COLUMN orientation and to the
// logical side under ROW orientation.
func (d *DantzigPricer) SelectEnter() (VarID, bool) {
	s := d.solver
	eps := s.Epsilon()
	best := VarID{}
	worst := -eps
	scanCo := func(tieWins bool) {
		for i, t := range s.CoTest().Values() {
			if t < worst || (tieWins && t <= worst && t < -eps) {
				worst = t
				best = VarID{Kind: KindRow, Idx: i}
			}
		}
	}
	scanVar := func(tieWins bool) {
		for j, t := range s.Test().Values() {
			if t < worst || (tieWins && t <= worst && t < -eps) {
				worst = t
				best = VarID{Kind: KindCol, Idx: j}
			}
		}
	}
	if d.rep == RepresentationRow {
		scanVar(false)
		scanCo(true)
	} else {
		scanCo(false)
		scanVar(true)
	}

	return best, best.IsValid()
}

// Entered is a no-op: Dantzig keeps no weights.
func (d *DantzigPricer) Entered(VarID, int) {}

// Left is a no-op: Dantzig keeps no weights.
func (d *DantzigPricer) Left(int, VarID) {}
