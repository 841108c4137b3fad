package simplex

// Pricer scores pivot candidates for the engine. Implementations hold
// per-variable state (weights, candidate lists) over two populations:
// "vars" are the structural variables (CoDim of them) and "covars" the
// logical variables (Dim of them).
//
// The engine guarantees: exactly one Select call per iteration, followed
// by exactly one Entered/Left notification if and only if the pivot was
// committed; no structural-change callback fires during an iteration.
type Pricer interface {
	// Load binds the pricer to an engine; implementations sample the
	// representation and dimensions here.
	Load(s *Solver)
	// SetRepresentation reconfigures after a representation change: the
	// pricer re-dimensions its state and adapts its side preferences to
	// the var/covar role swap of the ROW orientation.
	SetRepresentation(rep Representation)
	// SetType configures the selection mode the engine will drive:
	// TypeEnter means SelectEnter is called, TypeLeave means
	// SelectLeave. Implementations may reset their weights.
	SetType(tp Type)

	// AddedVars announces count new structural variables appended.
	AddedVars(count int)
	// AddedCoVars announces count new logical variables appended.
	AddedCoVars(count int)
	// RemovedVar announces removal of structural variable i under the
	// swap-with-last policy.
	RemovedVar(i int)
	// RemovedCoVar announces removal of logical variable i under the
	// swap-with-last policy.
	RemovedCoVar(i int)
	// RemovedVars announces a batch removal; perm maps every old index
	// to its new index or -1. The pricer migrates its state under perm.
	RemovedVars(perm []int)
	// RemovedCoVars is the logical-side batch removal.
	RemovedCoVars(perm []int)

	// SelectLeave picks a primal-infeasible basic variable by basis
	// position, or -1 when none qualifies.
	SelectLeave() int
	// SelectEnter picks an entering variable id; ok is false when none
	// qualifies.
	SelectEnter() (id VarID, ok bool)

	// Entered is posted after a committed enter pivot: id entered the
	// basis at position n. Implementations may ignore id; it is carried
	// for pricers that need it.
	Entered(id VarID, n int)
	// Left is posted after a committed leave pivot: the variable at
	// basis position n left, id entered.
	Left(n int, id VarID)
}
