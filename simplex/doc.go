// Package simplex implements the sequential revised-simplex engine of
// splx: basis management, factorization with product-form updates,
// pricing, ratio testing and the iteration loop, over problem data held
// by package lp.
//
// # Architecture
//
// The Solver owns the basis and the iteration work vectors and drives
// three pluggable collaborators:
//
//   - Pricer — nominates the pivot candidate (Devex and Dantzig bundled);
//   - RatioTester — selects the blocking bound of the nominated step
//     (textbook and bound-flipping bundled);
//   - Factorizer — factorizes the basis matrix and absorbs rank-1
//     exchanges (a gonum-LU/eta backend bundled).
//
// Two iteration kernels exist. The entering kernel (primal simplex)
// keeps the basic values within bounds and works off reduced-cost
// infeasibility; the leaving kernel (dual simplex) keeps the reduced
// costs sign-feasible and works off bound violations of the basic
// values. COLUMN/ENTER and ROW/LEAVE name the entering kernel,
// COLUMN/LEAVE and ROW/ENTER the leaving one — Type() reports the
// representation-adjusted half of that pair. Storage and factorization
// are column-wise in both orientations; the ROW setting flips the
// kernel naming and the pricers' candidate-side preference (the
// storage decision is recorded in DESIGN.md). When the start basis is
// neither primal nor dual feasible, a zero-objective feasibility phase
// (leaving kernel) precedes the entering kernel.
//
// One iteration of the entering kernel, in contract order: pricer
// selection, solve-right for the direction, ratio test, primal update
// via the update vectors, basis swap, factor update, pricer
// notification. The notification fires if and only if the pivot was
// committed.
//
// # Termination
//
// Optimize returns OPTIMAL with primal/dual/reduced-cost accessors
// populated, UNBOUNDED with a primal ray, INFEASIBLE with a Farkas
// dual, SINGULAR after exhausted refactorization retries, or one of the
// ABORT_* statuses for iteration, time, objective-limit and cycling
// trips. A cooperative interrupt flag is polled at iteration
// boundaries; it returns a resumable RUNNING status.
//
// # Numerical care
//
// Factorization updates are budgeted (FACTOR_UPDATE_MAX, fill and
// memory growth); small pivots force refactorization before they
// surface as SINGULAR; a progress monitor samples objective and basis
// signature every DISPLAYFREQ iterations and answers stalling with
// deterministic bound perturbation, removed again before an OPTIMAL
// verdict.
package simplex
