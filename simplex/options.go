// SPDX-License-Identifier: MIT

// Package simplex: functional configuration of the engine.
//   - Option mutates an options accumulator before the solver assembles
//     its components.
//   - With* constructors validate eagerly and panic on nonsensical
//     values (programmer error); user-data errors stay on Load/Optimize.
//   - Components (pricer, ratio tester, factorizer) may be injected
//     directly; otherwise the Pricer/RatioTester parameters choose the
//     bundled implementations.

package simplex

// Option configures a Solver at construction time.
type Option func(*options)

// options is the internal accumulator gathered by New.
type options struct {
	params  Params
	pricer  Pricer
	ratio   RatioTester
	factor  Factorizer
	devexLo float64 // Devex reset floor
	devexHi float64 // Devex reset ceiling
}

// defaultOptions seeds the accumulator.
func defaultOptions() options {
	return options{
		params:  DefaultParams(),
		devexLo: devexResetFloor,
		devexHi: devexResetCeil,
	}
}

// WithParams replaces the whole parameter block.
func WithParams(p Params) Option {
	if p.FeasTol <= 0 || p.OptTol <= 0 || p.EpsilonZero <= 0 || p.EpsilonPivot <= 0 {
		panic("simplex: WithParams: tolerances must be > 0")
	}
	if p.Infinity <= 0 {
		panic("simplex: WithParams: Infinity must be > 0")
	}

	return func(o *options) { o.params = p }
}

// WithRepresentation sets the tableau orientation.
func WithRepresentation(r Representation) Option {
	switch r {
	case RepresentationAuto, RepresentationColumn, RepresentationRow:
	default:
		panic("simplex: WithRepresentation: unknown representation")
	}

	return func(o *options) { o.params.Representation = r }
}

// WithAlgorithm sets the preferred simplex variant.
func WithAlgorithm(a Algorithm) Option {
	if a != AlgorithmPrimal && a != AlgorithmDual {
		panic("simplex: WithAlgorithm: unknown algorithm")
	}

	return func(o *options) { o.params.Algorithm = a }
}

// WithIterLimit bounds the iteration count; negative means unlimited.
func WithIterLimit(n int) Option {
	return func(o *options) { o.params.IterLimit = n }
}

// WithTimeLimit bounds the wall-clock seconds of one Optimize call.
func WithTimeLimit(seconds float64) Option {
	if seconds <= 0 {
		panic("simplex: WithTimeLimit: limit must be > 0")
	}

	return func(o *options) { o.params.TimeLimit = seconds }
}

// WithFeasTol sets the primal feasibility tolerance.
func WithFeasTol(tol float64) Option {
	if tol <= 0 {
		panic("simplex: WithFeasTol: tolerance must be > 0")
	}

	return func(o *options) { o.params.FeasTol = tol }
}

// WithOptTol sets the dual feasibility tolerance.
func WithOptTol(tol float64) Option {
	if tol <= 0 {
		panic("simplex: WithOptTol: tolerance must be > 0")
	}

	return func(o *options) { o.params.OptTol = tol }
}

// WithObjLimits sets the abort corridor for the objective value.
func WithObjLimits(lower, upper float64) Option {
	if lower > upper {
		panic("simplex: WithObjLimits: lower exceeds upper")
	}

	return func(o *options) {
		o.params.ObjLimitLower = lower
		o.params.ObjLimitUpper = upper
	}
}

// WithDisplayFreq sets the progress-monitor cadence.
func WithDisplayFreq(n int) Option {
	if n <= 0 {
		panic("simplex: WithDisplayFreq: cadence must be > 0")
	}

	return func(o *options) { o.params.DisplayFreq = n }
}

// WithPricer injects a pricer implementation, overriding the Pricer
// parameter. A nil pricer is kept and surfaces ErrNoPricer on Optimize,
// mirroring an unconfigured external binding.
func WithPricer(p Pricer) Option {
	return func(o *options) {
		o.pricer = p
		o.params.Pricer = -1
	}
}

// WithRatioTester injects a ratio-tester implementation.
func WithRatioTester(rt RatioTester) Option {
	return func(o *options) {
		o.ratio = rt
		o.params.RatioTester = -1
	}
}

// WithFactorizer injects a factorization backend.
func WithFactorizer(f Factorizer) Option {
	return func(o *options) { o.factor = f }
}

// WithDevexResetBounds tunes the Devex reference-reset corridor. The
// defaults (1, 1e6) follow the original; see DESIGN.md.
func WithDevexResetBounds(floor, ceil float64) Option {
	if floor <= 0 || ceil <= floor {
		panic("simplex: WithDevexResetBounds: need 0 < floor < ceil")
	}

	return func(o *options) {
		o.devexLo = floor
		o.devexHi = ceil
	}
}

// WithRowBoundFlips toggles nonbasic bound flips in the dual long step.
func WithRowBoundFlips(on bool) Option {
	return func(o *options) { o.params.RowBoundFlips = on }
}

// WithFullPerturbation toggles whole-problem bound perturbation in the
// anti-cycling path.
func WithFullPerturbation(on bool) Option {
	return func(o *options) { o.params.FullPerturbation = on }
}

// WithEnsureRay forces certificate construction on INFEASIBLE and
// UNBOUNDED verdicts.
func WithEnsureRay(on bool) Option {
	return func(o *options) { o.params.EnsureRay = on }
}

// WithHyperPricing sets the candidate-list pricing mode.
func WithHyperPricing(mode int) Option {
	switch mode {
	case HyperPricingOff, HyperPricingAuto, HyperPricingOn:
	default:
		panic("simplex: WithHyperPricing: unknown mode")
	}

	return func(o *options) { o.params.HyperPricing = mode }
}
