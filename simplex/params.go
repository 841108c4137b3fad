// SPDX-License-Identifier: MIT

// Package simplex: engine parameters. This file defines the documented
// defaults (constants, single source of truth) and the Params struct the
// engine consumes. Functional options in options.go mutate Params and
// swap components; DefaultParams is the zero configuration every solver
// starts from.

package simplex

import "github.com/katalvlaran/splx/lp"

// Integer parameter values.
const (
	// FactorUpdateTypeEta selects product-form eta updates.
	FactorUpdateTypeEta = 0
	// FactorUpdateTypeFT selects Forrest-Tomlin updates. The bundled
	// factorizer services it with the eta file; the value exists for
	// interface parity with external backends that implement FT.
	FactorUpdateTypeFT = 1

	// PricerAuto lets the engine choose (currently Devex).
	PricerAuto = 0
	// PricerDantzig selects most-negative-test pricing.
	PricerDantzig = 1
	// PricerDevex selects Devex reference pricing.
	PricerDevex = 3

	// RatioTesterTextbook selects the plain ratio test.
	RatioTesterTextbook = 0
	// RatioTesterBoundFlipping adds nonbasic bound flips (long-step dual)
	// on top of the textbook test.
	RatioTesterBoundFlipping = 3

	// HyperPricingOff disables candidate-list pricing.
	HyperPricingOff = 0
	// HyperPricingAuto lets the pricer decide by problem size.
	HyperPricingAuto = 1
	// HyperPricingOn forces candidate-list pricing.
	HyperPricingOn = 2

	// PolishingOff disables solution polishing.
	PolishingOff = 0
)

// Default integer parameters.
const (
	DefaultFactorUpdateMax = 100
	DefaultIterLimit       = -1 // negative means unlimited
	DefaultDisplayFreq     = 100
	DefaultPricer          = PricerAuto
	DefaultRatioTester     = RatioTesterTextbook
	DefaultHyperPricing    = HyperPricingAuto
)

// Default real parameters.
const (
	DefaultFeasTol              = 1e-6
	DefaultOptTol               = 1e-6
	DefaultEpsilonZero          = 1e-16
	DefaultEpsilonPivot         = 1e-10
	DefaultInfinity             = lp.Infinity
	DefaultTimeLimit            = lp.Infinity // seconds
	DefaultObjLimitLower        = -lp.Infinity
	DefaultObjLimitUpper        = lp.Infinity
	DefaultSparsityThreshold    = 0.6
	DefaultRepresentationSwitch = 1.2
	DefaultRefacBasisNnz        = 10.0
	DefaultRefacUpdateFill      = 5.0
	DefaultRefacMemFactor       = 1.5
	DefaultMinMarkowitz         = 0.01
)

// Params is the full engine parameter surface. The zero value is not a
// valid configuration; start from DefaultParams.
type Params struct {
	// Integers.
	Representation    Representation // tableau orientation (auto/column/row)
	Algorithm         Algorithm      // preferred simplex variant
	FactorUpdateType  int            // eta or Forrest-Tomlin
	FactorUpdateMax   int            // factor updates between refactorizations
	IterLimit         int            // iteration limit, negative = unlimited
	DisplayFreq       int            // progress-monitor cadence in iterations
	Pricer            int            // pricer choice when none is injected
	RatioTester       int            // ratio-tester choice when none is injected
	HyperPricing      int            // candidate-list pricing mode
	SolutionPolishing int            // polishing mode (PolishingOff supported)

	// Reals.
	FeasTol              float64 // primal feasibility tolerance
	OptTol               float64 // dual feasibility tolerance
	EpsilonZero          float64 // general zero cutoff
	EpsilonPivot         float64 // minimum acceptable pivot magnitude
	Infinity             float64 // bound sentinel
	TimeLimit            float64 // seconds, Infinity = unlimited
	ObjLimitLower        float64 // abort when the objective drops below
	ObjLimitUpper        float64 // abort when the objective climbs above
	SparsityThreshold    float64 // solve-result density above which sparse bookkeeping is skipped
	RepresentationSwitch float64 // rows/cols ratio flipping auto representation
	RefacBasisNnz        float64 // basis-nnz growth factor; stored, not read by the engine
	RefacUpdateFill      float64 // eta fill-in growth triggering refactorization
	RefacMemFactor       float64 // factor memory growth triggering refactorization
	MinMarkowitz         float64 // Markowitz threshold for backends that pivot

	// Booleans.
	RowBoundFlips    bool // allow nonbasic bound flips in the dual long step
	FullPerturbation bool // perturb all bounds, not only the basic variables' ones
	EnsureRay        bool // always construct certificates on INFEASIBLE/UNBOUNDED
}

// DefaultParams returns the documented default configuration.
func DefaultParams() Params {
	return Params{
		Representation:    RepresentationAuto,
		Algorithm:         AlgorithmPrimal,
		FactorUpdateType:  FactorUpdateTypeEta,
		FactorUpdateMax:   DefaultFactorUpdateMax,
		IterLimit:         DefaultIterLimit,
		DisplayFreq:       DefaultDisplayFreq,
		Pricer:            DefaultPricer,
		RatioTester:       DefaultRatioTester,
		HyperPricing:      DefaultHyperPricing,
		SolutionPolishing: PolishingOff,

		FeasTol:              DefaultFeasTol,
		OptTol:               DefaultOptTol,
		EpsilonZero:          DefaultEpsilonZero,
		EpsilonPivot:         DefaultEpsilonPivot,
		Infinity:             DefaultInfinity,
		TimeLimit:            DefaultTimeLimit,
		ObjLimitLower:        DefaultObjLimitLower,
		ObjLimitUpper:        DefaultObjLimitUpper,
		SparsityThreshold:    DefaultSparsityThreshold,
		RepresentationSwitch: DefaultRepresentationSwitch,
		RefacBasisNnz:        DefaultRefacBasisNnz,
		RefacUpdateFill:      DefaultRefacUpdateFill,
		RefacMemFactor:       DefaultRefacMemFactor,
		MinMarkowitz:         DefaultMinMarkowitz,

		RowBoundFlips:    false,
		FullPerturbation: false,
		EnsureRay:        true,
	}
}
