// SPDX-License-Identifier: MIT
// Package simplex: sentinel error set.
// Configuration and input errors short-circuit to the caller without
// mutating engine state; numerical errors are retried internally and
// surface only after bounded retries.

package simplex

import "errors"

var (
	// ErrNoPricer indicates no pricer is bound to the engine.
	ErrNoPricer = errors.New("simplex: no pricer loaded")

	// ErrNoRatioTester indicates no ratio tester is bound to the engine.
	ErrNoRatioTester = errors.New("simplex: no ratio tester loaded")

	// ErrNoSolver indicates no factorization backend is bound.
	ErrNoSolver = errors.New("simplex: no linear solver loaded")

	// ErrNoProblem indicates no LP is loaded.
	ErrNoProblem = errors.New("simplex: no problem loaded")

	// ErrSingularBasis indicates the basis matrix could not be factorized.
	ErrSingularBasis = errors.New("simplex: singular basis")

	// ErrNeedsRefactor is returned by a factor update that exhausted its
	// budget or numerical headroom; the caller must refactorize.
	ErrNeedsRefactor = errors.New("simplex: factor update needs refactorization")

	// ErrDimensionMismatch indicates a basis or vector whose dimensions
	// disagree with the loaded problem.
	ErrDimensionMismatch = errors.New("simplex: dimension mismatch")

	// ErrBadBasis indicates a warm basis violating the basis invariants
	// (wrong basic count, nonbasic status naming an absent bound).
	ErrBadBasis = errors.New("simplex: invalid basis")

	// ErrBadBasisFile indicates a malformed persisted basis.
	ErrBadBasisFile = errors.New("simplex: malformed basis file")
)
